// Package crypto exposes the minimal primitives used by realestate.
//
// Contents
//
//   - Ed25519 keypair generation, signing and verification (GenerateKeypair,
//     KeypairFromSeed, Sign, Verify)
//   - Base58 and base64 encodings used by the RPC wire format (Base58,
//     DecodeBase58, B64, DecodeB64)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Keys are fixed-size array types defined in internal/domain to avoid
// accidental reallocations. Callers should treat private keys as sensitive
// and wipe copies with memzero when practical.
package crypto
