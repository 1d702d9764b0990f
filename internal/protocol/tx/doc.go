// Package tx implements the legacy transaction wire format.
//
// # Overview
//
// A transaction is a list of ed25519 signatures followed by the message they
// sign. The message is compiled from high-level instructions:
//   - Header: required signatures, read-only signed and read-only unsigned counts
//   - Account keys, ordered fee payer first, then writable signers, read-only
//     signers, writable non-signers and read-only non-signers
//   - Recent blockhash
//   - Compiled instructions that reference accounts by index
//
// Every variable-length array is prefixed with a compact-u16 length.
//
// # Errors
//
// ErrMissingSigner is returned when a required signature cannot be produced.
// ErrTooLarge is returned when a serialized transaction exceeds PacketDataSize.
// Decoding errors wrap ErrMalformed.
package tx
