// Package store provides file-based persistence for the client's local data.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk with atomic replace-on-write. All methods
// are concurrency-safe via internal locking.
//
// The package includes stores for:
//   - The payer keypair (KeypairFileStore), either in the plain Solana CLI
//     format or sealed in a passphrase-protected keystore envelope
//   - Instruction receipts (ReceiptFileStore)
package store
