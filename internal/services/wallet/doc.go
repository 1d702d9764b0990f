// Package wallet manages creation, encryption and loading of the payer keypair.
//
// It enforces passphrase policy for encrypted keystores, generates Ed25519
// keypairs, and persists them via the domain.KeyStore. An empty passphrase
// selects the plain Solana CLI keypair format.
package wallet
