package crypto

import (
	"encoding/base64"

	"github.com/mr-tron/base58"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeB64 reverses B64.
func DecodeB64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// Base58 returns the Bitcoin-alphabet base58 encoding used for keys,
// signatures and hashes.
func Base58(b []byte) string { return base58.Encode(b) }

// DecodeBase58 reverses Base58.
func DecodeBase58(s string) ([]byte, error) { return base58.Decode(s) }
