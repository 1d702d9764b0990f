package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Signature is an ed25519 signature. The first signature of a transaction
// identifies the transaction on the network.
type Signature [64]byte

// ParseSignature decodes a base58 signature.
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	b, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("invalid signature %q: %w", s, err)
	}
	if len(b) != len(sig) {
		return sig, fmt.Errorf("invalid signature %q: decoded to %d bytes, want %d", s, len(b), len(sig))
	}
	copy(sig[:], b)
	return sig, nil
}

// IsZero reports whether the signature is unset.
func (s Signature) IsZero() bool { return s == Signature{} }

// String returns the base58 form of the signature.
func (s Signature) String() string { return base58.Encode(s[:]) }

// MarshalText encodes the signature as base58.
func (s Signature) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a base58 signature.
func (s *Signature) UnmarshalText(text []byte) error {
	v, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Hash is a 32-byte digest; recent blockhashes use it.
type Hash [32]byte

// ParseHash decodes a base58 hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invalid hash %q: decoded to %d bytes, want %d", s, len(b), len(h))
	}
	copy(h[:], b)
	return h, nil
}

// String returns the base58 form of the hash.
func (h Hash) String() string { return base58.Encode(h[:]) }

// MarshalText encodes the hash as base58.
func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText decodes a base58 hash.
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
