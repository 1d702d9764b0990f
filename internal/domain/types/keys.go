package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Pubkey is an ed25519 public key. On chain it doubles as an account address.
type Pubkey [32]byte

// ParsePubkey decodes a base58 address.
func ParsePubkey(s string) (Pubkey, error) {
	var p Pubkey
	b, err := base58.Decode(s)
	if err != nil {
		return p, fmt.Errorf("invalid pubkey %q: %w", s, err)
	}
	if len(b) != len(p) {
		return p, fmt.Errorf("invalid pubkey %q: decoded to %d bytes, want %d", s, len(b), len(p))
	}
	copy(p[:], b)
	return p, nil
}

// MustPubkey is ParsePubkey for constants; it panics on malformed input.
func MustPubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Slice returns the key as a []byte.
func (p Pubkey) Slice() []byte { return p[:] }

// IsZero reports whether p is the all-zero key.
func (p Pubkey) IsZero() bool { return p == Pubkey{} }

// String returns the base58 form of the key.
func (p Pubkey) String() string { return base58.Encode(p[:]) }

// MarshalText encodes the key as base58.
func (p Pubkey) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a base58 key.
func (p *Pubkey) UnmarshalText(text []byte) error {
	v, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PrivateKey is an ed25519 private key (seed followed by public key).
type PrivateKey [64]byte

// Slice returns the key as a []byte.
func (k PrivateKey) Slice() []byte { return k[:] }

// Keypair is the signing key of a wallet.
type Keypair struct {
	Public  Pubkey     `json:"public"`
	Private PrivateKey `json:"private"`
}

// Pubkey returns the public half of the keypair.
func (k Keypair) Pubkey() Pubkey { return k.Public }
