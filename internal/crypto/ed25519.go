package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	"realestate/internal/domain"
	"realestate/internal/util/memzero"
)

// ErrSeedSize is returned when a seed is not ed25519.SeedSize bytes.
var ErrSeedSize = errors.New("ed25519 seed must be 32 bytes")

// GenerateKeypair returns a new Ed25519 signing keypair.
func GenerateKeypair() (domain.Keypair, error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return domain.Keypair{}, err
	}
	defer memzero.Zero(sk)
	return keypairFrom(pk, sk), nil
}

// KeypairFromSeed derives the keypair for a 32-byte seed.
func KeypairFromSeed(seed []byte) (domain.Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return domain.Keypair{}, ErrSeedSize
	}
	sk := ed25519.NewKeyFromSeed(seed)
	defer memzero.Zero(sk)
	return keypairFrom(sk.Public().(ed25519.PublicKey), sk), nil
}

// KeypairFromPrivate validates a 64-byte private key (seed || public key)
// and returns the keypair it encodes.
func KeypairFromPrivate(priv []byte) (domain.Keypair, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return domain.Keypair{}, errors.New("ed25519 private key must be 64 bytes")
	}
	kp, err := KeypairFromSeed(priv[:ed25519.SeedSize])
	if err != nil {
		return domain.Keypair{}, err
	}
	if string(kp.Public[:]) != string(priv[ed25519.SeedSize:]) {
		return domain.Keypair{}, errors.New("ed25519 private key does not match its public half")
	}
	return kp, nil
}

// Sign signs msg with kp and returns the signature.
func Sign(kp domain.Keypair, msg []byte) domain.Signature {
	var sig domain.Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(kp.Private[:]), msg))
	return sig
}

// Verify verifies sig over msg with pub.
func Verify(pub domain.Pubkey, msg []byte, sig domain.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig[:])
}

func keypairFrom(pk ed25519.PublicKey, sk ed25519.PrivateKey) domain.Keypair {
	var kp domain.Keypair
	copy(kp.Public[:], pk)
	copy(kp.Private[:], sk)
	return kp
}
