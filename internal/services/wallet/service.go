package wallet

import (
	"errors"
	"fmt"
	"unicode"

	"realestate/internal/crypto"
	"realestate/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrWalletExists is returned when generating over an existing keypair
	// without overwrite.
	ErrWalletExists = errors.New("wallet already exists (use --force to replace it)")
)

// Service manages the payer keypair using a backing store.
type Service struct {
	store domain.KeyStore
}

// New returns a wallet service backed by the given store.
func New(s domain.KeyStore) *Service { return &Service{store: s} }

// GenerateWallet creates a new keypair, saves it (encrypted when a passphrase
// is given) and returns it plus a short fingerprint of the public key.
func (s *Service) GenerateWallet(passphrase string, overwrite bool) (domain.Keypair, string, error) {
	if passphrase != "" && !isSecurePassphrase(passphrase) {
		return domain.Keypair{}, "", ErrWeakPassphrase
	}
	if !overwrite {
		exists, err := s.store.Exists()
		if err != nil {
			return domain.Keypair{}, "", err
		}
		if exists {
			return domain.Keypair{}, "", ErrWalletExists
		}
	}

	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return domain.Keypair{}, "", err
	}
	if err := s.store.SaveKeypair(passphrase, kp); err != nil {
		return domain.Keypair{}, "", err
	}
	return kp, crypto.Fingerprint(kp.Public), nil
}

// LoadWallet returns the stored keypair.
func (s *Service) LoadWallet(passphrase string) (domain.Keypair, error) {
	return s.store.LoadKeypair(passphrase)
}

// Address returns the wallet's public key and its fingerprint.
func (s *Service) Address(passphrase string) (domain.Pubkey, string, error) {
	kp, err := s.store.LoadKeypair(passphrase)
	if err != nil {
		return domain.Pubkey{}, "", err
	}
	return kp.Public, crypto.Fingerprint(kp.Public), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
