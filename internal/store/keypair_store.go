package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"realestate/internal/crypto"
	"realestate/internal/domain"
	"realestate/internal/util/memzero"
)

// ErrPassphraseRequired is returned when an encrypted keystore is loaded
// without a passphrase.
var ErrPassphraseRequired = errors.New("keystore is encrypted; a passphrase is required")

// KeypairFileStore persists the payer keypair at a single path.
//
// With an empty passphrase the keypair is written in the Solana CLI format,
// a JSON array of the 64 private key bytes, so the file can be shared with
// other tooling. Otherwise it is sealed in the keystore envelope.
type KeypairFileStore struct {
	path string
	mu   sync.Mutex
}

// NewKeypairFileStore returns a KeypairFileStore for the file at path.
func NewKeypairFileStore(path string) *KeypairFileStore {
	return &KeypairFileStore{path: path}
}

// Path returns the keypair file location.
func (s *KeypairFileStore) Path() string { return s.path }

// Exists reports whether a keypair file is present.
func (s *KeypairFileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// SaveKeypair writes kp to disk, encrypting it when passphrase is non-empty.
func (s *KeypairFileStore) SaveKeypair(passphrase string, kp domain.Keypair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal([64]byte(kp.Private))
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	if passphrase == "" {
		return writeFile(s.path, raw, 0o600)
	}

	N, r, p := scryptParamsDefault()
	ct, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(s.path, ct, 0o600)
}

// LoadKeypair reads the keypair, detecting the on-disk format.
func (s *KeypairFileStore) LoadKeypair(passphrase string) (domain.Keypair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Keypair{}, err
	}

	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '{' {
		if passphrase == "" {
			return domain.Keypair{}, ErrPassphraseRequired
		}
		raw, err = decrypt(passphrase, raw)
		if err != nil {
			return domain.Keypair{}, err
		}
		defer memzero.Zero(raw)
	}

	var priv [64]byte
	if err := json.Unmarshal(raw, &priv); err != nil {
		return domain.Keypair{}, fmt.Errorf("parse keypair %s: %w", s.path, err)
	}
	defer memzero.Zero(priv[:])

	kp, err := crypto.KeypairFromPrivate(priv[:])
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("keypair %s: %w", s.path, err)
	}
	return kp, nil
}

// Compile-time assertion that KeypairFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeypairFileStore)(nil)
