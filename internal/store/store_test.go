package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"realestate/internal/crypto"
	"realestate/internal/domain"
	"realestate/internal/store"
)

func newKeypair(t *testing.T) domain.Keypair {
	t.Helper()
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	return kp
}

func TestKeypair_PlainFormat_SaveLoad_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.json")
	var ks domain.KeyStore = store.NewKeypairFileStore(path)
	kp := newKeypair(t)

	if err := ks.SaveKeypair("", kp); err != nil {
		t.Fatalf("save keypair: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read keypair file: %v", err)
	}
	if !strings.HasPrefix(string(b), "[") {
		t.Fatalf("plain keypair should be a JSON byte array, got %.20q", b)
	}

	got, err := ks.LoadKeypair("")
	if err != nil {
		t.Fatalf("load keypair: %v", err)
	}
	if got != kp {
		t.Fatalf("mismatch after load")
	}
}

func TestKeypair_Encrypted_SaveLoad_OK(t *testing.T) {
	defer store.UseFastKDF()()

	path := filepath.Join(t.TempDir(), "nested", "wallet.json")
	ks := store.NewKeypairFileStore(path)
	kp := newKeypair(t)

	if ok, err := ks.Exists(); err != nil || ok {
		t.Fatalf("Exists before save = %v, %v", ok, err)
	}
	if err := ks.SaveKeypair("correct horse", kp); err != nil {
		t.Fatalf("save keypair: %v", err)
	}
	if ok, err := ks.Exists(); err != nil || !ok {
		t.Fatalf("Exists after save = %v, %v", ok, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := ks.LoadKeypair("correct horse")
	if err != nil {
		t.Fatalf("load keypair: %v", err)
	}
	if got.Public != kp.Public {
		t.Fatalf("mismatch after load")
	}
}

func TestKeypair_WrongPassphrase_Fails(t *testing.T) {
	defer store.UseFastKDF()()

	ks := store.NewKeypairFileStore(filepath.Join(t.TempDir(), "wallet.json"))
	if err := ks.SaveKeypair("correct", newKeypair(t)); err != nil {
		t.Fatalf("save keypair: %v", err)
	}
	if _, err := ks.LoadKeypair("wrong"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
	if _, err := ks.LoadKeypair(""); !errors.Is(err, store.ErrPassphraseRequired) {
		t.Fatalf("expected ErrPassphraseRequired, got %v", err)
	}
}

func TestKeypair_MismatchedHalves_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.json")
	kp := newKeypair(t)
	kp.Private[63] ^= 0xff

	ks := store.NewKeypairFileStore(path)
	if err := ks.SaveKeypair("", kp); err != nil {
		t.Fatalf("save keypair: %v", err)
	}
	if _, err := ks.LoadKeypair(""); err == nil {
		t.Fatal("expected error for a corrupted keypair")
	}
}

func TestReceipts_NewestFirst(t *testing.T) {
	var rs domain.ReceiptStore = store.NewReceiptFileStore(filepath.Join(t.TempDir(), "home"))

	empty, err := rs.ListReceipts(0)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("want no receipts, got %d", len(empty))
	}

	for i := 1; i <= 3; i++ {
		r := domain.Receipt{Signature: domain.Signature{byte(i)}, Instruction: "initialize", Slot: uint64(i)}
		if err := rs.SaveReceipt(r); err != nil {
			t.Fatalf("save receipt %d: %v", i, err)
		}
	}

	all, err := rs.ListReceipts(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Slot != 3 || all[2].Slot != 1 {
		t.Fatalf("unexpected order: %+v", all)
	}

	two, err := rs.ListReceipts(2)
	if err != nil {
		t.Fatalf("list limit: %v", err)
	}
	if len(two) != 2 || two[1].Slot != 2 {
		t.Fatalf("unexpected limited list: %+v", two)
	}
	if two[0].Signature != (domain.Signature{3}) {
		t.Fatalf("signature did not round-trip")
	}
}
