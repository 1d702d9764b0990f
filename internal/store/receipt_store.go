package store

import (
	"path/filepath"
	"sync"

	"realestate/internal/domain"
)

const receiptsFilename = "receipts.json"

// ReceiptFileStore appends receipts to a JSON file under dir.
type ReceiptFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewReceiptFileStore returns a ReceiptFileStore rooted at dir.
func NewReceiptFileStore(dir string) *ReceiptFileStore {
	return &ReceiptFileStore{dir: dir}
}

func (s *ReceiptFileStore) path() string { return filepath.Join(s.dir, receiptsFilename) }

// SaveReceipt appends r to the history.
func (s *ReceiptFileStore) SaveReceipt(r domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []domain.Receipt
	if err := readJSON(s.path(), &all); err != nil {
		return err
	}
	all = append(all, r)
	return writeJSON(s.path(), all, 0o600)
}

// ListReceipts returns up to limit receipts, newest first.
func (s *ReceiptFileStore) ListReceipts(limit int) ([]domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []domain.Receipt
	if err := readJSON(s.path(), &all); err != nil {
		return nil, err
	}
	out := make([]domain.Receipt, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}

var _ domain.ReceiptStore = (*ReceiptFileStore)(nil)
