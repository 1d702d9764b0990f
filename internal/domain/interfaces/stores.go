package interfaces

import domaintypes "realestate/internal/domain/types"

// KeyStore persists the payer keypair.
type KeyStore interface {
	SaveKeypair(passphrase string, kp domaintypes.Keypair) error
	LoadKeypair(passphrase string) (domaintypes.Keypair, error)
	Exists() (bool, error)
}

// ReceiptStore keeps a history of submitted instructions.
type ReceiptStore interface {
	SaveReceipt(receipt domaintypes.Receipt) error
	// ListReceipts returns receipts newest first. limit <= 0 returns all.
	ListReceipts(limit int) ([]domaintypes.Receipt, error)
}
