package types

import "encoding/json"

// SignatureStatus is the network's view of a submitted transaction.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus Commitment      `json:"confirmationStatus"`
}

// Failed reports whether the transaction was executed with an error.
func (s SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// LatestBlockhash is a recent blockhash and the last block height at which a
// transaction referencing it is still accepted.
type LatestBlockhash struct {
	Blockhash            Hash   `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// TransactionMeta is the execution outcome of a landed transaction.
type TransactionMeta struct {
	Err         json.RawMessage `json:"err"`
	Fee         uint64          `json:"fee"`
	LogMessages []string        `json:"logMessages"`
}

// TransactionInfo is the subset of getTransaction this client reads.
type TransactionInfo struct {
	Slot      uint64          `json:"slot"`
	BlockTime *int64          `json:"blockTime"`
	Meta      TransactionMeta `json:"meta"`
}

// SendOptions tune sendTransaction.
type SendOptions struct {
	SkipPreflight       bool       `json:"skipPreflight"`
	PreflightCommitment Commitment `json:"preflightCommitment,omitempty"`
}
