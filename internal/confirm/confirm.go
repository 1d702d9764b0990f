package confirm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"realestate/internal/domain"
	"realestate/internal/protocol/anchor"
)

// DefaultInterval is the polling period, about one slot.
const DefaultInterval = 400 * time.Millisecond

// ErrBlockhashExpired is returned when the transaction can no longer land.
var ErrBlockhashExpired = errors.New("blockhash expired before the transaction was confirmed")

// TransactionError reports a transaction that landed but failed.
type TransactionError struct {
	Signature domain.Signature
	Slot      uint64
	Err       json.RawMessage
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed in slot %d: %s", e.Signature, e.Slot, Describe(e.Err))
}

// Options tune Confirm.
type Options struct {
	Commitment           domain.Commitment
	LastValidBlockHeight uint64
	Interval             time.Duration
	Logger               *zap.Logger
}

// Confirm blocks until sig reaches opts.Commitment and returns its final status.
func Confirm(ctx context.Context, client domain.RPCClient, sig domain.Signature, opts Options) (*domain.SignatureStatus, error) {
	if opts.Commitment == "" {
		opts.Commitment = domain.CommitmentProcessed
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		statuses, err := client.GetSignatureStatuses(ctx, sig)
		if err != nil {
			return nil, fmt.Errorf("confirm %s: %w", sig, err)
		}
		var st *domain.SignatureStatus
		if len(statuses) > 0 {
			st = statuses[0]
		}
		if st != nil {
			if st.Failed() {
				return st, &TransactionError{Signature: sig, Slot: st.Slot, Err: st.Err}
			}
			if st.ConfirmationStatus.AtLeast(opts.Commitment) {
				log.Debug("transaction confirmed",
					zap.Stringer("signature", sig),
					zap.Uint64("slot", st.Slot),
					zap.String("commitment", string(st.ConfirmationStatus)))
				return st, nil
			}
		} else if opts.LastValidBlockHeight > 0 {
			height, err := client.GetBlockHeight(ctx, opts.Commitment)
			if err != nil {
				return nil, fmt.Errorf("confirm %s: %w", sig, err)
			}
			if height > opts.LastValidBlockHeight {
				return nil, ErrBlockhashExpired
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Describe renders an on-chain error value for humans, naming Anchor error
// codes when an instruction failed with a custom error.
func Describe(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "ok"
	}
	var named string
	if err := json.Unmarshal(raw, &named); err == nil {
		return named
	}
	var ixErr struct {
		InstructionError [2]json.RawMessage `json:"InstructionError"`
	}
	if err := json.Unmarshal(raw, &ixErr); err == nil && ixErr.InstructionError[1] != nil {
		var custom struct {
			Custom *uint32 `json:"Custom"`
		}
		if err := json.Unmarshal(ixErr.InstructionError[1], &custom); err == nil && custom.Custom != nil {
			return fmt.Sprintf("instruction %s: custom program error %d (%s)",
				ixErr.InstructionError[0], *custom.Custom, anchor.ErrorName(*custom.Custom))
		}
		return fmt.Sprintf("instruction %s: %s", ixErr.InstructionError[0], Describe(ixErr.InstructionError[1]))
	}
	return string(raw)
}
