package confirm_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"realestate/internal/confirm"
	"realestate/internal/domain"
)

type fakeRPC struct {
	domain.RPCClient

	mu       sync.Mutex
	statuses []*domain.SignatureStatus
	polls    int
	height   uint64
}

func (f *fakeRPC) GetSignatureStatuses(_ context.Context, _ ...domain.Signature) ([]*domain.SignatureStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.polls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.polls++
	return []*domain.SignatureStatus{f.statuses[i]}, nil
}

func (f *fakeRPC) GetBlockHeight(context.Context, domain.Commitment) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height, nil
}

func opts(c domain.Commitment) confirm.Options {
	return confirm.Options{Commitment: c, LastValidBlockHeight: 10, Interval: time.Millisecond}
}

func TestConfirmWaitsForCommitment(t *testing.T) {
	rpc := &fakeRPC{statuses: []*domain.SignatureStatus{
		nil,
		{Slot: 5, ConfirmationStatus: domain.CommitmentProcessed},
		{Slot: 5, ConfirmationStatus: domain.CommitmentConfirmed},
	}}
	st, err := confirm.Confirm(context.Background(), rpc, domain.Signature{1}, opts(domain.CommitmentConfirmed))
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if st.ConfirmationStatus != domain.CommitmentConfirmed || rpc.polls != 3 {
		t.Fatalf("status %q after %d polls", st.ConfirmationStatus, rpc.polls)
	}
}

func TestConfirmReportsTransactionError(t *testing.T) {
	rpc := &fakeRPC{statuses: []*domain.SignatureStatus{{
		Slot:               7,
		Err:                json.RawMessage(`{"InstructionError":[0,{"Custom":101}]}`),
		ConfirmationStatus: domain.CommitmentProcessed,
	}}}
	_, err := confirm.Confirm(context.Background(), rpc, domain.Signature{2}, opts(domain.CommitmentProcessed))
	var txErr *confirm.TransactionError
	if !errors.As(err, &txErr) {
		t.Fatalf("want TransactionError, got %v", err)
	}
	if txErr.Slot != 7 {
		t.Fatalf("slot = %d", txErr.Slot)
	}
}

func TestConfirmBlockhashExpired(t *testing.T) {
	rpc := &fakeRPC{statuses: []*domain.SignatureStatus{nil}, height: 11}
	_, err := confirm.Confirm(context.Background(), rpc, domain.Signature{3}, opts(domain.CommitmentProcessed))
	if !errors.Is(err, confirm.ErrBlockhashExpired) {
		t.Fatalf("want ErrBlockhashExpired, got %v", err)
	}
}

func TestConfirmHonoursContext(t *testing.T) {
	rpc := &fakeRPC{statuses: []*domain.SignatureStatus{nil}, height: 1}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := confirm.Confirm(ctx, rpc, domain.Signature{4}, opts(domain.CommitmentProcessed))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	cases := map[string]string{
		``:                                           "ok",
		`null`:                                       "ok",
		`"BlockhashNotFound"`:                        "BlockhashNotFound",
		`{"InstructionError":[0,{"Custom":101}]}`:    "instruction 0: custom program error 101 (InstructionFallbackNotFound)",
		`{"InstructionError":[1,"InvalidArgument"]}`: "instruction 1: InvalidArgument",
	}
	for in, want := range cases {
		if got := confirm.Describe(json.RawMessage(in)); got != want {
			t.Errorf("Describe(%s) = %q, want %q", in, got, want)
		}
	}
}
