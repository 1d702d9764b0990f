package localnet

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"realestate/internal/domain"
	"realestate/internal/protocol/tx"
)

const (
	// FeePerSignature is charged to the fee payer for every signature.
	FeePerSignature = 5000
	// BlockhashValidity is how many blocks a blockhash stays usable.
	BlockhashValidity = 150
	// ConfirmedDepth and FinalizedDepth are the slots needed on top of a
	// transaction's slot before it reaches that commitment.
	ConfirmedDepth = 1
	FinalizedDepth = 32

	maxRecentBlockhashes = 300
)

// Transaction-level errors, rendered as the node renders them.
var (
	ErrBlockhashNotFound       = errors.New("BlockhashNotFound")
	ErrAlreadyProcessed        = errors.New("AlreadyProcessed")
	ErrInsufficientFundsForFee = errors.New("InsufficientFundsForFee")
	ErrAccountNotFound         = errors.New("AccountNotFound")
	ErrProgramAccountNotFound  = errors.New("ProgramAccountNotFound")
)

// SubmitError is returned by Submit when a transaction is rejected before
// or during execution.
type SubmitError struct {
	// Err is the on-chain error value as JSON.
	Err  json.RawMessage
	Logs []string
	// Verification is set when a signature did not verify.
	Verification bool
}

func (e *SubmitError) Error() string {
	if e.Verification {
		return "Transaction signature verification failure"
	}
	return "Transaction simulation failed: " + string(e.Err)
}

type txRecord struct {
	slot      uint64
	blockTime int64
	fee       uint64
	err       json.RawMessage
	logs      []string
}

// Validator is the in-memory ledger.
type Validator struct {
	mu          sync.RWMutex
	slot        uint64
	latest      domain.Hash
	blockhashes map[domain.Hash]uint64
	order       []domain.Hash
	balances    map[domain.Pubkey]uint64
	txs         map[domain.Signature]*txRecord
	programs    map[domain.Pubkey]Handler

	log *zap.Logger
}

// NewValidator returns a validator seeded from g at slot 0.
func NewValidator(g Genesis, log *zap.Logger) (*Validator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Validator{
		blockhashes: make(map[domain.Hash]uint64),
		balances:    make(map[domain.Pubkey]uint64),
		txs:         make(map[domain.Signature]*txRecord),
		programs:    make(map[domain.Pubkey]Handler),
		log:         log,
	}
	for _, a := range g.Accounts {
		pk, err := domain.ParsePubkey(a.Pubkey)
		if err != nil {
			return nil, err
		}
		v.balances[pk] += a.Lamports
	}
	v.produceBlockhash()
	return v, nil
}

// Register installs h as the program at id.
func (v *Validator) Register(id domain.Pubkey, h Handler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.programs[id] = h
	v.log.Info("program registered", zap.Stringer("program", id))
}

// Run advances a slot every interval until ctx is done.
func (v *Validator) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v.Advance()
		}
	}
}

// Advance produces the next slot and returns it.
func (v *Validator) Advance() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.slot++
	v.produceBlockhash()
	slotGauge.Set(float64(v.slot))
	return v.slot
}

// produceBlockhash must be called with mu held.
func (v *Validator) produceBlockhash() {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], v.slot)
	h := domain.Hash(sha256.Sum256(append(v.latest[:], seed[:]...)))
	v.latest = h
	v.blockhashes[h] = v.slot
	v.order = append(v.order, h)
	if len(v.order) > maxRecentBlockhashes {
		delete(v.blockhashes, v.order[0])
		v.order = v.order[1:]
	}
}

// Slot returns the current slot.
func (v *Validator) Slot() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.slot
}

// LatestBlockhash returns the newest blockhash.
func (v *Validator) LatestBlockhash() domain.LatestBlockhash {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return domain.LatestBlockhash{
		Blockhash:            v.latest,
		LastValidBlockHeight: v.slot + BlockhashValidity,
	}
}

// Balance returns the lamports held by pk.
func (v *Validator) Balance(pk domain.Pubkey) uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.balances[pk]
}

// Airdrop credits lamports to pk and records a transaction for it.
func (v *Validator) Airdrop(pk domain.Pubkey, lamports uint64) (domain.Signature, error) {
	var sig domain.Signature
	if _, err := rand.Read(sig[:]); err != nil {
		return sig, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[pk] += lamports
	v.txs[sig] = &txRecord{
		slot:      v.slot,
		blockTime: time.Now().Unix(),
		logs:      []string{fmt.Sprintf("Airdrop %d lamports to %s", lamports, pk)},
	}
	v.log.Info("airdrop", zap.Stringer("to", pk), zap.Uint64("lamports", lamports))
	return sig, nil
}

// Status reports the status of sig, or nil if it is unknown.
func (v *Validator) Status(sig domain.Signature) *domain.SignatureStatus {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rec, ok := v.txs[sig]
	if !ok {
		return nil
	}
	st := &domain.SignatureStatus{Slot: rec.slot, Err: rec.err}
	depth := v.slot - rec.slot
	switch {
	case depth >= FinalizedDepth:
		st.ConfirmationStatus = domain.CommitmentFinalized
	case depth >= ConfirmedDepth:
		st.ConfirmationStatus = domain.CommitmentConfirmed
		st.Confirmations = &depth
	default:
		st.ConfirmationStatus = domain.CommitmentProcessed
		st.Confirmations = &depth
	}
	return st
}

// Transaction returns the execution record of sig once it has reached
// commitment, or nil.
func (v *Validator) Transaction(sig domain.Signature, commitment domain.Commitment) *domain.TransactionInfo {
	st := v.Status(sig)
	if st == nil || !st.ConfirmationStatus.AtLeast(commitment) {
		return nil
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	rec := v.txs[sig]
	bt := rec.blockTime
	return &domain.TransactionInfo{
		Slot:      rec.slot,
		BlockTime: &bt,
		Meta: domain.TransactionMeta{
			Err:         rec.err,
			Fee:         rec.fee,
			LogMessages: append([]string(nil), rec.logs...),
		},
	}
}

// Submit verifies and executes a serialized transaction in the current slot.
//
// With preflight, a transaction that fails for any reason returns a
// *SubmitError and changes nothing. Without it, a transaction that cannot pay
// its fee or references an unknown blockhash is dropped silently, and one that
// fails during execution is recorded with its error and still pays the fee.
func (v *Validator) Submit(raw []byte, skipPreflight bool) (domain.Signature, error) {
	t, err := tx.Unmarshal(raw)
	if err != nil {
		return domain.Signature{}, err
	}
	if t.Message.Header.NumRequiredSignatures == 0 {
		return domain.Signature{}, fmt.Errorf("%w: no fee payer", tx.ErrMalformed)
	}
	sig := t.Signature()
	if err := t.Verify(); err != nil {
		transactionsTotal.WithLabelValues("bad_signature").Inc()
		return sig, &SubmitError{Verification: true}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	reject := func(reason error, logs []string) (domain.Signature, error) {
		transactionsTotal.WithLabelValues(reason.Error()).Inc()
		v.log.Debug("transaction rejected", zap.Stringer("signature", sig), zap.Error(reason))
		if skipPreflight {
			return sig, nil
		}
		return sig, &SubmitError{Err: errJSON(reason.Error()), Logs: logs}
	}

	if _, seen := v.txs[sig]; seen {
		return reject(ErrAlreadyProcessed, nil)
	}
	made, ok := v.blockhashes[t.Message.RecentBlockhash]
	if !ok || v.slot > made+BlockhashValidity {
		return reject(ErrBlockhashNotFound, nil)
	}
	payer := t.Message.FeePayer()
	fee := uint64(FeePerSignature * len(t.Signatures))
	if v.balances[payer] == 0 {
		return reject(ErrAccountNotFound, nil)
	}
	if v.balances[payer] < fee {
		return reject(ErrInsufficientFundsForFee, nil)
	}

	logs, execErr := v.execute(t)
	if execErr != nil && !skipPreflight {
		transactionsTotal.WithLabelValues("simulation_failed").Inc()
		return sig, &SubmitError{Err: execErr, Logs: logs}
	}

	v.balances[payer] -= fee
	v.txs[sig] = &txRecord{
		slot:      v.slot,
		blockTime: time.Now().Unix(),
		fee:       fee,
		err:       execErr,
		logs:      logs,
	}
	result := "ok"
	if execErr != nil {
		result = "failed"
	}
	transactionsTotal.WithLabelValues(result).Inc()
	v.log.Info("transaction landed",
		zap.Stringer("signature", sig),
		zap.Uint64("slot", v.slot),
		zap.String("result", result))
	return sig, nil
}

// execute runs every instruction in order and stops at the first failure.
// It must be called with mu held.
func (v *Validator) execute(t *tx.Transaction) ([]string, json.RawMessage) {
	var logs []string
	m := t.Message
	for i, ix := range m.Instructions {
		programID := m.AccountKeys[ix.ProgramIDIndex]
		h, ok := v.programs[programID]
		if !ok {
			return logs, errJSON(ErrProgramAccountNotFound.Error())
		}

		logs = append(logs, fmt.Sprintf("Program %s invoke [1]", programID))
		ic := &InvokeContext{ProgramID: programID, Data: ix.Data, logs: &logs}
		for _, a := range ix.Accounts {
			ic.Accounts = append(ic.Accounts, AccountInfo{
				Pubkey:     m.AccountKeys[a],
				IsSigner:   m.IsSigner(int(a)),
				IsWritable: m.IsWritable(int(a)),
				Lamports:   v.balances[m.AccountKeys[a]],
			})
		}

		if err := h(ic); err != nil {
			logs = append(logs, fmt.Sprintf("Program %s failed: %s", programID, err))
			return logs, instructionError(i, err)
		}
		logs = append(logs, fmt.Sprintf("Program %s success", programID))
	}
	return logs, nil
}

func instructionError(index int, err error) json.RawMessage {
	var detail any = "ProgramFailedToComplete"
	var pe *ProgramError
	if errors.As(err, &pe) {
		detail = map[string]uint32{"Custom": pe.Code}
	}
	b, _ := json.Marshal(map[string][]any{"InstructionError": {index, detail}})
	return b
}

func errJSON(name string) json.RawMessage {
	b, _ := json.Marshal(name)
	return b
}
