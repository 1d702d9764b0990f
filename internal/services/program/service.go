package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"realestate/internal/confirm"
	"realestate/internal/domain"
	"realestate/internal/programs/realestate"
	"realestate/internal/protocol/anchor"
	"realestate/internal/protocol/tx"
	"realestate/internal/rpc"
	"realestate/internal/tracing"
	"realestate/internal/workspace"
)

// ErrUnknownInstruction is returned when the program's IDL does not declare
// the requested instruction.
var ErrUnknownInstruction = errors.New("instruction not declared in the program IDL")

// DefaultTimeout bounds waits that have no blockhash expiry to end them.
const DefaultTimeout = 90 * time.Second

// Options configure a Service. Zero values select processed commitment for
// both preflight and confirmation, and no receipt history.
type Options struct {
	Commitment          domain.Commitment
	PreflightCommitment domain.Commitment
	SkipPreflight       bool
	// Cluster is recorded on receipts.
	Cluster         string
	ConfirmInterval time.Duration
	// Timeout caps the airdrop confirmation and the wait for transaction
	// logs. Zero selects DefaultTimeout.
	Timeout  time.Duration
	Receipts domain.ReceiptStore
	Logger   *zap.Logger
}

// Service invokes instructions on one program, paid for and signed by payer.
type Service struct {
	ref   workspace.ProgramRef
	rpc   domain.RPCClient
	payer domain.Keypair
	opts  Options
	log   *zap.Logger
}

// New returns a Service for the program ref.
func New(ref workspace.ProgramRef, client domain.RPCClient, payer domain.Keypair, opts Options) *Service {
	if opts.Commitment == "" {
		opts.Commitment = domain.CommitmentProcessed
	}
	if opts.PreflightCommitment == "" {
		opts.PreflightCommitment = domain.CommitmentProcessed
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ConfirmInterval <= 0 {
		opts.ConfirmInterval = confirm.DefaultInterval
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ref: ref, rpc: client, payer: payer, opts: opts, log: log.With(zap.String("program", ref.Name))}
}

// Program returns the program this service targets.
func (s *Service) Program() workspace.ProgramRef { return s.ref }

// Initialize invokes the program's initialize instruction.
func (s *Service) Initialize(ctx context.Context) (domain.Signature, error) {
	return s.Invoke(ctx, realestate.InstructionInitialize, nil, nil)
}

// Invoke sends the named instruction with accounts and serialized args, and
// waits for it to reach the configured commitment. When the transaction lands
// but fails, the signature is returned together with a
// *confirm.TransactionError.
func (s *Service) Invoke(ctx context.Context, name string, accounts []tx.AccountMeta, args []byte) (sig domain.Signature, err error) {
	ctx, span := tracing.StartSpan(ctx, "program."+anchor.SnakeCase(name), "CLIENT")
	span.WithAttributes(map[string]string{"program.id": s.ref.ID.String(), "program.instruction": name})
	defer func() {
		span.SetStatus(err)
		span.End()
	}()

	disc, err := s.discriminator(name)
	if err != nil {
		return domain.Signature{}, err
	}
	ix := tx.Instruction{
		ProgramID: s.ref.ID,
		Accounts:  accounts,
		Data:      append(disc[:], args...),
	}

	bh, err := s.rpc.GetLatestBlockhash(ctx, s.opts.Commitment)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("latest blockhash: %w", err)
	}
	t, err := tx.New(s.payer.Public, bh.Blockhash, ix)
	if err != nil {
		return domain.Signature{}, err
	}
	if err := t.Sign(s.payer); err != nil {
		return domain.Signature{}, err
	}
	raw, err := t.Marshal()
	if err != nil {
		return domain.Signature{}, err
	}

	sig, err = s.rpc.SendTransaction(ctx, raw, domain.SendOptions{
		SkipPreflight:       s.opts.SkipPreflight,
		PreflightCommitment: s.opts.PreflightCommitment,
	})
	if err != nil {
		if rerr, ok := rpc.AsError(err); ok {
			if sim, ok := rerr.Simulation(); ok {
				s.log.Warn("preflight failed",
					zap.String("instruction", name),
					zap.String("err", confirm.Describe(sim.Err)),
					zap.Strings("logs", sim.Logs))
			}
		}
		return domain.Signature{}, fmt.Errorf("send %s: %w", name, err)
	}
	s.log.Debug("transaction sent", zap.String("instruction", name), zap.Stringer("signature", sig))

	st, confirmErr := confirm.Confirm(ctx, s.rpc, sig, confirm.Options{
		Commitment:           s.opts.Commitment,
		LastValidBlockHeight: bh.LastValidBlockHeight,
		Interval:             s.opts.ConfirmInterval,
		Logger:               s.log,
	})
	var txErr *confirm.TransactionError
	if confirmErr != nil && !errors.As(confirmErr, &txErr) {
		return sig, confirmErr
	}

	s.record(ctx, name, sig, st, txErr)
	if txErr != nil {
		return sig, txErr
	}
	s.log.Info(fmt.Sprintf("Your transaction signature %s", sig))
	return sig, nil
}

func (s *Service) discriminator(name string) ([anchor.DiscriminatorSize]byte, error) {
	if s.ref.IDL == nil {
		return anchor.Discriminator(name), nil
	}
	ix, ok := s.ref.IDL.Instruction(name)
	if !ok {
		return [anchor.DiscriminatorSize]byte{}, fmt.Errorf("%w: %s.%s", ErrUnknownInstruction, s.ref.Name, name)
	}
	return ix.DiscriminatorBytes(), nil
}

// record fetches the transaction logs best-effort and stores a receipt.
func (s *Service) record(ctx context.Context, name string, sig domain.Signature, st *domain.SignatureStatus, txErr *confirm.TransactionError) {
	r := domain.Receipt{
		Signature:   sig,
		ProgramID:   s.ref.ID,
		Instruction: anchor.SnakeCase(name),
		Cluster:     s.opts.Cluster,
		CreatedUTC:  time.Now().UTC().Unix(),
	}
	if st != nil {
		r.Slot = st.Slot
		r.Commitment = st.ConfirmationStatus
	}
	if txErr != nil {
		r.Err = confirm.Describe(txErr.Err)
	}

	logs, err := s.fetchLogs(ctx, sig)
	if err != nil {
		s.log.Warn("transaction logs unavailable", zap.Stringer("signature", sig), zap.Error(err))
	}
	r.Logs = logs
	for _, line := range r.Logs {
		s.log.Debug(line, zap.Stringer("signature", sig))
	}

	if s.opts.Receipts == nil {
		return
	}
	if err := s.opts.Receipts.SaveReceipt(r); err != nil {
		s.log.Warn("save receipt", zap.Error(err))
	}
}

// fetchLogs polls getTransaction until the transaction is visible or
// opts.Timeout elapses. Nodes only serve getTransaction at confirmed or
// above, so a lower configured commitment is raised to confirmed.
func (s *Service) fetchLogs(ctx context.Context, sig domain.Signature) ([]string, error) {
	commitment := s.opts.Commitment
	if !commitment.AtLeast(domain.CommitmentConfirmed) {
		commitment = domain.CommitmentConfirmed
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(s.opts.ConfirmInterval)
	defer ticker.Stop()
	for {
		info, err := s.rpc.GetTransaction(ctx, sig, commitment)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info.Meta.LogMessages, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction not %s: %w", commitment, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Airdrop requests lamports for the payer and waits up to opts.Timeout for
// them to arrive.
func (s *Service) Airdrop(ctx context.Context, lamports uint64) (domain.Signature, error) {
	sig, err := s.rpc.RequestAirdrop(ctx, s.payer.Public, lamports)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("airdrop: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	if _, err := confirm.Confirm(ctx, s.rpc, sig, confirm.Options{
		Commitment: s.opts.Commitment,
		Interval:   s.opts.ConfirmInterval,
		Logger:     s.log,
	}); err != nil {
		return sig, fmt.Errorf("airdrop %s: %w", sig, err)
	}
	s.log.Info("airdrop confirmed", zap.Stringer("signature", sig), zap.Uint64("lamports", lamports))
	return sig, nil
}

// Balance returns the payer's balance in lamports.
func (s *Service) Balance(ctx context.Context) (uint64, error) {
	return s.rpc.GetBalance(ctx, s.payer.Public, s.opts.Commitment)
}

// Compile-time assertion that Service implements domain.ProgramService.
var _ domain.ProgramService = (*Service)(nil)
