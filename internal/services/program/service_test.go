package program_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"realestate/internal/confirm"
	"realestate/internal/crypto"
	"realestate/internal/domain"
	"realestate/internal/localnet"
	"realestate/internal/localnet/builtin"
	"realestate/internal/programs/realestate"
	"realestate/internal/protocol/anchor"
	"realestate/internal/rpc"
	"realestate/internal/services/program"
	"realestate/internal/store"
	"realestate/internal/workspace"
)

type env struct {
	v        *localnet.Validator
	client   *rpc.Client
	payer    domain.Keypair
	receipts *store.ReceiptFileStore
}

func newEnv(t *testing.T) env {
	t.Helper()
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	v, err := localnet.NewValidator(localnet.DefaultGenesis(), nil)
	require.NoError(t, err)
	builtin.Register(v)

	srv := httptest.NewServer(localnet.NewServer(v, nil).Routes())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx, 5*time.Millisecond) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return env{
		v:        v,
		client:   rpc.New(srv.URL, srv.Client(), nil),
		payer:    payer,
		receipts: store.NewReceiptFileStore(filepath.Join(t.TempDir(), "home")),
	}
}

func (e env) service(ref workspace.ProgramRef, opts program.Options) *program.Service {
	return e.serviceWith(e.client, ref, opts)
}

func (e env) serviceWith(client domain.RPCClient, ref workspace.ProgramRef, opts program.Options) *program.Service {
	opts.Receipts = e.receipts
	opts.Cluster = "localnet"
	if opts.ConfirmInterval == 0 {
		opts.ConfirmInterval = 5 * time.Millisecond
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return program.New(ref, client, e.payer, opts)
}

var realEstateRef = workspace.ProgramRef{Name: realestate.Name, ID: realestate.ProgramID}

func TestInitializeReturnsSignature(t *testing.T) {
	e := newEnv(t)
	svc := e.service(realEstateRef, program.Options{})
	ctx := context.Background()

	_, err := svc.Airdrop(ctx, 2*localnet.LamportsPerSOL)
	require.NoError(t, err)

	sig, err := svc.Initialize(ctx)
	require.NoError(t, err)
	assert.False(t, sig.IsZero())
	assert.NotEmpty(t, sig.String())

	bal, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*localnet.LamportsPerSOL-localnet.FeePerSignature), bal)

	receipts, err := e.receipts.ListReceipts(0)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	r := receipts[0]
	assert.Equal(t, sig, r.Signature)
	assert.Equal(t, "initialize", r.Instruction)
	assert.True(t, r.Commitment.AtLeast(domain.CommitmentProcessed))
	assert.Empty(t, r.Err)
	assert.Contains(t, r.Logs, "Program log: Greetings from: "+realestate.ProgramID.String())
}

func TestInitializeWaitsForConfirmed(t *testing.T) {
	ignore := goleak.IgnoreCurrent()
	t.Cleanup(func() { goleak.VerifyNone(t, ignore) })

	e := newEnv(t)
	ctx := context.Background()

	svc := e.service(realEstateRef, program.Options{Commitment: domain.CommitmentConfirmed})
	_, err := svc.Airdrop(ctx, localnet.LamportsPerSOL)
	require.NoError(t, err)

	sig, err := svc.Initialize(ctx)
	require.NoError(t, err)

	st := e.v.Status(sig)
	require.NotNil(t, st)
	assert.True(t, st.ConfirmationStatus.AtLeast(domain.CommitmentConfirmed))
}

// commitmentRecorder notes the commitment of every getTransaction call.
type commitmentRecorder struct {
	domain.RPCClient

	mu   sync.Mutex
	seen []domain.Commitment
}

func (r *commitmentRecorder) GetTransaction(ctx context.Context, sig domain.Signature, c domain.Commitment) (*domain.TransactionInfo, error) {
	r.mu.Lock()
	r.seen = append(r.seen, c)
	r.mu.Unlock()
	return r.RPCClient.GetTransaction(ctx, sig, c)
}

func TestReceiptLogsFetchedAtConfirmed(t *testing.T) {
	e := newEnv(t)
	rec := &commitmentRecorder{RPCClient: e.client}
	svc := e.serviceWith(rec, realEstateRef, program.Options{Commitment: domain.CommitmentProcessed})
	ctx := context.Background()

	_, err := svc.Airdrop(ctx, localnet.LamportsPerSOL)
	require.NoError(t, err)
	_, err = svc.Initialize(ctx)
	require.NoError(t, err)

	rec.mu.Lock()
	seen := append([]domain.Commitment(nil), rec.seen...)
	rec.mu.Unlock()
	require.NotEmpty(t, seen)
	for _, c := range seen {
		assert.Equal(t, domain.CommitmentConfirmed, c)
	}

	receipts, err := e.receipts.ListReceipts(1)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Contains(t, receipts[0].Logs, "Program log: Greetings from: "+realestate.ProgramID.String())
}

// lostAirdrop hands out an airdrop signature that never lands.
type lostAirdrop struct {
	domain.RPCClient
}

func (lostAirdrop) RequestAirdrop(context.Context, domain.Pubkey, uint64) (domain.Signature, error) {
	return domain.Signature{7}, nil
}

func (lostAirdrop) GetSignatureStatuses(_ context.Context, sigs ...domain.Signature) ([]*domain.SignatureStatus, error) {
	return make([]*domain.SignatureStatus, len(sigs)), nil
}

func TestAirdropGivesUpAfterTimeout(t *testing.T) {
	e := newEnv(t)
	svc := e.serviceWith(lostAirdrop{}, realEstateRef, program.Options{Timeout: 30 * time.Millisecond})

	started := time.Now()
	_, err := svc.Airdrop(context.Background(), localnet.LamportsPerSOL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestInitializeWithoutFundsFailsPreflight(t *testing.T) {
	e := newEnv(t)
	svc := e.service(realEstateRef, program.Options{})

	_, err := svc.Initialize(context.Background())
	require.Error(t, err)
	rerr, ok := rpc.AsError(err)
	require.True(t, ok, "want rpc error, got %v", err)
	assert.Equal(t, rpc.CodeTransactionSimulationFailed, rerr.Code)

	receipts, err := e.receipts.ListReceipts(0)
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestUnknownInstructionRecordsFailure(t *testing.T) {
	e := newEnv(t)
	svc := e.service(realEstateRef, program.Options{SkipPreflight: true})
	ctx := context.Background()

	_, err := svc.Airdrop(ctx, localnet.LamportsPerSOL)
	require.NoError(t, err)

	sig, err := svc.Invoke(ctx, "list_property", nil, []byte{1})
	var txErr *confirm.TransactionError
	require.True(t, errors.As(err, &txErr), "want TransactionError, got %v", err)
	assert.Equal(t, sig, txErr.Signature)

	receipts, err := e.receipts.ListReceipts(1)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "instruction 0: custom program error 101 (InstructionFallbackNotFound)", receipts[0].Err)
}

func TestIDLRestrictsInstructions(t *testing.T) {
	e := newEnv(t)
	ref := realEstateRef
	ref.IDL = &anchor.IDL{Instructions: []anchor.IDLInstruction{{Name: "initialize"}}}
	svc := e.service(ref, program.Options{})

	_, err := svc.Invoke(context.Background(), "listProperty", nil, nil)
	assert.ErrorIs(t, err, program.ErrUnknownInstruction)
}
