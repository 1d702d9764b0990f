package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"realestate/internal/build"
	"realestate/internal/domain"
	"realestate/internal/rpc"
	programsvc "realestate/internal/services/program"
	walletsvc "realestate/internal/services/wallet"
	"realestate/internal/store"
	"realestate/internal/workspace"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Workspace *workspace.Workspace
	Keys      *store.KeypairFileStore
	Receipts  domain.ReceiptStore
	Wallet    domain.WalletService
	RPC       *rpc.Client
	Builder   *build.Runner
	HTTP      *http.Client

	log *zap.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	ws := cfg.Workspace
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	walletPath, err := ws.WalletPath()
	if err != nil {
		return nil, fmt.Errorf("wallet path: %w", err)
	}
	buildDir, err := ws.BuildDir()
	if err != nil {
		return nil, fmt.Errorf("build dir: %w", err)
	}

	// File-based stores
	keys := store.NewKeypairFileStore(walletPath)
	receipts := store.NewReceiptFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: ws.Config.Provider.Timeout}
	}

	rc := rpc.New(ws.ClusterURL(), httpClient, log.Named("rpc"))

	builder := build.New(build.Config{
		Dir:     buildDir,
		Command: ws.Config.Build.Command,
		Timeout: ws.Config.Build.Timeout,
	}, cfg.Out, log.Named("build"))

	return &Wire{
		Workspace: ws,
		Keys:      keys,
		Receipts:  receipts,
		Wallet:    walletsvc.New(keys),
		RPC:       rc,
		Builder:   builder,
		HTTP:      httpClient,
		log:       log,
	}, nil
}

// Program loads the payer wallet and returns a client for the named program.
func (w *Wire) Program(passphrase, name string) (*programsvc.Service, error) {
	ref, err := w.Workspace.Program(name)
	if err != nil {
		return nil, err
	}
	payer, err := w.Wallet.LoadWallet(passphrase)
	if err != nil {
		return nil, fmt.Errorf("load wallet %s: %w", w.Keys.Path(), err)
	}
	commitment, err := w.Workspace.Commitment()
	if err != nil {
		return nil, err
	}
	preflight, err := w.Workspace.PreflightCommitment()
	if err != nil {
		return nil, err
	}
	return programsvc.New(ref, w.RPC, payer, programsvc.Options{
		Commitment:          commitment,
		PreflightCommitment: preflight,
		Cluster:             w.Workspace.ClusterURL(),
		Timeout:             w.Workspace.Config.Provider.Timeout,
		Receipts:            w.Receipts,
		Logger:              w.log.Named("program"),
	}), nil
}
