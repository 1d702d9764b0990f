package interfaces

import (
	"context"

	domaintypes "realestate/internal/domain/types"
)

// WalletService creates, retrieves, and inspects the payer keypair.
type WalletService interface {
	GenerateWallet(passphrase string, overwrite bool) (
		domaintypes.Keypair,
		string,
		error,
	)
	LoadWallet(passphrase string) (domaintypes.Keypair, error)
	Address(passphrase string) (domaintypes.Pubkey, string, error)
}

// ProgramService invokes instructions on one deployed program.
type ProgramService interface {
	Initialize(ctx context.Context) (domaintypes.Signature, error)
	Airdrop(ctx context.Context, lamports uint64) (domaintypes.Signature, error)
	Balance(ctx context.Context) (uint64, error)
}

// Builder compiles the on-chain program.
type Builder interface {
	Build(ctx context.Context) (domaintypes.BuildResult, error)
}
