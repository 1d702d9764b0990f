package interfaces

import (
	"context"

	domaintypes "realestate/internal/domain/types"
)

// RPCClient is how we talk to a cluster's JSON-RPC endpoint, all with context.
type RPCClient interface {
	GetHealth(ctx context.Context) error
	GetLatestBlockhash(
		ctx context.Context,
		commitment domaintypes.Commitment,
	) (domaintypes.LatestBlockhash, error)
	GetBlockHeight(ctx context.Context, commitment domaintypes.Commitment) (uint64, error)
	GetBalance(
		ctx context.Context,
		account domaintypes.Pubkey,
		commitment domaintypes.Commitment,
	) (uint64, error)

	SendTransaction(
		ctx context.Context,
		raw []byte,
		opts domaintypes.SendOptions,
	) (domaintypes.Signature, error)
	GetSignatureStatuses(
		ctx context.Context,
		signatures ...domaintypes.Signature,
	) ([]*domaintypes.SignatureStatus, error)
	GetTransaction(
		ctx context.Context,
		signature domaintypes.Signature,
		commitment domaintypes.Commitment,
	) (*domaintypes.TransactionInfo, error)
	RequestAirdrop(
		ctx context.Context,
		account domaintypes.Pubkey,
		lamports uint64,
	) (domaintypes.Signature, error)
}
