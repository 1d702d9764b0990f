package domain

import (
	interfaces "realestate/internal/domain/interfaces"
	types "realestate/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Pubkey          = types.Pubkey
	PrivateKey      = types.PrivateKey
	Keypair         = types.Keypair
	Signature       = types.Signature
	Hash            = types.Hash
	Commitment      = types.Commitment
	SignatureStatus = types.SignatureStatus
	LatestBlockhash = types.LatestBlockhash
	TransactionMeta = types.TransactionMeta
	TransactionInfo = types.TransactionInfo
	SendOptions     = types.SendOptions
	Receipt         = types.Receipt
	BuildResult     = types.BuildResult
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RPCClient      = interfaces.RPCClient
	KeyStore       = interfaces.KeyStore
	ReceiptStore   = interfaces.ReceiptStore
	WalletService  = interfaces.WalletService
	ProgramService = interfaces.ProgramService
	Builder        = interfaces.Builder
)

const (
	CommitmentProcessed = types.CommitmentProcessed
	CommitmentConfirmed = types.CommitmentConfirmed
	CommitmentFinalized = types.CommitmentFinalized
)

// Function re-exports.
var (
	ParsePubkey     = types.ParsePubkey
	MustPubkey      = types.MustPubkey
	ParseSignature  = types.ParseSignature
	ParseHash       = types.ParseHash
	ParseCommitment = types.ParseCommitment
	ResolveCluster  = types.ResolveCluster
	ClusterName     = types.ClusterName
)
