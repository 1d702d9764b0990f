package types

import (
	"fmt"
	"strings"
)

// Commitment is how settled a transaction must be before it is reported.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

func (c Commitment) rank() int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	}
	return 0
}

// Valid reports whether c is a known commitment level.
func (c Commitment) Valid() bool { return c.rank() > 0 }

// AtLeast reports whether c is as settled as want.
func (c Commitment) AtLeast(want Commitment) bool {
	return c.Valid() && c.rank() >= want.rank()
}

// ParseCommitment validates s as a commitment level.
func ParseCommitment(s string) (Commitment, error) {
	c := Commitment(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown commitment %q (want processed, confirmed or finalized)", s)
	}
	return c, nil
}

// Cluster monikers understood in place of an RPC URL.
var clusterURLs = map[string]string{
	"localnet":     "http://127.0.0.1:8899",
	"localhost":    "http://127.0.0.1:8899",
	"devnet":       "https://api.devnet.solana.com",
	"testnet":      "https://api.testnet.solana.com",
	"mainnet":      "https://api.mainnet-beta.solana.com",
	"mainnet-beta": "https://api.mainnet-beta.solana.com",
}

// ResolveCluster maps a cluster moniker to its RPC URL. Anything else is
// returned unchanged and treated as a URL.
func ResolveCluster(cluster string) string {
	if u, ok := clusterURLs[strings.ToLower(cluster)]; ok {
		return u
	}
	return cluster
}

// ClusterName maps a cluster moniker or URL back to the name used for the
// [programs.<name>] table in Anchor.toml.
func ClusterName(cluster string) string {
	switch ResolveCluster(cluster) {
	case clusterURLs["localnet"]:
		return "localnet"
	case clusterURLs["devnet"]:
		return "devnet"
	case clusterURLs["testnet"]:
		return "testnet"
	case clusterURLs["mainnet"]:
		return "mainnet"
	}
	return "localnet"
}
