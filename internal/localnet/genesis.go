package localnet

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"realestate/internal/domain"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// Genesis is the initial validator state.
type Genesis struct {
	SlotInterval time.Duration    `yaml:"slot_interval"`
	Accounts     []GenesisAccount `yaml:"accounts"`
}

// GenesisAccount funds an account at startup.
type GenesisAccount struct {
	Pubkey   string `yaml:"pubkey"`
	Lamports uint64 `yaml:"lamports"`
}

// DefaultGenesis produces 400ms slots and funds no accounts.
func DefaultGenesis() Genesis {
	return Genesis{SlotInterval: 400 * time.Millisecond}
}

// LoadGenesis reads a YAML genesis file, filling unset fields from
// DefaultGenesis.
//
//	slot_interval: 400ms
//	accounts:
//	  - pubkey: 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin
//	    lamports: 500000000000
func LoadGenesis(path string) (Genesis, error) {
	g := DefaultGenesis()
	b, err := os.ReadFile(path)
	if err != nil {
		return g, err
	}
	if err := yaml.Unmarshal(b, &g); err != nil {
		return g, fmt.Errorf("parse genesis %s: %w", path, err)
	}
	if g.SlotInterval <= 0 {
		return g, fmt.Errorf("genesis %s: slot_interval must be positive", path)
	}
	for _, a := range g.Accounts {
		if _, err := domain.ParsePubkey(a.Pubkey); err != nil {
			return g, fmt.Errorf("genesis %s: %w", path, err)
		}
	}
	return g, nil
}
