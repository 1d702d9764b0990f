package anchor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"realestate/internal/domain"
)

// IDL is the subset of an Anchor interface description this client uses.
// Both the current format (top-level address, explicit discriminators) and
// the legacy format (metadata.address, camelCase account flags) decode into it.
type IDL struct {
	Address      string           `json:"address"`
	Name         string           `json:"name"`
	Version      string           `json:"version"`
	Metadata     IDLMetadata      `json:"metadata"`
	Instructions []IDLInstruction `json:"instructions"`
}

// IDLMetadata carries the program name and, in legacy files, its address.
type IDLMetadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Spec    string `json:"spec"`
	Address string `json:"address"`
}

// IDLInstruction describes one instruction handler.
type IDLInstruction struct {
	Name          string       `json:"name"`
	Discriminator []int        `json:"discriminator"`
	Accounts      []IDLAccount `json:"accounts"`
	Args          []IDLField   `json:"args"`
}

// IDLAccount is an account an instruction expects.
type IDLAccount struct {
	Name     string `json:"name"`
	Writable bool   `json:"writable"`
	Signer   bool   `json:"signer"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

// IDLField is a named argument; its type is kept undecoded.
type IDLField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// LoadIDL reads and decodes an IDL file.
func LoadIDL(path string) (*IDL, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idl IDL
	if err := json.Unmarshal(b, &idl); err != nil {
		return nil, fmt.Errorf("decode idl %s: %w", filepath.Base(path), err)
	}
	return &idl, nil
}

// ProgramName returns the snake_case program name.
func (i *IDL) ProgramName() string {
	if i.Metadata.Name != "" {
		return SnakeCase(i.Metadata.Name)
	}
	return SnakeCase(i.Name)
}

// ProgramID returns the address recorded in the IDL, if any.
func (i *IDL) ProgramID() (domain.Pubkey, bool, error) {
	addr := i.Address
	if addr == "" {
		addr = i.Metadata.Address
	}
	if addr == "" {
		return domain.Pubkey{}, false, nil
	}
	id, err := domain.ParsePubkey(addr)
	if err != nil {
		return domain.Pubkey{}, false, err
	}
	return id, true, nil
}

// Instruction looks an instruction up by name in any casing.
func (i *IDL) Instruction(name string) (IDLInstruction, bool) {
	want := SnakeCase(name)
	for _, ix := range i.Instructions {
		if SnakeCase(ix.Name) == want {
			return ix, true
		}
	}
	return IDLInstruction{}, false
}

// DiscriminatorBytes returns the recorded discriminator or derives it from
// the instruction name.
func (ix IDLInstruction) DiscriminatorBytes() [DiscriminatorSize]byte {
	if len(ix.Discriminator) == DiscriminatorSize {
		var d [DiscriminatorSize]byte
		for n, v := range ix.Discriminator {
			d[n] = byte(v)
		}
		return d
	}
	return Discriminator(ix.Name)
}

// FindIDL looks for target/idl/<name>.json under a workspace root.
func FindIDL(root, program string) (string, bool) {
	candidates := []string{SnakeCase(program), strings.ReplaceAll(SnakeCase(program), "_", "-")}
	for _, c := range candidates {
		p := filepath.Join(root, "target", "idl", c+".json")
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
