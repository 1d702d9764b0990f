package workspace_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate/internal/domain"
	"realestate/internal/programs/realestate"
	"realestate/internal/workspace"
)

const anchorToml = `[toolchain]

[features]
seeds = false
skip-lint = false

[programs.localnet]
real_estate = "7BwJmWypzV9WokmhxHZEjisoiBmpNhzcCnr8wQX3Kn9w"

[programs.devnet]
real_estate = "11111111111111111111111111111111"

[registry]
url = "https://api.apr.dev"

[provider]
cluster = "Localnet"
wallet = "keys/payer.json"

[scripts]
test = "yarn run ts-mocha -p ./tsconfig.json -t 1000000 tests/**/*.ts"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func clearProviderEnv(t *testing.T) {
	t.Setenv(workspace.EnvProviderURL, "")
	t.Setenv(workspace.EnvWallet, "")
	os.Unsetenv(workspace.EnvProviderURL)
	os.Unsetenv(workspace.EnvWallet)
}

func TestLoadDefaultsWithoutAnchorToml(t *testing.T) {
	clearProviderEnv(t)
	root := t.TempDir()

	w, err := workspace.Load(root, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, w.ConfigFile)
	assert.Equal(t, "http://127.0.0.1:8899", w.ClusterURL())
	assert.Equal(t, "anchor build", w.Config.Build.Command)
	assert.Equal(t, 10*time.Minute, w.Config.Build.Timeout)

	c, err := w.Commitment()
	require.NoError(t, err)
	assert.Equal(t, domain.CommitmentProcessed, c)

	dir, err := w.BuildDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "real-estate"), dir)

	ref, err := w.Program("RealEstate")
	require.NoError(t, err)
	assert.Equal(t, realestate.Name, ref.Name)
	assert.Equal(t, realestate.ProgramID, ref.ID)
	assert.Nil(t, ref.IDL)
}

func TestLoadAnchorToml(t *testing.T) {
	clearProviderEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Anchor.toml"), anchorToml)

	w, err := workspace.Load(root, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Anchor.toml"), w.ConfigFile)
	assert.Equal(t, "localnet", w.ClusterName())

	wallet, err := w.WalletPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "keys", "payer.json"), wallet)

	ref, err := w.Program("real-estate")
	require.NoError(t, err)
	assert.Equal(t, realestate.ProgramID, ref.ID)
}

func TestProviderEnvOverridesAnchorToml(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Anchor.toml"), anchorToml)
	t.Setenv(workspace.EnvProviderURL, "https://api.devnet.solana.com")
	t.Setenv(workspace.EnvWallet, "/tmp/other.json")
	t.Setenv("REALESTATE_PROVIDER_COMMITMENT", "confirmed")

	w, err := workspace.Load(root, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://api.devnet.solana.com", w.ClusterURL())
	assert.Equal(t, "devnet", w.ClusterName())

	wallet, err := w.WalletPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", wallet)

	c, err := w.Commitment()
	require.NoError(t, err)
	assert.Equal(t, domain.CommitmentConfirmed, c)

	ref, err := w.Program("real_estate")
	require.NoError(t, err)
	assert.Equal(t, "11111111111111111111111111111111", ref.ID.String())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv(workspace.EnvProviderURL, "https://api.devnet.solana.com")
	root := t.TempDir()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "", "")
	flags.String("commitment", "", "")
	require.NoError(t, flags.Parse([]string{"--url", "http://127.0.0.1:9999"}))

	w, err := workspace.Load(root, flags, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", w.ClusterURL())

	c, err := w.Commitment()
	require.NoError(t, err)
	assert.Equal(t, domain.CommitmentProcessed, c, "unset flag must not clobber the default")
}

func TestProgramAddressFromIDL(t *testing.T) {
	clearProviderEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "target", "idl", "real_estate.json"), `{
  "address": "SysvarC1ock11111111111111111111111111111111",
  "metadata": {"name": "real_estate", "version": "0.1.0"},
  "instructions": [{"name": "initialize", "discriminator": [175,175,109,31,13,152,155,237], "accounts": [], "args": []}]
}`)

	w, err := workspace.Load(root, nil, nil)
	require.NoError(t, err)

	ref, err := w.Program("RealEstate")
	require.NoError(t, err)
	assert.Equal(t, "SysvarC1ock11111111111111111111111111111111", ref.ID.String())
	require.NotNil(t, ref.IDL)
	_, ok := ref.IDL.Instruction("initialize")
	assert.True(t, ok)
}

func TestProgramDirAnchorTomlUsedWhenRootHasNone(t *testing.T) {
	clearProviderEnv(t)
	root := t.TempDir()
	programDir := filepath.Join(root, "real-estate")
	writeFile(t, filepath.Join(programDir, "Anchor.toml"), `[programs.localnet]
real_estate = "SysvarRent111111111111111111111111111111111"

[provider]
cluster = "Localnet"
wallet = "keys/payer.json"
`)

	w, err := workspace.Load(root, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, programDir, w.AnchorRoot)
	assert.Equal(t, filepath.Join(programDir, "Anchor.toml"), w.ConfigFile)

	dir, err := w.BuildDir()
	require.NoError(t, err)
	assert.Equal(t, programDir, dir)

	wallet, err := w.WalletPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(programDir, "keys", "payer.json"), wallet)

	ref, err := w.Program("RealEstate")
	require.NoError(t, err)
	assert.Equal(t, "SysvarRent111111111111111111111111111111111", ref.ID.String())

	writeFile(t, filepath.Join(programDir, "target", "idl", "real_estate.json"), `{
  "address": "SysvarC1ock11111111111111111111111111111111",
  "metadata": {"name": "real_estate", "version": "0.1.0"},
  "instructions": [{"name": "initialize", "discriminator": [175,175,109,31,13,152,155,237], "accounts": [], "args": []}]
}`)
	ref, err = w.Program("RealEstate")
	require.NoError(t, err)
	assert.Equal(t, "SysvarC1ock11111111111111111111111111111111", ref.ID.String())
	require.NotNil(t, ref.IDL)
}

func TestInvalidCommitmentRejected(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("REALESTATE_PROVIDER_COMMITMENT", "eventually")

	_, err := workspace.Load(t.TempDir(), nil, nil)
	require.Error(t, err)
}

func TestUnknownProgram(t *testing.T) {
	clearProviderEnv(t)
	w, err := workspace.Load(t.TempDir(), nil, nil)
	require.NoError(t, err)

	_, err = w.Program("marketplace")
	require.Error(t, err)
}
