package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate/internal/build"
	"realestate/internal/domain"
	"realestate/internal/localnet"
	"realestate/internal/localnet/builtin"
	"realestate/internal/workspace"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home, workspaceDir, passphrase, verbose = "", ".", "", false
	var out bytes.Buffer
	root := newRoot()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInitializeEndToEnd(t *testing.T) {
	v, err := localnet.NewValidator(localnet.DefaultGenesis(), nil)
	require.NoError(t, err)
	builtin.Register(v)
	srv := httptest.NewServer(localnet.NewServer(v, nil).Routes())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx, 10*time.Millisecond) }()
	defer func() {
		cancel()
		<-done
	}()

	root := t.TempDir()
	t.Setenv(workspace.EnvProviderURL, srv.URL)
	t.Setenv(workspace.EnvWallet, filepath.Join(root, "id.json"))
	common := []string{"--home", filepath.Join(root, "home"), "--workspace", root}

	out, err := run(t, append([]string{"keygen"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet created.")

	out, err = run(t, append([]string{"airdrop", "1.5"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Airdropped 1.5 SOL")

	out, err = run(t, append([]string{"initialize"}, common...)...)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Your transaction signature "), out)
	sig, err := domain.ParseSignature(strings.TrimSpace(strings.TrimPrefix(out, "Your transaction signature ")))
	require.NoError(t, err)
	require.NotNil(t, v.Status(sig))

	out, err = run(t, append([]string{"balance"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "1.499995 SOL\n", out)

	out, err = run(t, append([]string{"history", "-o", "json"}, common...)...)
	require.NoError(t, err)
	var receipts []domain.Receipt
	require.NoError(t, json.Unmarshal([]byte(out), &receipts))
	require.Len(t, receipts, 1)
	assert.Equal(t, sig, receipts[0].Signature)
	assert.Equal(t, "initialize", receipts[0].Instruction)

	out, err = run(t, append([]string{"history"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "instruction: initialize")
}

func TestBuildExitCode(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real-estate"), 0o755))
	common := []string{"--home", filepath.Join(root, "home"), "--workspace", root}

	out, err := run(t, append([]string{"build", "--cmd", "true"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Build successful")

	out, err = run(t, append([]string{"build", "--cmd", "sh -c 'exit 2'"}, common...)...)
	var exitErr *build.ExitError
	require.True(t, errors.As(err, &exitErr), "want ExitError, got %v", err)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, out, "Build failed")
}

func TestParseSOL(t *testing.T) {
	lamports, err := parseSOL("0.000000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), lamports)

	for _, bad := range []string{"", "-1", "0", "abc", "1e30"} {
		_, err := parseSOL(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "2.5", formatSOL(2_500_000_000))
}
