package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"realestate/internal/app"
	"realestate/internal/tracing"
	"realestate/internal/workspace"
)

const version = "0.1.0"

var (
	home         string
	workspaceDir string
	passphrase   string
	clusterURL   string
	walletPath   string
	commitment   string
	traceFile    string
	verbose      bool

	logger  *zap.Logger
	appWire *app.Wire
)

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "realestate",
		Short:        "Build and exercise the RealEstate program",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".realestate")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			ws, err := workspace.Load(workspaceDir, cmd.Flags(), logger.Named("workspace"))
			if err != nil {
				return err
			}
			if !verbose {
				lvl, err := zapcore.ParseLevel(ws.Config.Log.Level)
				if err != nil {
					return fmt.Errorf("log.level: %w", err)
				}
				config.Level.SetLevel(lvl)
			}
			if ws.Config.Trace.File != "" {
				if err := tracing.Init("realestate", version, ws.Config.Trace.File); err != nil {
					return fmt.Errorf("tracing: %w", err)
				}
			}

			appWire, err = app.NewWire(app.Config{
				Home:      home,
				Workspace: ws,
				Logger:    logger,
				Out:       cmd.OutOrStdout(),
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracing.Shutdown(ctx)
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "local state dir (default ~/.realestate)")
	pf.StringVar(&workspaceDir, "workspace", ".", "Anchor workspace root (directory holding Anchor.toml)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the wallet keystore")
	pf.StringVar(&clusterURL, "url", "", "cluster moniker or RPC URL (overrides ANCHOR_PROVIDER_URL)")
	pf.StringVar(&walletPath, "wallet", "", "payer keypair path (overrides ANCHOR_WALLET)")
	pf.StringVar(&commitment, "commitment", "", "confirmation commitment: processed, confirmed or finalized")
	pf.StringVar(&traceFile, "trace-file", "", "write OpenTelemetry spans to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		buildCmd(),
		initializeCmd(),
		keygenCmd(),
		addressCmd(),
		airdropCmd(),
		balanceCmd(),
		historyCmd(),
	)
	return root
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRoot().ExecuteContext(ctx)
}
