package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"realestate/internal/localnet"
	"realestate/internal/localnet/builtin"
)

const fundLamports = 500 * localnet.LamportsPerSOL

func main() {
	var (
		addr        string
		genesisPath string
		fund        []string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:          "localnet",
		Short:        "In-memory development validator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			genesis := localnet.DefaultGenesis()
			if genesisPath != "" {
				if genesis, err = localnet.LoadGenesis(genesisPath); err != nil {
					return err
				}
			}
			for _, pk := range fund {
				genesis.Accounts = append(genesis.Accounts, localnet.GenesisAccount{Pubkey: pk, Lamports: fundLamports})
			}

			v, err := localnet.NewValidator(genesis, logger)
			if err != nil {
				return err
			}
			builtin.Register(v)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return localnet.Run(cmd.Context(), ln, v, genesis.SlotInterval, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8899", "listen address")
	cmd.Flags().StringVar(&genesisPath, "genesis", "", "genesis YAML file")
	cmd.Flags().StringSliceVar(&fund, "fund", nil, "pubkey to fund with 500 SOL at startup (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
