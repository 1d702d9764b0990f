package commands

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"realestate/internal/localnet"
)

func airdropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop <sol>",
		Short: "Request SOL for the wallet (development clusters only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := parseSOL(args[0])
			if err != nil {
				return err
			}
			prog, err := appWire.Program(passphrase, programName)
			if err != nil {
				return err
			}
			sig, err := prog.Airdrop(cmd.Context(), lamports)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Airdropped %s SOL: %s\n", args[0], sig)
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the wallet balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := appWire.Program(passphrase, programName)
			if err != nil {
				return err
			}
			lamports, err := prog.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s SOL\n", formatSOL(lamports))
			return nil
		},
	}
}

func parseSOL(s string) (uint64, error) {
	sol, err := strconv.ParseFloat(s, 64)
	if err != nil || sol <= 0 || math.IsInf(sol, 0) {
		return 0, fmt.Errorf("invalid SOL amount %q", s)
	}
	lamports := math.Round(sol * localnet.LamportsPerSOL)
	if lamports < 1 || lamports > math.MaxUint64/2 {
		return 0, fmt.Errorf("SOL amount %q out of range", s)
	}
	return uint64(lamports), nil
}

func formatSOL(lamports uint64) string {
	return strconv.FormatFloat(float64(lamports)/localnet.LamportsPerSOL, 'f', -1, 64)
}
