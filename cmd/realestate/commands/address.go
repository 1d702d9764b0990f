package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address and fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, fp, err := appWire.Wallet.Address(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\nFingerprint: %s\n", pub, fp)
			return nil
		},
	}
}
