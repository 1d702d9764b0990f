package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the payer wallet",
		Long: `Generates an ed25519 keypair at the wallet path. Without -p it is written
in the Solana CLI format; with -p it is encrypted under the passphrase.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, fp, err := appWire.Wallet.GenerateWallet(passphrase, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet created.\nAddress: %s\nFingerprint: %s\nPath: %s\n",
				kp.Public, fp, appWire.Keys.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing wallet")
	return cmd
}
