package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var programName = "RealEstate"

func initializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Invoke the program's initialize instruction",
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := appWire.Program(passphrase, programName)
			if err != nil {
				return err
			}
			sig, err := prog.Initialize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Your transaction signature %s\n", sig)
			return nil
		},
	}
	cmd.Flags().StringVar(&programName, "program", "RealEstate", "workspace program to invoke")
	return cmd
}
