package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List receipts of submitted instructions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			receipts, err := appWire.Receipts.ListReceipts(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(receipts); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(receipts)
			default:
				return fmt.Errorf("unknown output format %q (want yaml or json)", output)
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum receipts to show (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
