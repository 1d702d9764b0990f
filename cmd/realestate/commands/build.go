package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"realestate/internal/domain"
)

func buildCmd() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the on-chain program and report success or failure",
		Long: `Changes into the program directory and runs the build command
(default "anchor build" in ./real-estate). Prints "Build successful" or
"Build failed" and exits with the build's status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return appWire.Builder.Watch(cmd.Context(), debounce, func(res domain.BuildResult, err error) {
					if err != nil {
						logger.Warn("build failed", zap.Error(err), zap.String("output", res.Output))
					}
				})
			}
			res, err := appWire.Builder.Build(cmd.Context())
			if err != nil && res.Output != "" {
				cmd.PrintErrln(res.Output)
			}
			return err
		},
	}
	cmd.Flags().String("dir", "", "program directory (default real-estate)")
	cmd.Flags().String("cmd", "", "build command (default \"anchor build\")")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild when sources change")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a rebuild in watch mode")
	return cmd
}
