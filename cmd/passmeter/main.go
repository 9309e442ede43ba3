package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/config"
	"github.com/5w1tchy/password-meter/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "passmeter",
		Short:         "Rate password strength and generate strong passwords",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI output goes to stdout; logs stay quiet unless asked for
			_, err := logging.New(logLevel, "console")
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newEvaluateCmd(), newGenerateCmd(config.Load), newTokenCmd(config.Load))
	return root
}
