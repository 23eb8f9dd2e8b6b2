// Command projector computes financial reports from scenario files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scenario_projection/pkg/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "projector",
		Short: "Project profit & loss, balance sheet and cashflow from a scenario",
		Long: `projector reads a scenario document (JSON, HJSON or YAML) and derives the
financial reports of the company it describes.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zap.ReplaceGlobals(observability.NewLogger(logLevel))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newCategoriesCmd(),
		newComputeCmd(),
		newPeriodsCmd(),
		newValidateCmd(),
		newValueCmd(),
	)
	return root
}

// printf writes to the command's output so tests can capture it.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
