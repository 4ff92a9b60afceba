package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the firefighter CLI. Logs go to stderr; results go to stdout or to the --out file.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(logs io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "firefighter",
		Short:        "Firefighter finds optimal defense schedules against a spreading fire",
		Long:         `Firefighter solves the firefighter game on undirected graphs exactly: a fire spreads from a root vertex one hop per round while a bounded number of vertices are defended each round, and defense spreads as well. The goal is to keep as many vertices unburned as possible.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logs, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newGenerateCmd())

	return root
}
