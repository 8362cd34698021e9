// Package cli implements the dispatchctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs dispatchctl and exits non-zero on error.
func Execute() {
	if err := createRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dispatchctl",
		Short:         "Inspect and exercise dispatch kernel configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		createValidateCommand(),
		createRoutesCommand(),
		createReplayCommand(),
	)
	return root
}
