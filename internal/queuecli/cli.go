// Package queuecli implements the queued command: a queue server hosting one
// buffer owner, and client subcommands that talk to it.
package queuecli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command returns the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <subcommand>", os.Args[0]),
		Short: "FIFO queue server and client",

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.AddCommand(
		serveCommand(),
		putCommand(),
		getCommand(),
		sizeCommand(),
		healthcheckCommand(),
	)

	return cmd
}

// Execute runs the command line args and returns the process exit code:
// 0 on success, 2 when a queue was full or empty, 64 for an invalid timeout
// and 1 for any other failure.
func Execute(ctx context.Context, args []string) int {
	cmd := Command()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	}
	return exitCode(err)
}
