// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath  string
	lineMode    bool
	store       string
	storePath   string
	historySize int
}

// NewRootCommand builds the cmdconsole command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "cmdconsole",
		Short: "An interactive command console with history and tab completion.",
		Long: `An interactive command console with history and tab completion.

Without a subcommand the full-screen console starts. Use --line for a
plain line editor, or pipe commands on stdin to run them in order.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if opts.lineMode || !isTerminal(cmd.OutOrStdout()) || !isTerminal(cmd.InOrStdin()) {
				return runLine(s, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runTUI(cmd.Context(), s)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.cmdconsole/config.toml)")
	flags.StringVar(&opts.store, "store", "", "history backend: memory, file or sqlite")
	flags.StringVar(&opts.storePath, "store-path", "", "history file for the file and sqlite backends")
	flags.IntVar(&opts.historySize, "history-size", 0, "number of history entries to keep")
	root.Flags().BoolVar(&opts.lineMode, "line", false, "use the line editor instead of the full-screen console")

	root.AddCommand(newHistoryCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}
