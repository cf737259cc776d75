// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the saved command history",
		Args:  cobra.NoArgs,
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print saved commands, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.history().Entries()
			start := 0
			if limit > 0 && len(entries) > limit {
				start = len(entries) - limit
			}
			for i := start; i < len(entries); i++ {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, entries[i])
			}
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the newest N entries")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved command history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			s.history().Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}
