// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <position>",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Long: `Remove a book from the list. Books after it move up one position.

Examples:
  arc-books delete 4
  arc-books rm 4 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}

			ok := yes
			if !ok {
				if ok, err = ask(cmd, fmt.Sprintf("delete %q", b.Title)); err != nil {
					return err
				}
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}

			if err := a.lib.Delete(b.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", b.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}
