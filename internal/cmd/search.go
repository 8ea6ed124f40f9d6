// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var out output.OutputOptions
	var filter filterOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books",
		Long: `Search the reading list. Same as 'list --search <query>'.

Examples:
  arc-books search "le guin"              # Search all fields
  arc-books search scifi --in tags        # Only tags
  arc-books search 2024 --in finished     # Finished in 2024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}

			filter.search = strings.Join(args, " ")
			books, err := filter.apply(a)
			if err != nil {
				return err
			}

			if len(books) == 0 && out.Is(output.OutputTable) {
				fmt.Fprintf(cmd.OutOrStdout(), "No books found matching %q\n", filter.search)
				return nil
			}
			if out.Is(output.OutputTable) {
				fmt.Fprintf(cmd.OutOrStdout(), "Found %d result(s) for %q in %s:\n\n", len(books), filter.search, filter.field(a))
			}
			return a.renderBooks(cmd.OutOrStdout(), &out, books)
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	filter.addFlags(cmd)
	_ = cmd.Flags().MarkHidden("search")

	return cmd
}
