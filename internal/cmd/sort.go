// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/spf13/cobra"
)

func newSortCmd(a *app) *cobra.Command {
	var asc, desc bool

	cmd := &cobra.Command{
		Use:   "sort <field>",
		Short: "Sort the book file by a field",
		Long: `Reorder the books in the active file and save the new order.

Fields: title, author, status, started, finished, tags, notes.
Text compares without regard to case. Dates compare by the most recent
entry, and books without a date come first.

Sorting by the same field twice in a row flips the direction, like clicking
a column heading. Use --asc or --desc to choose explicitly.

Examples:
  arc-books sort title            # A to Z
  arc-books sort title            # again: Z to A
  arc-books sort finished --desc  # Most recently finished first`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asc && desc {
				return apperr.Validation("--asc and --desc cannot be used together")
			}
			field, err := library.ParseSortField(args[0])
			if err != nil {
				return apperr.Validation(err.Error())
			}

			last := library.SortState{Field: library.SortField(a.settings.Sort.Field), Descending: a.settings.Sort.Descending}
			state := last.Toggle(field)
			switch {
			case asc:
				state.Descending = false
			case desc:
				state.Descending = true
			}

			if err := a.lib.Sort(state.Field, state.Descending); err != nil {
				return err
			}
			if !a.dryRun {
				if err := a.cfg.SaveSortState(string(state.Field), state.Descending); err != nil {
					a.log.Warn("could not remember sort order", "error", err)
				}
			}

			direction := "ascending"
			if state.Descending {
				direction = "descending"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %d book(s) by %s (%s)\n", a.lib.Len(), state.Field, direction)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asc, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	return cmd
}
