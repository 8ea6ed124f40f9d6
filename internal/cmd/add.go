// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/mtreilly/arc-books/internal/library"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		author   string
		tags     string
		started  string
		finished string
		unread   bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to the list",
		Long: `Add a book to the reading list.

The status follows the dates you give: a finish date marks the book Read,
a start date alone marks it Reading, no dates leave it Unread. Use --unread
to keep the book Unread whatever dates are given.

Examples:
  arc-books add "Dune" --author "Frank Herbert" --tags "scifi, classic"
  arc-books add "Emma" --started 01.03.2024               # Reading
  arc-books add "Ulysses" --started 1.1.2023 --finished 30.6.2023
  arc-books add "Middlemarch" --started 01.01.2024 --unread`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lib.Create(library.CreateInput{
				Title:       strings.Join(args, " "),
				Author:      author,
				Tags:        tags,
				Started:     started,
				Finished:    finished,
				InferStatus: !unread,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s (%s)\n", a.lib.Position(b.ID), b.Title, b.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Author")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringVar(&started, "started", "", "Start date (DD.MM.YYYY)")
	cmd.Flags().StringVar(&finished, "finished", "", "Finish date (DD.MM.YYYY)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Keep the book Unread regardless of dates")

	return cmd
}
