// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

func newDuplicatesCmd(a *app) *cobra.Command {
	var (
		threshold float64 // similarity threshold (0-1)
		out       output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate or similar books",
		Long: `Scan the reading list for books entered twice by comparing titles
and authors.

Examples:
  arc-books duplicates
  arc-books duplicates --threshold 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}
			if threshold <= 0 || threshold > 1 {
				return apperr.Validationf("threshold must be in (0, 1], got %.2f", threshold)
			}

			pairs := library.FindDuplicates(a.lib.Books(), threshold)
			if done, err := out.Structured(cmd.OutOrStdout(), pairs); done || err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(pairs) == 0 {
				fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
				return nil
			}

			fmt.Fprintf(w, "Found %d potential duplicate pair(s):\n\n", len(pairs))
			for i, pair := range pairs {
				fmt.Fprintf(w, "[%d] Score: %.2f (%s)\n", i+1, pair.Score, pair.Reason)
				fmt.Fprintf(w, "    #%d %s\n", a.lib.Position(pair.First.ID), output.Truncate(pair.First.Title, 60))
				fmt.Fprintf(w, "    #%d %s\n", a.lib.Position(pair.Second.ID), output.Truncate(pair.Second.Title, 60))
				fmt.Fprintln(w)
			}

			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Similarity threshold (0-1)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
