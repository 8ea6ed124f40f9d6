// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		Long: `Display statistics about your reading list: books per status, tags,
and the most recently finished book.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}

			st := library.ComputeStats(a.lib.Books())
			if done, err := out.Structured(cmd.OutOrStdout(), st); done || err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Reading Statistics\n")
			fmt.Fprintf(w, "==================\n\n")
			fmt.Fprintf(w, "Books:         %s\n", humanize.Comma(int64(st.Total)))
			fmt.Fprintln(w, "By status:")
			for _, s := range library.Statuses {
				fmt.Fprintf(w, "  %-8s %d\n", s+":", st.ByStatus[s])
			}
			fmt.Fprintf(w, "Tags:          %d unique\n", len(st.Tags))
			if st.LastFinished != nil {
				fmt.Fprintf(w, "Last finished: %s (%s, %s)\n",
					st.LastFinished.Title,
					library.FormatDate(st.LastFinishedAt),
					humanize.RelTime(st.LastFinishedAt, a.now(), "ago", "from now"))
			}

			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
