// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <position> <tags|notes> <value>",
		Short: "Replace a book's tags or notes",
		Long: `Replace the tags or notes of a book. Tags are given as one
comma-separated value and replace the existing tags. An empty value clears
the field.

Examples:
  arc-books edit 2 tags "scifi, favourites"
  arc-books edit 2 notes "Lent to Sam"
  arc-books edit 2 notes ""`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			b, err = a.lib.EditField(b.ID, args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}

			switch strings.ToLower(args[1]) {
			case "tags":
				fmt.Fprintf(cmd.OutOrStdout(), "Tags of %s: %s\n", b.Title, orDash(b.JoinedTags()))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Updated notes of %s\n", b.Title)
			}
			return nil
		},
	}

	return cmd
}
