// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage book tags",
		Long: `Add, remove, and list tags on books.

Examples:
  arc-books tag add 3 scifi classic
  arc-books tag remove 3 classic
  arc-books tag list`,
	}

	cmd.AddCommand(newTagAddCmd(a))
	cmd.AddCommand(newTagRemoveCmd(a))
	cmd.AddCommand(newTagListCmd(a))

	return cmd
}

// tagArgs splits tag arguments that may themselves hold comma lists.
func tagArgs(args []string) []string {
	var tags []string
	for _, arg := range args {
		for _, t := range strings.Split(arg, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func newTagAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <position> <tag> [tag...]",
		Short: "Add tags to a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			tags := tagArgs(args[1:])
			added, err := a.lib.AddTags(b.ID, tags)
			if err != nil {
				return err
			}

			title := output.Truncate(b.Title, 40)
			for _, t := range tags {
				if slices.Contains(added, t) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added tag %q to %s\n", t, title)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already tagged %q\n", title, t)
				}
			}
			return nil
		},
	}
}

func newTagRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position> <tag> [tag...]",
		Short: "Remove tags from a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			tags := tagArgs(args[1:])
			removed, err := a.lib.RemoveTags(b.ID, tags)
			if err != nil {
				return err
			}

			title := output.Truncate(b.Title, 40)
			for _, t := range tags {
				if slices.Contains(removed, t) {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %q from %s\n", t, title)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not tagged %q\n", title, t)
				}
			}
			return nil
		},
	}
}

func newTagListCmd(a *app) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tags with the number of books carrying each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}

			tags := library.TagCounts(a.lib.Books())
			if done, err := out.Structured(cmd.OutOrStdout(), tags); done || err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
				return nil
			}

			// Sort by count descending, then by name
			type tagCount struct {
				Tag   string
				Count int
			}
			sorted := make([]tagCount, 0, len(tags))
			for tag, count := range tags {
				sorted = append(sorted, tagCount{tag, count})
			}
			sort.Slice(sorted, func(i, j int) bool {
				if sorted[i].Count != sorted[j].Count {
					return sorted[i].Count > sorted[j].Count
				}
				return sorted[i].Tag < sorted[j].Tag
			})

			table := output.NewTable(cmd.OutOrStdout(), "Tag", "Books")
			for _, tc := range sorted {
				table.AddRow(tc.Tag, strconv.Itoa(tc.Count))
			}
			return table.Render()
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}
