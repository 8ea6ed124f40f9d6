// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/spf13/cobra"
)

func newDateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Manage start and finish dates",
		Long: `A book keeps a list of start dates and a list of finish dates, one
entry per reading. Dates use the DD.MM.YYYY format.

Examples:
  arc-books date list 3
  arc-books date add 3 start 01.02.2024
  arc-books date add 3 finish 14.2.2024
  arc-books date remove 3 start 1`,
	}

	cmd.AddCommand(newDateListCmd(a))
	cmd.AddCommand(newDateAddCmd(a))
	cmd.AddCommand(newDateRemoveCmd(a))

	return cmd
}

func parseKind(text string) (library.DateKind, error) {
	which, err := library.ParseDateKind(text)
	if err != nil {
		return "", apperr.Validation(err.Error())
	}
	return which, nil
}

func newDateListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <position>",
		Short: "Show a book's dates with their numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, b.Title)
			for _, which := range []library.DateKind{library.DateStart, library.DateFinish} {
				dates := *b.Dates(which)
				fmt.Fprintf(w, "  %s:\n", which)
				if len(dates) == 0 {
					fmt.Fprintln(w, "    (none)")
				}
				for i, d := range dates {
					fmt.Fprintf(w, "    %d. %s\n", i+1, d)
				}
			}
			return nil
		},
	}
}

func newDateAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <position> <start|finish> <DD.MM.YYYY>",
		Short: "Add a start or finish date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			which, err := parseKind(args[1])
			if err != nil {
				return err
			}

			added, err := a.lib.AddDate(b.ID, which, args[2])
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has %s date %s\n", b.Title, which, args[2])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s date to %s\n", which, b.Title)
			return nil
		},
	}
}

func newDateRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position> <start|finish> <number>",
		Short: "Remove a date by its number from 'date list'",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			which, err := parseKind(args[1])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return apperr.Validationf("invalid date number %q", args[2])
			}

			removed, err := a.lib.RemoveDate(b.ID, which, n-1)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no %s date #%d\n", b.Title, which, n)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s date #%d from %s\n", which, n, b.Title)
			return nil
		},
	}
}
