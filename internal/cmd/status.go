// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var yes, no bool

	cmd := &cobra.Command{
		Use:   "status <position> <Unread|Reading|Read>",
		Short: "Change a book's reading status",
		Long: `Move a book to Unread, Reading or Read.

Some moves offer to update dates as well:
- Read offers to record today as a finish date
- Reading offers to record today as the start date if none is set
- Unread offers to clear all start and finish dates

You are asked before any date changes. Answer up front with --yes or --no,
or set "confirm: always|never" in the config file.

Examples:
  arc-books status 3 Reading
  arc-books status 3 read --yes     # also record today as finished
  arc-books status 7 Unread --no    # keep the dates`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes && no {
				return apperr.Validation("--yes and --no cannot be used together")
			}
			b, err := a.bookAt(args[0])
			if err != nil {
				return err
			}
			status, ok := library.ParseStatus(args[1])
			if !ok {
				return apperr.Validationf("unknown status %q (choose Unread, Reading or Read)", args[1])
			}

			effect, err := a.lib.PendingEffect(b.ID, status)
			if err != nil {
				return err
			}
			apply := false
			if effect != library.EffectNone {
				apply, err = a.confirm(cmd, effect.String(), yes, no)
				if err != nil {
					return err
				}
			}

			b, err = a.lib.ChangeStatus(b.ID, status, apply)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s is now %s\n", b.Title, b.Status)
			if apply {
				fmt.Fprintf(w, "Started: %s\nFinished: %s\n", orDash(b.StartDate.Joined()), orDash(b.DateFinished.Joined()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply date changes without asking")
	cmd.Flags().BoolVar(&no, "no", false, "Never apply date changes")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
