// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <path>",
		Short: "Switch to another book file",
		Long: `Make another JSON file the active book file and remember it in the
config file. The file is loaded first; a file that does not exist yet starts
an empty list and is created on the first change. A malformed file is
rejected and the current file stays active. The current file is not read,
so a broken one can still be switched away from.

Examples:
  arc-books use ~/Dropbox/books.json
  arc-books use ./club-2025.json`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationOpensArg: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.lib.Path()
			a.log.Info("switched active file", "from", a.settings.File, "to", path, "count", a.lib.Len())
			if !a.dryRun {
				if err := a.cfg.SaveActiveFile(path); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using %s (%d book(s))\n", a.lib.Path(), a.lib.Len())
			return nil
		},
	}

	return cmd
}
