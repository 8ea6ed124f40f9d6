// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import books from another book file",
		Long: `Append the books of another arc-books JSON file to the active file.

Books whose title and author are already on the list (ignoring case) are
skipped. The other file is not changed.

Examples:
  arc-books import ~/old-laptop/books.json
  arc-books import shared.json --dry-run     # preview only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importPath := args[0]

			// Expand ~ to home directory
			if strings.HasPrefix(importPath, "~") {
				home, _ := os.UserHomeDir()
				importPath = filepath.Join(home, importPath[1:])
			}

			res, err := a.lib.Import(importPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, title := range res.Titles {
				fmt.Fprintf(w, "Imported: %s\n", title)
			}
			fmt.Fprintf(w, "\nImported: %d, Skipped: %d\n", res.Imported, res.Skipped)
			return nil
		},
	}

	return cmd
}
