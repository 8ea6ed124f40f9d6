// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		dest   string
		filter filterOptions
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export books to other formats",
		Long: `Export the reading list (or a filtered part of it) as JSON, YAML,
Markdown, or a SQLite database for ad-hoc SQL queries.

JSON output has the same shape as the book file, so it can be used with
'arc-books use' or 'arc-books import'.

Examples:
  arc-books export --format markdown > reading.md
  arc-books export --format yaml --hide Unread
  arc-books export --format json --search scifi --in tags -o scifi.json
  arc-books export --format sqlite -o books.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := filter.apply(a)
			if err != nil {
				return err
			}

			f := library.ExportFormat(strings.ToLower(format))
			if f == library.ExportSQLite {
				if dest == "" || dest == "-" {
					return apperr.Validation("sqlite export needs a file: use --output <path>")
				}
				if err := library.WriteSQLite(books, dest); err != nil {
					return apperr.IO("export sqlite", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d book(s) to %s\n", len(books), dest)
				return nil
			}

			outBytes, err := library.ExportBytes(books, f, a.now())
			if err != nil {
				return apperr.Validation(err.Error())
			}

			if dest == "" || dest == "-" {
				_, err := cmd.OutOrStdout().Write(outBytes)
				return err
			}
			if err := os.WriteFile(dest, outBytes, 0o644); err != nil {
				return apperr.IO("write "+dest, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d book(s) to %s\n", len(books), dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, yaml, markdown, sqlite")
	cmd.Flags().StringVarP(&dest, "output", "o", "-", "Output file (default: stdout)")
	filter.addFlags(cmd)

	return cmd
}
