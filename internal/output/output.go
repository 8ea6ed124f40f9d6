// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
	OutputYAML  Format = "yaml"
)

// OutputOptions carries the -o/--output flag of a command.
type OutputOptions struct {
	Format Format
	raw    string
}

// AddOutputFlags registers -o/--output on cmd.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format (table, json, yaml)")
}

// Resolve validates the flag value.
func (o *OutputOptions) Resolve() error {
	switch f := Format(strings.ToLower(strings.TrimSpace(o.raw))); f {
	case OutputTable, OutputJSON, OutputYAML:
		o.Format = f
		return nil
	case "":
		o.Format = OutputTable
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table, json, yaml)", o.raw)
	}
}

// Is reports whether the resolved format is f.
func (o *OutputOptions) Is(f Format) bool {
	return o.Format == f
}

// Structured writes v as JSON or YAML according to o. It reports false for
// table output so the caller renders its own table.
func (o *OutputOptions) Structured(w io.Writer, v any) (bool, error) {
	switch o.Format {
	case OutputJSON:
		return true, JSON(w, v)
	case OutputYAML:
		return true, YAML(w, v)
	default:
		return false, nil
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table is a column-aligned plain-text table.
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewTable starts a table with the given headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{w: w, headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len is the number of rows added.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table.
func (t *Table) Render() error {
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	writeRow := func(cells []string) {
		line := make([]string, len(t.headers))
		for i := range line {
			if i < len(cells) {
				line[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(cells[i])
			}
		}
		fmt.Fprintln(tw, strings.TrimRight(strings.Join(line, "\t"), "\t"))
	}
	writeRow(t.headers)
	underline := make([]string, len(t.headers))
	for i, h := range t.headers {
		underline[i] = strings.Repeat("-", utf8.RuneCountInString(h))
	}
	writeRow(underline)
	for _, r := range t.rows {
		writeRow(r)
	}
	return tw.Flush()
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}
