// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportFormat names an export encoding.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
	ExportMarkdown ExportFormat = "markdown"
	ExportSQLite   ExportFormat = "sqlite"
)

// ExportBytes renders books in one of the text formats. SQLite exports go
// through WriteSQLite instead since they need a file.
func ExportBytes(books []Book, format ExportFormat, now time.Time) ([]byte, error) {
	switch format {
	case ExportJSON:
		return exportJSON(books)
	case ExportYAML:
		return exportYAML(books)
	case ExportMarkdown:
		return exportMarkdown(books, now), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (choose json, yaml, markdown, sqlite)", format)
	}
}

// exportJSON writes the same document shape as the backing file.
func exportJSON(books []Book) ([]byte, error) {
	ptrs := make([]*Book, len(books))
	for i := range books {
		ptrs[i] = &books[i]
	}
	return encodeBooks(ptrs)
}

func exportYAML(books []Book) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// exportMarkdown converts books to a Markdown reading log.
func exportMarkdown(books []Book, now time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Reading List\n\n")
	fmt.Fprintf(&buf, "Generated: %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintf(&buf, "Total books: %d\n\n---\n\n", len(books))

	for _, b := range books {
		fmt.Fprintf(&buf, "## %s\n\n", b.Title)
		if b.Author != "" {
			buf.WriteString("**Author:** " + b.Author + "\n\n")
		}
		buf.WriteString("**Status:** " + string(b.Status) + "\n\n")
		if len(b.StartDate) > 0 {
			buf.WriteString("**Started:** " + b.StartDate.Joined() + "\n\n")
		}
		if len(b.DateFinished) > 0 {
			buf.WriteString("**Finished:** " + b.DateFinished.Joined() + "\n\n")
		}
		if len(b.Tags) > 0 {
			buf.WriteString("**Tags:** " + strings.Join(b.Tags, ", ") + "\n\n")
		}
		if b.Notes != "" {
			buf.WriteString("**Notes**\n\n")
			buf.WriteString(b.Notes + "\n\n")
		}
		buf.WriteString("---\n\n")
	}

	return buf.Bytes()
}
