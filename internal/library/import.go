// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"

	"golang.org/x/text/cases"
)

// ImportResult counts what Import did.
type ImportResult struct {
	Imported int      `json:"imported" yaml:"imported"`
	Skipped  int      `json:"skipped" yaml:"skipped"`
	Titles   []string `json:"titles" yaml:"titles"`
}

// Import appends the books of another reading-list file to the collection.
// A book whose title and author already exist (ignoring case) is skipped.
// The source file is only read; the collection is saved once at the end.
func (l *Library) Import(path string) (ImportResult, error) {
	incoming, err := NewFileStore(path, l.logger).Load()
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}

	fold := cases.Fold()
	key := func(b *Book) string {
		return fold.String(b.Title) + "\x00" + fold.String(b.Author)
	}
	seen := make(map[string]bool, len(l.books))
	for _, b := range l.books {
		seen[key(b)] = true
	}

	res := ImportResult{Titles: []string{}}
	for _, b := range incoming {
		k := key(b)
		if seen[k] {
			res.Skipped++
			continue
		}
		seen[k] = true
		l.books = append(l.books, b)
		res.Imported++
		res.Titles = append(res.Titles, b.Title)
	}

	l.logger.Info("imported books", "from", path, "imported", res.Imported, "skipped", res.Skipped)
	if res.Imported == 0 {
		return res, nil
	}
	return res, l.Save()
}
