// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func exportSample() []Book {
	out := []Book{}
	for _, b := range sampleBooks() {
		out = append(out, b.Clone())
	}
	out[0].Extra = map[string]json.RawMessage{"rating": json.RawMessage(`5`)}
	return out
}

func TestExportBytes_JSONMatchesFileFormat(t *testing.T) {
	data, err := ExportBytes(exportSample(), ExportJSON, fixedNow)
	require.NoError(t, err)

	books, err := decodeBooks(data)
	require.NoError(t, err)
	require.Len(t, books, 4)
	assert.Equal(t, "Dune", books[0].Title)
	assert.JSONEq(t, `5`, string(books[0].Extra["rating"]))
	assert.Equal(t, []string{}, books[3].Tags)
}

func TestExportBytes_YAML(t *testing.T) {
	data, err := ExportBytes(exportSample(), ExportYAML, fixedNow)
	require.NoError(t, err)

	var decoded []struct {
		Title     string   `yaml:"title"`
		Status    string   `yaml:"status"`
		StartDate []string `yaml:"start_date"`
		Tags      []string `yaml:"tags"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "Neuromancer", decoded[2].Title)
	assert.Equal(t, "Reading", decoded[2].Status)
	assert.Equal(t, []string{"10.10.2019", "05.05.2024"}, decoded[3].StartDate)
	assert.NotContains(t, string(data), "id:")
}

func TestExportBytes_Markdown(t *testing.T) {
	data, err := ExportBytes(exportSample(), ExportMarkdown, fixedNow)
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# Reading List")
	assert.Contains(t, md, "Generated: "+fixedNow.Format(time.RFC3339))
	assert.Contains(t, md, "Total books: 4")
	assert.Contains(t, md, "## Dune\n\n**Author:** Frank Herbert")
	assert.Contains(t, md, "**Started:** 10.10.2019, 05.05.2024")
	assert.Contains(t, md, "**Notes**\n\nSpice must flow")
}

func TestExportBytes_Unsupported(t *testing.T) {
	_, err := ExportBytes(nil, ExportFormat("bibtex"), fixedNow)
	assert.Error(t, err)
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")
	require.NoError(t, WriteSQLite(exportSample(), path))
	// Exporting again replaces the database.
	require.NoError(t, WriteSQLite(exportSample(), path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count))
	assert.Equal(t, 4, count)

	var title string
	require.NoError(t, db.QueryRow(`
		SELECT b.title FROM books b
		JOIN book_dates d ON d.position = b.position
		WHERE d.kind = 'start'
		ORDER BY d.iso_date DESC LIMIT 1`).Scan(&title))
	assert.Equal(t, "Straße der Ölsardinen", title)

	var tagged int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM book_tags WHERE tag = 'scifi'`).Scan(&tagged))
	assert.Equal(t, 1, tagged)

	var extra sql.NullString
	require.NoError(t, db.QueryRow(`SELECT extra FROM books WHERE position = 1`).Scan(&extra))
	assert.JSONEq(t, `{"rating":5}`, extra.String)
}

func TestComputeStats(t *testing.T) {
	books := exportSample()
	books[0].Tags = append(books[0].Tags, "scifi")

	st := ComputeStats(books)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByStatus[StatusUnread])
	assert.Equal(t, 1, st.ByStatus[StatusReading])
	assert.Equal(t, 1, st.ByStatus[StatusRead])
	assert.Equal(t, 1, st.Tags["scifi"], "a tag repeated on one book counts once")
	assert.Equal(t, 1, st.Tags["SciFi"])
	require.NotNil(t, st.LastFinished)
	assert.Equal(t, "Dune", st.LastFinished.Title)
	assert.Equal(t, time.Date(2020, 2, 15, 0, 0, 0, 0, time.UTC), st.LastFinishedAt)
}
