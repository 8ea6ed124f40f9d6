// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyFixture = `[
  {
    "title": "Dune",
    "author": "Frank Herbert",
    "tags": ["scifi", "classic"],
    "status": "Read",
    "start_date": "01.01.2020",
    "date_finished": ["15.02.2020"],
    "notes": "Spice",
    "rating": 5
  },
  {
    "title": "Emma",
    "author": "Jane Austen",
    "tags": []
  }
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileStore_LoadNormalizes(t *testing.T) {
	s := NewFileStore(writeFixture(t, legacyFixture), nil)

	books, err := s.Load()
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, DateList{"01.01.2020"}, books[0].StartDate)
	assert.Equal(t, StatusRead, books[0].Status)
	assert.JSONEq(t, `5`, string(books[0].Extra["rating"]))

	assert.Equal(t, StatusUnread, books[1].Status)
	assert.Equal(t, "", books[1].Notes)
	assert.Equal(t, DateList{}, books[1].StartDate)
	assert.Equal(t, DateList{}, books[1].DateFinished)
	assert.NotEqual(t, books[0].ID, books[1].ID)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestFileStore_LoadMalformed(t *testing.T) {
	for _, content := range []string{`[{"title": "Dune",`, `{"title":"Dune"}`, `[1, 2]`, `[null]`} {
		s := NewFileStore(writeFixture(t, content), nil)
		_, err := s.Load()
		require.Error(t, err, content)
		assert.True(t, errors.Is(err, apperr.ErrParse), content)
	}
}

func TestFileStore_SaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "books.json")
	s := NewFileStore(path, nil)

	require.NoError(t, s.Save([]*Book{{Title: "Dune", Status: StatusUnread}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"title\": \"Dune\",")
	assert.Contains(t, string(data), `"start_date": []`)
}

func TestFileStore_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, NewFileStore(path, nil).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestFileStore_SaveFailureIsIOError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewFileStore(filepath.Join(blocker, "books.json"), nil)
	err := s.Save([]*Book{{Title: "Dune"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrIO))
}

func TestFileStore_RoundTripIsIdempotent(t *testing.T) {
	s := NewFileStore(writeFixture(t, legacyFixture), nil)

	first, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(first))
	second, err := s.Load()
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		a, b := first[i].Clone(), second[i].Clone()
		a.ID, b.ID = "", ""
		assert.Equal(t, a, b)
	}

	// A second save produces byte-identical output.
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, s.Save(second))
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestDryRunStore_KeepsFileUntouched(t *testing.T) {
	path := writeFixture(t, legacyFixture)
	dry := NewDryRunStore(NewFileStore(path, nil), nil)

	books, err := dry.Load()
	require.NoError(t, err)
	require.NoError(t, dry.Save(books[:1]))

	again, err := dry.Load()
	require.NoError(t, err)
	assert.Len(t, again, 1)
	assert.Equal(t, 1, dry.Saves())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, legacyFixture, string(data))
}
