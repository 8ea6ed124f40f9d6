// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks() []*Book {
	return []*Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Tags: []string{"scifi", "classic"}, Status: StatusRead,
			StartDate: DateList{"01.01.2020"}, DateFinished: DateList{"15.02.2020"}, Notes: "Spice must flow"},
		{ID: "2", Title: "Emma", Author: "Jane Austen", Tags: []string{"romance"}, Status: StatusUnread,
			StartDate: DateList{}, DateFinished: DateList{}},
		{ID: "3", Title: "Neuromancer", Author: "William Gibson", Tags: []string{"cyberpunk", "SciFi"}, Status: StatusReading,
			StartDate: DateList{"03.03.2023"}, DateFinished: DateList{}, Notes: "re-read"},
		{ID: "4", Title: "Straße der Ölsardinen", Author: "John Steinbeck", Tags: nil, Status: StatusUnread,
			StartDate: DateList{"10.10.2019", "05.05.2024"}, DateFinished: DateList{}},
	}
}

func ids(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func ptrIDs(books []*Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestFilter_EmptyTermKeepsEverything(t *testing.T) {
	got := Filter(sampleBooks(), "   ", FieldTitle, ShowAll())
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestFilter_ByField(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		field SearchField
		want  []string
	}{
		{"title is case-insensitive", "DUNE", FieldTitle, []string{"1"}},
		{"title ignores author", "austen", FieldTitle, []string{}},
		{"author", "austen", FieldAuthor, []string{"2"}},
		{"tags match any tag", "scifi", FieldTags, []string{"1", "3"}},
		{"tags substring", "punk", FieldTags, []string{"3"}},
		{"notes", "SPICE", FieldNotes, []string{"1"}},
		{"started joined list", "2019, 05", FieldStarted, []string{"4"}},
		{"finished", "02.2020", FieldFinished, []string{"1"}},
		{"all fields title", "emma", FieldAll, []string{"2"}},
		{"all fields tag", "classic", FieldAll, []string{"1"}},
		{"all fields spans title and tag", "romance", FieldAll, []string{"2", "3"}},
		{"all fields notes", "re-read", FieldAll, []string{"3"}},
		{"all fields dates", "2020", FieldAll, []string{"1"}},
		{"unicode folding", "STRASSE", FieldTitle, []string{"4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleBooks(), tt.term, tt.field, ShowAll())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_TitleMatchesExactSubset(t *testing.T) {
	books := sampleBooks()
	for _, term := range []string{"e", "an", "x", "NEURO"} {
		got := Filter(books, term, FieldTitle, ShowAll())
		var want []string
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), strings.ToLower(term)) {
				want = append(want, b.ID)
			}
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, ids(got), term)
	}
}

func TestFilter_StatusVisibility(t *testing.T) {
	vis := ShowAll().Hide(StatusUnread)
	got := Filter(sampleBooks(), "", FieldAll, vis)

	assert.Equal(t, []string{"1", "3"}, ids(got))
	for _, b := range got {
		assert.NotEqual(t, StatusUnread, b.Status)
	}

	got = Filter(sampleBooks(), "", FieldAll, StatusVisibility{})
	assert.Empty(t, got)
}

func TestFilter_ReturnsSnapshots(t *testing.T) {
	books := sampleBooks()
	got := Filter(books, "dune", FieldTitle, ShowAll())
	require.Len(t, got, 1)

	got[0].Tags[0] = "mutated"
	got[0].Title = "mutated"
	assert.Equal(t, "scifi", books[0].Tags[0])
	assert.Equal(t, "Dune", books[0].Title)
}

func TestParseSearchField(t *testing.T) {
	assert.Equal(t, FieldAll, ParseSearchField(""))
	assert.Equal(t, FieldAll, ParseSearchField("All Fields"))
	assert.Equal(t, FieldTags, ParseSearchField("tags"))
	assert.Equal(t, FieldStarted, ParseSearchField("started"))
	assert.Equal(t, FieldFinished, ParseSearchField("finish"))
	assert.Equal(t, FieldAll, ParseSearchField("isbn"))
}

func TestSortBooks_TitleAscendingDescendingAreReverse(t *testing.T) {
	books := sampleBooks()

	SortBooks(books, SortTitle, false)
	asc := ptrIDs(books)
	assert.Equal(t, []string{"1", "2", "3", "4"}, asc)

	SortBooks(books, SortTitle, true)
	desc := ptrIDs(books)
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSortBooks_CaseInsensitive(t *testing.T) {
	books := []*Book{
		{ID: "a", Title: "beta"},
		{ID: "b", Title: "Alpha"},
		{ID: "c", Title: "alpha2"},
	}
	SortBooks(books, SortTitle, false)
	assert.Equal(t, []string{"b", "c", "a"}, ptrIDs(books))
}

func TestSortBooks_DatesUseLastEntryAndEmptyFirst(t *testing.T) {
	books := sampleBooks()

	SortBooks(books, SortStarted, false)
	// Emma has no start date, Steinbeck's last start is 2024.
	assert.Equal(t, []string{"2", "1", "3", "4"}, ptrIDs(books))

	SortBooks(books, SortStarted, true)
	assert.Equal(t, []string{"4", "3", "1", "2"}, ptrIDs(books))
}

func TestSortBooks_StableForEqualKeys(t *testing.T) {
	books := sampleBooks()
	SortBooks(books, SortFinished, false)
	// Only Dune has a finish date; the rest keep their relative order.
	assert.Equal(t, []string{"2", "3", "4", "1"}, ptrIDs(books))

	SortBooks(books, SortFinished, true)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ptrIDs(books))
}

func TestSortBooks_TagsAndStatus(t *testing.T) {
	books := sampleBooks()
	SortBooks(books, SortTags, false)
	// "" < "cyberpunk, scifi" < "romance" < "scifi, classic"
	assert.Equal(t, []string{"4", "3", "2", "1"}, ptrIDs(books))

	SortBooks(books, SortStatus, false)
	// Read < Reading < Unread
	assert.Equal(t, []string{"1", "3", "4", "2"}, ptrIDs(books))
}

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	s = s.Toggle(SortTitle)
	assert.Equal(t, SortState{Field: SortTitle}, s)
	s = s.Toggle(SortTitle)
	assert.Equal(t, SortState{Field: SortTitle, Descending: true}, s)
	s = s.Toggle(SortAuthor)
	assert.Equal(t, SortState{Field: SortAuthor}, s)
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("Started")
	require.NoError(t, err)
	assert.Equal(t, SortStarted, f)

	_, err = ParseSortField("rating")
	assert.Error(t, err)
}
