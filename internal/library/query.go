// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// SearchField selects which fields a search term is matched against.
type SearchField string

const (
	FieldAll      SearchField = "All Fields"
	FieldTitle    SearchField = "Title"
	FieldAuthor   SearchField = "Author"
	FieldStarted  SearchField = "Started"
	FieldFinished SearchField = "Finished"
	FieldTags     SearchField = "Tags"
	FieldNotes    SearchField = "Notes"
)

// SearchFields lists the selectable fields, All Fields first.
var SearchFields = []SearchField{FieldAll, FieldTitle, FieldAuthor, FieldStarted, FieldFinished, FieldTags, FieldNotes}

// ParseSearchField matches text case-insensitively; "all" and "" select
// FieldAll. Unknown text also falls back to FieldAll.
func ParseSearchField(text string) SearchField {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "", "all", "all fields", "any":
		return FieldAll
	case "start", "start_date":
		return FieldStarted
	case "finish", "date_finished":
		return FieldFinished
	}
	for _, f := range SearchFields {
		if strings.ToLower(string(f)) == t {
			return f
		}
	}
	return FieldAll
}

// StatusVisibility holds one show/hide toggle per status.
type StatusVisibility struct {
	Unread  bool
	Reading bool
	Read    bool
}

// ShowAll returns the default visibility with every status shown.
func ShowAll() StatusVisibility {
	return StatusVisibility{Unread: true, Reading: true, Read: true}
}

// Visible reports whether books with status s pass the filter.
func (v StatusVisibility) Visible(s Status) bool {
	switch s {
	case StatusUnread:
		return v.Unread
	case StatusReading:
		return v.Reading
	case StatusRead:
		return v.Read
	default:
		return false
	}
}

// Hide returns a copy of v with s switched off.
func (v StatusVisibility) Hide(s Status) StatusVisibility {
	switch s {
	case StatusUnread:
		v.Unread = false
	case StatusReading:
		v.Reading = false
	case StatusRead:
		v.Read = false
	}
	return v
}

// Filter returns snapshots of the books matching term in field whose status
// is visible, in collection order.
func Filter(books []*Book, term string, field SearchField, visibility StatusVisibility) []Book {
	folder := cases.Fold()
	fold := func(s string) string { return folder.String(s) }
	needle := fold(strings.TrimSpace(term))

	out := []Book{}
	for _, b := range books {
		if needle != "" && !matches(b, needle, field, fold) {
			continue
		}
		if !visibility.Visible(b.Status) {
			continue
		}
		out = append(out, b.Clone())
	}
	return out
}

func matches(b *Book, needle string, field SearchField, fold func(string) string) bool {
	has := func(s string) bool { return strings.Contains(fold(s), needle) }
	anyTag := func() bool {
		return slices.ContainsFunc(b.Tags, has)
	}

	switch field {
	case FieldTitle:
		return has(b.Title)
	case FieldAuthor:
		return has(b.Author)
	case FieldStarted:
		return has(b.StartDate.Joined())
	case FieldFinished:
		return has(b.DateFinished.Joined())
	case FieldTags:
		return anyTag()
	case FieldNotes:
		return has(b.Notes)
	default:
		return has(b.Title) || has(b.Author) || has(b.Notes) || anyTag() ||
			has(b.StartDate.Joined()) || has(b.DateFinished.Joined())
	}
}

// SortField is a column the collection can be ordered by.
type SortField string

const (
	SortTitle    SortField = "title"
	SortAuthor   SortField = "author"
	SortStatus   SortField = "status"
	SortStarted  SortField = "start_date"
	SortFinished SortField = "date_finished"
	SortTags     SortField = "tags"
	SortNotes    SortField = "notes"
)

// SortFields lists the sortable fields in column order.
var SortFields = []SortField{SortTitle, SortAuthor, SortStatus, SortStarted, SortFinished, SortTags, SortNotes}

// ParseSortField accepts the field name or its column heading.
func ParseSortField(text string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "title":
		return SortTitle, nil
	case "author":
		return SortAuthor, nil
	case "status":
		return SortStatus, nil
	case "start_date", "started", "start", "start date":
		return SortStarted, nil
	case "date_finished", "finished", "finish", "date finished":
		return SortFinished, nil
	case "tags":
		return SortTags, nil
	case "notes":
		return SortNotes, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", text)
	}
}

// SortState remembers the last sort so repeating it flips direction.
type SortState struct {
	Field      SortField
	Descending bool
}

// Toggle returns the state after sorting by field: the same field reverses
// direction, a different field starts ascending.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		return SortState{Field: field, Descending: !s.Descending}
	}
	return SortState{Field: field}
}

// SortBooks stably reorders books in place. Text fields compare case-folded;
// date fields compare the last date of each list, empty lists first.
func SortBooks(books []*Book, field SortField, descending bool) {
	compare := comparator(field)
	slices.SortStableFunc(books, func(a, b *Book) int {
		if descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func comparator(field SortField) func(a, b *Book) int {
	switch field {
	case SortStarted:
		return func(a, b *Book) int { return sortDate(a.StartDate).Compare(sortDate(b.StartDate)) }
	case SortFinished:
		return func(a, b *Book) int { return sortDate(a.DateFinished).Compare(sortDate(b.DateFinished)) }
	}

	folder := cases.Fold()
	key := func(b *Book) string {
		switch field {
		case SortAuthor:
			return b.Author
		case SortStatus:
			return string(b.Status)
		case SortTags:
			return b.JoinedTags()
		case SortNotes:
			return b.Notes
		default:
			return b.Title
		}
	}
	return func(a, b *Book) int {
		return cmp.Compare(folder.String(key(a)), folder.String(key(b)))
	}
}
