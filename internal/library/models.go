// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Status represents the reading progress of a book.
type Status string

const (
	StatusUnread  Status = "Unread"
	StatusReading Status = "Reading"
	StatusRead    Status = "Read"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusUnread, StatusReading, StatusRead}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// ParseStatus matches text case-insensitively against the known statuses.
func ParseStatus(text string) (Status, bool) {
	for _, s := range Statuses {
		if strings.EqualFold(strings.TrimSpace(text), string(s)) {
			return s, true
		}
	}
	return "", false
}

// DateList is an ordered list of DD.MM.YYYY dates. On decode it also accepts
// the legacy single-string form and null.
type DateList []string

// UnmarshalJSON accepts an array of strings, a bare string or null.
func (d *DateList) UnmarshalJSON(data []byte) error {
	list, err := coerceList(data)
	if err != nil {
		return err
	}
	*d = list
	return nil
}

// MarshalJSON writes an empty list as [] rather than null.
func (d DateList) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return marshalValue([]string(d))
}

// Joined renders the list the way it is displayed and searched.
func (d DateList) Joined() string {
	return strings.Join(d, ", ")
}

// Last returns the most recent entry, or "" for an empty list.
func (d DateList) Last() string {
	if len(d) == 0 {
		return ""
	}
	return d[len(d)-1]
}

// Book is one entry of the reading list.
type Book struct {
	// ID is assigned when the book enters memory and is never persisted.
	ID           string   `json:"-" yaml:"-"`
	Title        string   `json:"title" yaml:"title"`
	Author       string   `json:"author" yaml:"author"`
	Tags         []string `json:"tags" yaml:"tags"`
	Status       Status   `json:"status" yaml:"status"`
	StartDate    DateList `json:"start_date" yaml:"start_date"`
	DateFinished DateList `json:"date_finished" yaml:"date_finished"`
	Notes        string   `json:"notes" yaml:"notes"`

	// Extra holds fields this version does not know about so they survive a save.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// knownFields is also the order fields are written in.
var knownFields = []string{"title", "author", "tags", "status", "start_date", "date_finished", "notes"}

// JoinedTags renders tags the way they are displayed and sorted.
func (b *Book) JoinedTags() string {
	return strings.Join(b.Tags, ", ")
}

// Dates returns the date list selected by which.
func (b *Book) Dates(which DateKind) *DateList {
	if which == DateFinish {
		return &b.DateFinished
	}
	return &b.StartDate
}

// Clone returns a deep copy of b.
func (b *Book) Clone() Book {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	c.StartDate = slices.Clone(b.StartDate)
	c.DateFinished = slices.Clone(b.DateFinished)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.StartDate == nil {
		c.StartDate = DateList{}
	}
	if c.DateFinished == nil {
		c.DateFinished = DateList{}
	}
	if b.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(b.Extra))
		for k, v := range b.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}

// UnmarshalJSON decodes a stored record and normalizes it.
func (b *Book) UnmarshalJSON(data []byte) error {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	book, err := newBookFromRecord(record)
	if err != nil {
		return err
	}
	*b = *book
	return nil
}

// MarshalJSON writes the known fields in a fixed order followed by any
// pass-through fields sorted by name.
func (b Book) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	values := []any{b.Title, b.Author, nonNil(b.Tags), b.Status, b.StartDate, b.DateFinished, b.Notes}
	for i, name := range knownFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(&buf, name, values[i]); err != nil {
			return nil, err
		}
	}
	extraKeys := make([]string, 0, len(b.Extra))
	for k := range b.Extra {
		extraKeys = append(extraKeys, k)
	}
	slices.Sort(extraKeys)
	for _, k := range extraKeys {
		buf.WriteByte(',')
		if err := writeField(&buf, k, b.Extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// newBookFromRecord is the single normalization point for books read from
// storage: defaults are filled, legacy shapes coerced and an ID assigned.
func newBookFromRecord(record map[string]json.RawMessage) (*Book, error) {
	b := &Book{ID: uuid.NewString()}
	var err error
	if b.Title, err = coerceString(record["title"]); err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	if b.Author, err = coerceString(record["author"]); err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	if b.Notes, err = coerceString(record["notes"]); err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}
	tags, err := coerceList(record["tags"])
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	b.Tags = dropEmpty(tags)
	if b.StartDate, err = coerceList(record["start_date"]); err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	if b.DateFinished, err = coerceList(record["date_finished"]); err != nil {
		return nil, fmt.Errorf("date_finished: %w", err)
	}

	b.Status = StatusUnread
	var status string
	if raw, ok := record["status"]; ok && json.Unmarshal(raw, &status) == nil && Status(status).Valid() {
		b.Status = Status(status)
	}

	for k, v := range record {
		if slices.Contains(knownFields, k) {
			continue
		}
		if b.Extra == nil {
			b.Extra = make(map[string]json.RawMessage)
		}
		b.Extra[k] = v
	}
	return b, nil
}

// coerceList keeps an array, wraps a non-empty scalar and maps empty,
// missing or null values to an empty list.
func coerceList(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}, nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, err := coerceString(item)
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}
		return list, nil
	}
	s, err := coerceString(trimmed)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return []string{}, nil
	}
	return []string{s}, nil
}

// coerceString returns strings as-is, null as "" and other scalars in their
// JSON text form.
func coerceString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case '{', '[':
		return "", fmt.Errorf("expected a string, got %s", trimmed)
	default:
		return string(trimmed), nil
	}
}

func writeField(buf *bytes.Buffer, name string, value any) error {
	key, err := marshalValue(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	if raw, ok := value.(json.RawMessage); ok {
		buf.Write(raw)
		return nil
	}
	data, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	buf.Write(data)
	return nil
}

// marshalValue is json.Marshal without HTML escaping and without the
// trailing newline the encoder adds.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// splitTags parses comma-separated tag text: segments are trimmed, empty
// segments dropped and order kept.
func splitTags(text string) []string {
	tags := []string{}
	for _, part := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
