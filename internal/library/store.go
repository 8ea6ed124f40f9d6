// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mtreilly/arc-books/internal/apperr"
)

// FileStore keeps the collection in a pretty-printed JSON array on disk.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store for the JSON file at path. The file does not
// need to exist yet.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and normalizes every record in the file.
func (s *FileStore) Load() ([]*Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFoundf("book file %s does not exist", s.path).WithCause(err)
		}
		return nil, apperr.IO(fmt.Sprintf("read %s", s.path), err)
	}
	books, err := decodeBooks(data)
	if err != nil {
		return nil, apperr.Parse(s.path, err)
	}
	s.logger.Debug("loaded books", "path", s.path, "count", len(books))
	return books, nil
}

// Save writes books to a temporary file next to the target and renames it
// into place. Parent directories are created as needed.
func (s *FileStore) Save(books []*Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return apperr.IO(fmt.Sprintf("encode %s", s.path), err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.IO(fmt.Sprintf("create directory %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperr.IO(fmt.Sprintf("write %s", s.path), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.IO(fmt.Sprintf("write %s", s.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.IO(fmt.Sprintf("write %s", s.path), err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperr.IO(fmt.Sprintf("replace %s", s.path), err)
	}

	s.logger.Debug("saved books", "path", s.path, "count", len(books))
	return nil
}

// decodeBooks parses a JSON array of book records.
func decodeBooks(data []byte) ([]*Book, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	books := make([]*Book, 0, len(records))
	for i, raw := range records {
		var record map[string]json.RawMessage
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if record == nil {
			return nil, fmt.Errorf("record %d: expected an object, got null", i)
		}
		b, err := newBookFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		books = append(books, b)
	}
	return books, nil
}

// encodeBooks renders books as an indented JSON array with a trailing newline.
func encodeBooks(books []*Book) ([]byte, error) {
	if books == nil {
		books = []*Book{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DryRunStore reads through to another store but keeps saves in memory, so
// commands can be previewed without touching the file.
type DryRunStore struct {
	base   BookStore
	saved  []*Book
	saves  int
	logger *slog.Logger
}

// NewDryRunStore wraps base.
func NewDryRunStore(base BookStore, logger *slog.Logger) *DryRunStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DryRunStore{base: base, logger: logger}
}

// Path returns the wrapped store's path.
func (s *DryRunStore) Path() string {
	return s.base.Path()
}

// Load returns the last in-memory save, or the wrapped store's contents.
func (s *DryRunStore) Load() ([]*Book, error) {
	if s.saved != nil {
		return cloneAll(s.saved), nil
	}
	return s.base.Load()
}

// Save records books in memory only.
func (s *DryRunStore) Save(books []*Book) error {
	s.saved = cloneAll(books)
	s.saves++
	s.logger.Info("dry run: changes not written", "path", s.base.Path(), "count", len(books))
	return nil
}

// Saves reports how many times Save was called.
func (s *DryRunStore) Saves() int {
	return s.saves
}

func cloneAll(books []*Book) []*Book {
	out := make([]*Book, len(books))
	for i, b := range books {
		c := b.Clone()
		out[i] = &c
	}
	return out
}
