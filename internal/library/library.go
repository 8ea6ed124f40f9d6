// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mtreilly/arc-books/internal/apperr"
)

// Library owns the in-memory book collection and the store it is saved to.
// Every mutating operation saves before returning. A Library is not safe for
// concurrent use.
type Library struct {
	store     BookStore
	books     []*Book
	clock     Clock
	logger    *slog.Logger
	validator *inputValidator
	newStore  func(path string) BookStore
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the time source used for "today".
func WithClock(c Clock) Option {
	return func(l *Library) { l.clock = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithStoreFactory sets how SwitchFile builds the store for a new path.
func WithStoreFactory(fn func(path string) BookStore) Option {
	return func(l *Library) { l.newStore = fn }
}

// Open loads the collection from store. A missing backing file yields an
// empty collection; a malformed one is returned as an error.
func Open(store BookStore, opts ...Option) (*Library, error) {
	l := &Library{
		store:     store,
		clock:     time.Now,
		validator: newInputValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.newStore == nil {
		l.newStore = func(path string) BookStore { return NewFileStore(path, l.logger) }
	}

	books, err := loadOrEmpty(store)
	if err != nil {
		return nil, err
	}
	l.books = books
	return l, nil
}

func loadOrEmpty(store BookStore) ([]*Book, error) {
	books, err := store.Load()
	if errors.Is(err, apperr.ErrNotFound) {
		return []*Book{}, nil
	}
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Path returns the active file.
func (l *Library) Path() string {
	return l.store.Path()
}

// SwitchFile loads the collection at path and makes it the save target. The
// previous collection is discarded, not merged. On a parse failure the
// current collection and path stay active.
func (l *Library) SwitchFile(path string) error {
	next := l.newStore(path)
	books, err := loadOrEmpty(next)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", path, err)
	}
	l.logger.Info("switched active file", "from", l.store.Path(), "to", path, "count", len(books))
	l.store = next
	l.books = books
	return nil
}

// Save persists the collection.
func (l *Library) Save() error {
	if err := l.store.Save(l.books); err != nil {
		l.logger.Error("save failed, in-memory changes are not on disk", "path", l.store.Path(), "error", err)
		return err
	}
	return nil
}

// Len returns the number of books.
func (l *Library) Len() int {
	return len(l.books)
}

// Books returns snapshots of every book in collection order.
func (l *Library) Books() []Book {
	out := make([]Book, len(l.books))
	for i, b := range l.books {
		out[i] = b.Clone()
	}
	return out
}

// Book returns a snapshot of the book with id.
func (l *Library) Book(id string) (Book, error) {
	b, _, err := l.find(id)
	if err != nil {
		return Book{}, err
	}
	return b.Clone(), nil
}

// At returns a snapshot of the book at the 1-based collection position.
func (l *Library) At(position int) (Book, error) {
	if position < 1 || position > len(l.books) {
		return Book{}, apperr.NotFoundf("no book at position %d (collection has %d)", position, len(l.books))
	}
	return l.books[position-1].Clone(), nil
}

// Position returns the 1-based collection position of id, or 0.
func (l *Library) Position(id string) int {
	_, i, err := l.find(id)
	if err != nil {
		return 0
	}
	return i + 1
}

// Filter runs the query engine over the current collection.
func (l *Library) Filter(term string, field SearchField, visibility StatusVisibility) []Book {
	return Filter(l.books, term, field, visibility)
}

// Sort reorders the collection itself and saves the new order.
func (l *Library) Sort(field SortField, descending bool) error {
	SortBooks(l.books, field, descending)
	l.logger.Debug("sorted books", "field", field, "descending", descending)
	return l.Save()
}

func (l *Library) find(id string) (*Book, int, error) {
	i := slices.IndexFunc(l.books, func(b *Book) bool { return b.ID == id })
	if i < 0 {
		return nil, -1, apperr.NotFoundf("book %s not found", id)
	}
	return l.books[i], i, nil
}

func (l *Library) today() string {
	return FormatDate(l.clock())
}
