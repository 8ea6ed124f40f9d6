// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// BookStore persists the whole collection at once.
// Implementations may use a JSON file or memory.
type BookStore interface {
	// Load returns the normalized collection. A missing backing file is
	// reported with an apperr.ErrNotFound error.
	Load() ([]*Book, error)
	// Save replaces the persisted collection with books.
	Save(books []*Book) error
	// Path identifies the backing location.
	Path() string
}
