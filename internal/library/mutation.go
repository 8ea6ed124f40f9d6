// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mtreilly/arc-books/internal/apperr"
)

// InferStatus derives the initial status of a new book from its dates:
// Read when finished, Reading when only started, otherwise Unread.
func InferStatus(started, finished string) Status {
	switch {
	case strings.TrimSpace(finished) != "":
		return StatusRead
	case strings.TrimSpace(started) != "":
		return StatusReading
	default:
		return StatusUnread
	}
}

// Create validates in and appends a new book. With in.InferStatus unset the
// book starts Unread whatever dates were given; otherwise the status follows
// InferStatus. Nothing is changed when validation fails.
func (l *Library) Create(in CreateInput) (Book, error) {
	in = in.trimmed()
	if err := l.validator.Validate(in); err != nil {
		return Book{}, err
	}

	b := &Book{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Author:       in.Author,
		Tags:         splitTags(in.Tags),
		Status:       StatusUnread,
		StartDate:    DateList{},
		DateFinished: DateList{},
	}
	if in.Started != "" {
		d, _ := canonicalDate(in.Started)
		b.StartDate = append(b.StartDate, d)
	}
	if in.Finished != "" {
		d, _ := canonicalDate(in.Finished)
		b.DateFinished = append(b.DateFinished, d)
	}
	if in.InferStatus {
		b.Status = InferStatus(in.Started, in.Finished)
	}

	l.books = append(l.books, b)
	l.logger.Info("added book", "title", b.Title, "status", b.Status)
	return b.Clone(), l.Save()
}

// Effect is the optional side effect of a status change that needs the
// user's confirmation.
type Effect int

const (
	EffectNone Effect = iota
	// EffectStampFinished appends today to date_finished.
	EffectStampFinished
	// EffectStampStarted appends today to an empty start_date.
	EffectStampStarted
	// EffectClearDates empties both date lists.
	EffectClearDates
)

// String describes the effect as a yes/no question.
func (e Effect) String() string {
	switch e {
	case EffectStampFinished:
		return "record today as the finish date"
	case EffectStampStarted:
		return "record today as the start date"
	case EffectClearDates:
		return "clear all start and finish dates"
	default:
		return "none"
	}
}

// PendingEffect reports which side effect ChangeStatus would offer for
// moving the book with id to status.
func (l *Library) PendingEffect(id string, status Status) (Effect, error) {
	b, _, err := l.find(id)
	if err != nil {
		return EffectNone, err
	}
	return pendingEffect(b, status, l.today()), nil
}

func pendingEffect(b *Book, status Status, today string) Effect {
	switch status {
	case StatusRead:
		if b.Status != StatusRead && !slices.Contains(b.DateFinished, today) {
			return EffectStampFinished
		}
	case StatusReading:
		if b.Status != StatusReading && len(b.StartDate) == 0 {
			return EffectStampStarted
		}
	case StatusUnread:
		if len(b.StartDate) > 0 || len(b.DateFinished) > 0 {
			return EffectClearDates
		}
	}
	return EffectNone
}

// ChangeStatus sets the book's status. When confirm is true the pending
// effect (see PendingEffect) is applied as well. The change is always saved.
func (l *Library) ChangeStatus(id string, status Status, confirm bool) (Book, error) {
	if !status.Valid() {
		return Book{}, apperr.Validationf("unknown status %q (choose Unread, Reading or Read)", status)
	}
	b, _, err := l.find(id)
	if err != nil {
		return Book{}, err
	}

	today := l.today()
	effect := pendingEffect(b, status, today)
	b.Status = status
	if confirm {
		switch effect {
		case EffectStampFinished:
			b.DateFinished = append(b.DateFinished, today)
		case EffectStampStarted:
			b.StartDate = append(b.StartDate, today)
		case EffectClearDates:
			b.StartDate = DateList{}
			b.DateFinished = DateList{}
		}
	}

	l.logger.Info("changed status", "title", b.Title, "status", status, "effect", effect.String(), "applied", confirm)
	return b.Clone(), l.Save()
}

// Delete removes the book with id. An empty id is a no-op.
func (l *Library) Delete(id string) error {
	if id == "" {
		return nil
	}
	b, i, err := l.find(id)
	if err != nil {
		return err
	}
	l.books = slices.Delete(l.books, i, i+1)
	l.logger.Info("deleted book", "title", b.Title)
	return l.Save()
}

// EditField replaces the tags (comma-separated text) or notes of a book.
// Other fields cannot be edited this way.
func (l *Library) EditField(id, field, value string) (Book, error) {
	b, _, err := l.find(id)
	if err != nil {
		return Book{}, err
	}
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "tags":
		b.Tags = splitTags(value)
	case "notes":
		b.Notes = value
	default:
		return Book{}, apperr.Validationf("field %q cannot be edited inline (choose tags or notes)", field)
	}
	l.logger.Info("edited book", "title", b.Title, "field", field)
	return b.Clone(), l.Save()
}

// AddTags appends each tag the book does not carry yet and returns the ones
// it added. Tags are taken as given, so commas inside a tag survive.
func (l *Library) AddTags(id string, tags []string) (added []string, err error) {
	b, _, err := l.find(id)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(b.Tags, t) {
			continue
		}
		b.Tags = append(b.Tags, t)
		added = append(added, t)
	}
	if len(added) == 0 {
		return nil, nil
	}
	l.logger.Info("added tags", "title", b.Title, "tags", added)
	return added, l.Save()
}

// RemoveTags drops the given tags and returns the ones the book had.
func (l *Library) RemoveTags(id string, tags []string) (removed []string, err error) {
	b, _, err := l.find(id)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if i := slices.Index(b.Tags, t); i >= 0 {
			b.Tags = slices.Delete(b.Tags, i, i+1)
			removed = append(removed, t)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	l.logger.Info("removed tags", "title", b.Title, "tags", removed)
	return removed, l.Save()
}

// AddDate appends a date to the start or finish list. A date already in the
// list is skipped and added is false.
func (l *Library) AddDate(id string, which DateKind, text string) (added bool, err error) {
	b, _, err := l.find(id)
	if err != nil {
		return false, err
	}
	date, err := canonicalDate(text)
	if err != nil {
		return false, apperr.Validationf("invalid date %q, use DD.MM.YYYY", text).WithCause(err)
	}
	dates := b.Dates(which)
	if slices.Contains(*dates, date) {
		return false, nil
	}
	*dates = append(*dates, date)
	l.logger.Info("added date", "title", b.Title, "which", which, "date", date)
	return true, l.Save()
}

// RemoveDate deletes the entry at the 0-based index of the start or finish
// list. An out-of-range index is a no-op and removed is false.
func (l *Library) RemoveDate(id string, which DateKind, index int) (removed bool, err error) {
	b, _, err := l.find(id)
	if err != nil {
		return false, err
	}
	dates := b.Dates(which)
	if index < 0 || index >= len(*dates) {
		return false, nil
	}
	*dates = slices.Delete(*dates, index, index+1)
	l.logger.Info("removed date", "title", b.Title, "which", which, "index", index)
	return true, l.Save()
}
