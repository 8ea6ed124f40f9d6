// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the stored date format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// parseLayout also accepts single-digit days and months.
const parseLayout = "2.1.2006"

// DateKind selects one of a book's two date lists.
type DateKind string

const (
	DateStart  DateKind = "start"
	DateFinish DateKind = "finish"
)

// ParseDateKind accepts "start"/"started" and "finish"/"finished".
func ParseDateKind(text string) (DateKind, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "start", "started":
		return DateStart, nil
	case "finish", "finished":
		return DateFinish, nil
	default:
		return "", fmt.Errorf("unknown date kind %q (choose start or finish)", text)
	}
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// ParseDate parses a DD.MM.YYYY date, rejecting impossible calendar dates.
func ParseDate(text string) (time.Time, error) {
	return time.Parse(parseLayout, strings.TrimSpace(text))
}

// FormatDate renders t as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// canonicalDate parses text and returns it in DateLayout.
func canonicalDate(text string) (string, error) {
	t, err := ParseDate(text)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// sortDate is the sort key of a date list: its last entry, or the zero time
// when the list is empty or the entry does not parse.
func sortDate(d DateList) time.Time {
	last := d.Last()
	if last == "" {
		return time.Time{}
	}
	t, err := ParseDate(last)
	if err != nil {
		return time.Time{}
	}
	return t
}
