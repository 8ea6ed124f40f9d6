// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"time"
)

// Stats summarizes a collection.
type Stats struct {
	Total    int            `json:"total" yaml:"total"`
	ByStatus map[Status]int `json:"by_status" yaml:"by_status"`
	Tags     map[string]int `json:"tags" yaml:"tags"`

	// LastFinished is the book with the latest parseable finish date.
	LastFinished   *Book     `json:"last_finished,omitempty" yaml:"last_finished,omitempty"`
	LastFinishedAt time.Time `json:"last_finished_at,omitzero" yaml:"last_finished_at,omitempty"`
}

// TagCounts counts how many books carry each tag. A tag repeated on one book
// counts once for that book.
func TagCounts(books []Book) map[string]int {
	counts := make(map[string]int)
	for _, b := range books {
		seen := make(map[string]bool, len(b.Tags))
		for _, t := range b.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}
	return counts
}

// ComputeStats walks books once.
func ComputeStats(books []Book) Stats {
	st := Stats{
		Total:    len(books),
		ByStatus: make(map[Status]int, len(Statuses)),
		Tags:     TagCounts(books),
	}
	for _, s := range Statuses {
		st.ByStatus[s] = 0
	}
	for i := range books {
		b := &books[i]
		st.ByStatus[b.Status]++
		if at := sortDate(b.DateFinished); !at.IsZero() && at.After(st.LastFinishedAt) {
			st.LastFinished = b
			st.LastFinishedAt = at
		}
	}
	return st
}
