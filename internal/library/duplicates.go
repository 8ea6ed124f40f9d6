// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// DuplicatePair is two books that look like the same book.
type DuplicatePair struct {
	First  Book    `json:"first" yaml:"first"`
	Second Book    `json:"second" yaml:"second"`
	Score  float64 `json:"score" yaml:"score"`
	Reason string  `json:"reason" yaml:"reason"`
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// FindDuplicates compares every pair of books (O(n^2), fine for a personal
// list). Same title and author, ignoring case, scores 1; otherwise pairs
// whose title similarity reaches threshold are reported. Results are ordered
// by score, highest first.
func FindDuplicates(books []Book, threshold float64) []DuplicatePair {
	fold := cases.Fold()
	var pairs []DuplicatePair

	for i := 0; i < len(books); i++ {
		for j := i + 1; j < len(books); j++ {
			a, b := books[i], books[j]

			if fold.String(strings.TrimSpace(a.Title)) == fold.String(strings.TrimSpace(b.Title)) &&
				fold.String(strings.TrimSpace(a.Author)) == fold.String(strings.TrimSpace(b.Author)) {
				pairs = append(pairs, DuplicatePair{First: a, Second: b, Score: 1, Reason: "same title and author"})
				continue
			}

			sim := TitleSimilarity(a.Title, b.Title)
			if sim >= threshold {
				pairs = append(pairs, DuplicatePair{
					First:  a,
					Second: b,
					Score:  sim,
					Reason: fmt.Sprintf("title similarity %.2f", sim),
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
	return pairs
}

// TitleSimilarity is the Jaccard similarity of the two titles' word sets,
// ignoring case, punctuation and words of two letters or fewer.
func TitleSimilarity(a, b string) float64 {
	setA, setB := titleWords(a), titleWords(b)

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func titleWords(title string) map[string]bool {
	clean := punctuation.ReplaceAllString(cases.Fold().String(title), "")
	words := make(map[string]bool)
	for _, w := range strings.Fields(clean) {
		if utf8.RuneCountInString(w) > 2 {
			words[w] = true
		}
	}
	return words
}
