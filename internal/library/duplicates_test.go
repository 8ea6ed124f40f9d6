// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, TitleSimilarity("The Left Hand of Darkness", "left hand of darkness, the!"), 1e-9)
	assert.InDelta(t, 0.75, TitleSimilarity("The Left Hand of Darkness", "left hand of darkness"), 1e-9)
	assert.InDelta(t, 1.0/3, TitleSimilarity("Children of Dune", "Children of Time"), 1e-9)
	assert.Zero(t, TitleSimilarity("It", "Us"))
	assert.Zero(t, TitleSimilarity("Dune", "Emma"))
}

func TestFindDuplicates(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Emma", Author: "Jane Austen"},
		{ID: "3", Title: "DUNE ", Author: "frank herbert"},
		{ID: "4", Title: "The Left Hand of Darkness"},
		{ID: "5", Title: "Left Hand of Darkness, The", Author: "Le Guin"},
		{ID: "6", Title: "Children of Dune"},
	}

	pairs := FindDuplicates(books, 0.7)
	require.Len(t, pairs, 2)

	assert.Equal(t, "1", pairs[0].First.ID)
	assert.Equal(t, "3", pairs[0].Second.ID)
	assert.Equal(t, "same title and author", pairs[0].Reason)

	assert.Equal(t, "4", pairs[1].First.ID)
	assert.Equal(t, "5", pairs[1].Second.ID)
	assert.InDelta(t, 1.0, pairs[1].Score, 1e-9)

	assert.Empty(t, FindDuplicates(books[:2], 0.7))
}
