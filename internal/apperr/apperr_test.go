// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesCode(t *testing.T) {
	err := Validationf("title %q is empty", "")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrParse))

	wrapped := fmt.Errorf("add book: %w", err)
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
}

func TestError_UnwrapCause(t *testing.T) {
	err := IO("write books.json", os.ErrPermission)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.True(t, errors.Is(err, ErrIO))
	assert.Contains(t, err.Error(), "write books.json")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestError_WithCause(t *testing.T) {
	base := NotFound("book not found")
	err := base.WithCause(os.ErrNotExist)
	assert.Nil(t, base.Unwrap())
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, CodeNotFound, err.Code)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"validation", Validation("bad"), 2},
		{"parse", Parse("books.json", errors.New("unexpected EOF")), 3},
		{"io", IO("save", errors.New("disk full")), 4},
		{"not found", NotFound("missing"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
