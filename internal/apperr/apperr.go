// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package apperr defines the error kinds surfaced by arc-books.
//
// Callers match on the kind with errors.Is against the sentinels:
//
//	if errors.Is(err, apperr.ErrNotFound) {
//	    // start with an empty collection
//	}
//
// or extract the *Error with errors.As to read its Code and Details.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error kind.
type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeParse      Code = "PARSE"
	CodeNotFound   Code = "NOT_FOUND"
	CodeIO         Code = "IO"
)

// Error is a coded error with an optional cause and field details.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrValidation = &Error{Code: CodeValidation, Message: "validation error"}
	ErrParse      = &Error{Code: CodeParse, Message: "parse error"}
	ErrNotFound   = &Error{Code: CodeNotFound, Message: "not found"}
	ErrIO         = &Error{Code: CodeIO, Message: "io error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error carrying per-field messages.
func ValidationWithDetails(msg string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Parse wraps a decoding failure of the backing file.
func Parse(path string, err error) *Error {
	return &Error{Code: CodeParse, Message: fmt.Sprintf("parse %s", path), cause: err}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// IO wraps a write failure.
func IO(msg string, err error) *Error {
	return &Error{Code: CodeIO, Message: msg, cause: err}
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch CodeOf(err) {
	case "":
		if err == nil {
			return 0
		}
		return 1
	case CodeValidation:
		return 2
	case CodeParse:
		return 3
	case CodeIO:
		return 4
	default:
		return 1
	}
}
