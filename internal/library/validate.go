// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mtreilly/arc-books/internal/apperr"
)

// CreateInput carries the raw text of the add-book form.
type CreateInput struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author"`
	Tags     string `json:"tags"`
	Started  string `json:"started" validate:"omitempty,ddmmyyyy"`
	Finished string `json:"finished" validate:"omitempty,ddmmyyyy"`

	// InferStatus derives the initial status from the dates instead of
	// starting Unread.
	InferStatus bool `json:"-"`
}

// trimmed returns a copy with surrounding whitespace removed from the
// fields that are validated.
func (in CreateInput) trimmed() CreateInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Started = strings.TrimSpace(in.Started)
	in.Finished = strings.TrimSpace(in.Finished)
	return in
}

// inputValidator wraps go-playground/validator with the date rules.
type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(validateDateOrder, CreateInput{})

	return &inputValidator{v: v}
}

// validateDateOrder rejects a finish date earlier than the start date.
func validateDateOrder(sl validator.StructLevel) {
	in := sl.Current().Interface().(CreateInput)
	if in.Started == "" || in.Finished == "" {
		return
	}
	start, err1 := ParseDate(in.Started)
	finish, err2 := ParseDate(in.Finished)
	if err1 != nil || err2 != nil {
		return
	}
	if finish.Before(start) {
		sl.ReportError(in.Finished, "finished", "Finished", "afterstart", "started")
	}
}

// Validate returns an apperr validation error describing every failed field.
func (iv *inputValidator) Validate(in any) error {
	err := iv.v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation(err.Error()).WithCause(err)
	}

	details := make(map[string]string, len(fieldErrs))
	var msgs []string
	for _, fe := range fieldErrs {
		msg := friendlyMessage(fe)
		details[fe.Field()] = msg
		msgs = append(msgs, fe.Field()+" "+msg)
	}
	return apperr.ValidationWithDetails(strings.Join(msgs, "; "), details)
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ddmmyyyy":
		return "must be a valid date in DD.MM.YYYY format"
	case "afterstart":
		return "must not be before the start date"
	default:
		return "is invalid"
	}
}
