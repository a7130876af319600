// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validate checks user and work input, reporting every failing field.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/models"
)

// Violation codes carried in models.FieldError.Code
const (
	CodeRequired               = "required"
	CodeInvalidName            = "invalid_name"
	CodeInvalidJoinDate        = "invalid_join_date"
	CodeInvalidCategory        = "invalid_category"
	CodeInvalidPublicationYear = "invalid_publication_year"
)

var (
	ErrRequired               = errors.New("required field missing")
	ErrInvalidName            = errors.New("invalid name")
	ErrInvalidJoinDate        = errors.New("invalid join date")
	ErrInvalidCategory        = models.ErrInvalidCategory
	ErrInvalidPublicationYear = errors.New("invalid publication year")
)

var codeErrors = map[string]error{
	CodeRequired:               ErrRequired,
	CodeInvalidName:            ErrInvalidName,
	CodeInvalidJoinDate:        ErrInvalidJoinDate,
	CodeInvalidCategory:        ErrInvalidCategory,
	CodeInvalidPublicationYear: ErrInvalidPublicationYear,
}

// Errors is the full, ordered set of violations for one submission.
type Errors []models.FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + " " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is reports whether any violation in the set matches target.
func (e Errors) Is(target error) bool {
	for _, fe := range e {
		if codeErrors[fe.Code] == target {
			return true
		}
	}
	return false
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

type userInput struct {
	Name     string    `json:"name" validate:"required"`
	JoinDate time.Time `json:"join_date" validate:"notfuture"`
}

type workInput struct {
	Category        string    `json:"category" validate:"category"`
	Title           string    `json:"title" validate:"required"`
	Creator         string    `json:"creator" validate:"required"`
	PublicationYear time.Time `json:"publication_year" validate:"notfuture"`
}

// fieldCodes maps a (field, tag) pair to a violation code. Tags not listed
// fall back to CodeRequired.
var fieldCodes = map[string]string{
	"name.required":              CodeInvalidName,
	"join_date.notfuture":        CodeInvalidJoinDate,
	"category.category":          CodeInvalidCategory,
	"publication_year.notfuture": CodeInvalidPublicationYear,
}

var fieldMessages = map[string]string{
	CodeRequired:               "can't be blank",
	CodeInvalidName:            "can't be blank",
	CodeInvalidJoinDate:        "must be a date on or before today",
	CodeInvalidCategory:        "must be one of album, book, movie",
	CodeInvalidPublicationYear: "must be a valid date on or before today",
}

// Validator applies the submission rules for users and works.
type Validator struct {
	clock    clock.Clock
	validate *validator.Validate
}

func New(c clock.Clock) *Validator {
	v := &Validator{clock: c, validate: validator.New()}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on empty tags or nil funcs.
	_ = v.validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("notfuture", v.notFuture)

	return v
}

// notFuture rejects zero dates and dates after today.
func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return false
	}
	return OnOrBefore(t, clock.Today(v.clock))
}

// OnOrBefore compares calendar dates, ignoring time of day and zone.
func OnOrBefore(t, today time.Time) bool {
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return !date.After(today)
}

// User validates a user submission and returns the normalized user (no ID or
// CreatedAt). A blank join date defaults to today.
func (v *Validator) User(req models.CreateUserRequest) (models.User, error) {
	in := userInput{Name: strings.TrimSpace(req.Name)}

	var errs Errors
	joinDate := strings.TrimSpace(req.JoinDate)
	if joinDate == "" {
		in.JoinDate = clock.Today(v.clock)
	} else if t, ok := ParseDate(joinDate, v.clock.Now().Location()); ok {
		in.JoinDate = t
	}

	errs = append(errs, v.check(in)...)
	if len(errs) > 0 {
		return models.User{}, errs
	}

	return models.User{Name: in.Name, JoinDate: in.JoinDate}, nil
}

// Work validates a work submission and returns the normalized work (no ID or
// CreatedAt).
func (v *Validator) Work(req models.WorkRequest) (models.Work, error) {
	in := workInput{
		Category: strings.TrimSpace(req.Category),
		Title:    strings.TrimSpace(req.Title),
		Creator:  strings.TrimSpace(req.Creator),
	}
	if t, ok := ParseDate(strings.TrimSpace(req.PublicationYear), v.clock.Now().Location()); ok {
		in.PublicationYear = t
	}

	if errs := v.check(in); len(errs) > 0 {
		return models.Work{}, errs
	}

	return models.Work{
		Category:        in.Category,
		Title:           in.Title,
		Creator:         in.Creator,
		PublicationYear: in.PublicationYear,
		Description:     strings.TrimSpace(req.Description),
	}, nil
}

// MergeWork applies a partial update onto an existing work and returns the
// resulting submission for validation.
func MergeWork(existing models.Work, req models.UpdateWorkRequest) models.WorkRequest {
	merged := models.WorkRequest{
		Category:        existing.Category,
		Title:           existing.Title,
		Creator:         existing.Creator,
		PublicationYear: existing.PublicationYear.Format(models.DateLayout),
		Description:     existing.Description,
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Creator != nil {
		merged.Creator = *req.Creator
	}
	if req.PublicationYear != nil {
		merged.PublicationYear = *req.PublicationYear
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	return merged
}

func (v *Validator) check(in any) Errors {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only returned for non-struct input, which is a programming error.
		panic(err)
	}

	errs := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		code, ok := fieldCodes[fe.Field()+"."+fe.Tag()]
		if !ok {
			code = CodeRequired
		}
		errs = append(errs, models.FieldError{
			Field:   fe.Field(),
			Code:    code,
			Message: fieldMessages[code],
		})
	}
	return errs
}

var dateLayouts = []string{models.DateLayout, time.RFC3339, "2006"}

// ParseDate accepts YYYY-MM-DD, RFC 3339, or a bare year, and returns the
// calendar date at midnight UTC. Timestamps carrying an offset are first
// moved into loc, so the date is the one a clock in loc would show.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.RFC3339 {
				t = t.In(loc)
			}
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
