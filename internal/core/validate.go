package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Field identifies one candidate field for per-field validation reporting.
type Field string

const (
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldDate        Field = "date"
)

const (
	// MaxDescriptionLen is the longest accepted description.
	MaxDescriptionLen = 100
	// MaxAmountCents caps the user-entered magnitude at 9,999,999
	// currency units.
	MaxAmountCents = 9_999_999 * 100
)

// FieldErrors maps rejected fields to human-readable reasons. A nil map
// means the candidate passed every validator.
type FieldErrors map[Field]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[Field(f)])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateDescription rejects empty or whitespace-only descriptions and
// descriptions longer than MaxDescriptionLen characters. The limit
// counts characters, not bytes, so multibyte text is not penalized.
func ValidateDescription(s string) error {
	if len(strings.TrimSpace(s)) == 0 {
		return fmt.Errorf("%w: description is required", ErrEmptyDescription)
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be %d characters or less", ErrDescriptionTooLong, MaxDescriptionLen)
	}
	return nil
}

// ValidateAmount checks the user-entered magnitude. Direction is applied
// later from the category and is not this validator's concern.
func ValidateAmount(cents int64) error {
	if cents <= 0 {
		return fmt.Errorf("%w: amount must be a positive number", ErrInvalidAmount)
	}
	if cents > MaxAmountCents {
		return fmt.Errorf("%w: amount cannot exceed 9,999,999", ErrInvalidAmount)
	}
	return nil
}

// ValidateCategory rejects an absent category. Any non-empty name is
// accepted so the category set stays open.
func ValidateCategory(c Category) error {
	if strings.TrimSpace(string(c)) == "" {
		return fmt.Errorf("%w: category is required", ErrEmptyCategory)
	}
	return nil
}

// ValidateDate rejects zero dates and dates strictly after today.
// The comparison is date-only: time of day never plays a role.
func ValidateDate(d, today Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if d.After(today) {
		return fmt.Errorf("%w: date cannot be in the future", ErrInvalidDate)
	}
	return nil
}

// fieldValidators dispatches each field to its validator. Keeping the
// table here (instead of a switch at every call site) makes it obvious
// when a new field is missing its gate.
var fieldValidators = map[Field]func(Candidate, Date) error{
	FieldDescription: func(c Candidate, _ Date) error { return ValidateDescription(c.Description) },
	FieldAmount:      func(c Candidate, _ Date) error { return ValidateAmount(c.AmountCents) },
	FieldCategory:    func(c Candidate, _ Date) error { return ValidateCategory(c.Category) },
	FieldDate:        func(c Candidate, today Date) error { return ValidateDate(c.Date, today) },
}

// ValidateCandidate runs every field validator and collects failures
// per field so callers can highlight individual inputs. Returns nil when
// the candidate is acceptable.
func ValidateCandidate(c Candidate, today Date) FieldErrors {
	var errs FieldErrors
	for field, validate := range fieldValidators {
		if err := validate(c, today); err != nil {
			if errs == nil {
				errs = make(FieldErrors, 1)
			}
			errs[field] = reason(err)
		}
	}
	return errs
}

// reason strips the sentinel prefix, leaving the human-readable part.
func reason(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
