package validator

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidEmail indicates the email does not match user@domain.tld shape
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPhone indicates the phone number is not exactly 10 digits
	ErrInvalidPhone = errors.New("phone number must be exactly 10 digits")

	// ErrInvalidDate indicates the date is not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// emailRegex matches one-or-more non-space non-@ characters, an @, more of
// the same, a dot, and more of the same. Embedded whitespace is rejected.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// phoneRegex matches exactly 10 decimal digits
var phoneRegex = regexp.MustCompile(`^\d{10}$`)

// dateRegex is a shape check only: impossible calendar dates such as
// 2024-02-31 still pass. Callers that need a real date must parse it.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RecordValidator validates employee record fields
type RecordValidator struct{}

// NewRecordValidator creates a new record validator instance
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// IsValidEmail reports whether s looks like an email address
func (v *RecordValidator) IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone reports whether s is exactly 10 decimal digits
func (v *RecordValidator) IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsValidDate reports whether s has the YYYY-MM-DD shape
func (v *RecordValidator) IsValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// CheckEmail returns ErrInvalidEmail when s fails the shape check
func (v *RecordValidator) CheckEmail(s string) error {
	if !v.IsValidEmail(s) {
		return ErrInvalidEmail
	}
	return nil
}

// CheckPhone returns ErrInvalidPhone when s fails the shape check
func (v *RecordValidator) CheckPhone(s string) error {
	if !v.IsValidPhone(s) {
		return ErrInvalidPhone
	}
	return nil
}

// CheckDate returns ErrInvalidDate when s fails the shape check
func (v *RecordValidator) CheckDate(s string) error {
	if !v.IsValidDate(s) {
		return ErrInvalidDate
	}
	return nil
}
