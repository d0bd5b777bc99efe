package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	v := NewRecordValidator()

	valid := []struct {
		input string
		name  string
	}{
		{"a@b.co", "Minimal address"},
		{"john.doe@example.com", "Dotted local part"},
		{"dev+tag@sub.domain.org", "Plus tag and subdomain"},
	}

	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, v.IsValidEmail(tc.input))
		})
	}

	invalid := []struct {
		input string
		name  string
	}{
		{"a b@c.com", "Embedded space in local part"},
		{"noatsign.com", "Missing @"},
		{"user@nodot", "Missing dot after @"},
		{"user@@double.com", "Double @"},
		{"user@do main.com", "Embedded space in domain"},
		{"", "Empty string"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, v.IsValidEmail(tc.input))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	v := NewRecordValidator()

	assert.True(t, v.IsValidPhone("1234567890"))
	assert.True(t, v.IsValidPhone("0000000000"))

	invalid := []struct {
		input string
		name  string
	}{
		{"123", "Too short"},
		{"12345678901", "Too long"},
		{"12345abcde", "Contains letters"},
		{"123 456 78", "Contains spaces"},
		{"", "Empty string"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, v.IsValidPhone(tc.input))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	v := NewRecordValidator()

	assert.True(t, v.IsValidDate("2024-01-31"))

	// Shape check only: calendar validity is not enforced
	assert.True(t, v.IsValidDate("2024-02-31"))

	invalid := []struct {
		input string
		name  string
	}{
		{"24-02-31", "Two digit year"},
		{"2024/02/31", "Wrong separator"},
		{"2024-2-3", "Unpadded month and day"},
		{"2024-02-31T00:00:00Z", "Trailing time component"},
		{"", "Empty string"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, v.IsValidDate(tc.input))
		})
	}
}

func TestCheckHelpers(t *testing.T) {
	v := NewRecordValidator()

	assert.NoError(t, v.CheckEmail("a@b.co"))
	assert.Equal(t, ErrInvalidEmail, v.CheckEmail("noatsign.com"))

	assert.NoError(t, v.CheckPhone("1234567890"))
	assert.Equal(t, ErrInvalidPhone, v.CheckPhone("123"))

	assert.NoError(t, v.CheckDate("2024-02-31"))
	assert.Equal(t, ErrInvalidDate, v.CheckDate("24-02-31"))
}

func BenchmarkIsValidEmail(b *testing.B) {
	v := NewRecordValidator()
	for i := 0; i < b.N; i++ {
		_ = v.IsValidEmail("john.doe@example.com")
	}
}
