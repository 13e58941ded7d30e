package domain

import (
	"strings"

	dErrors "visapath/pkg/domain-errors"
)

// CountryCode is a destination country identifier (ISO 3166-1 alpha-2).
// Invariant: two ASCII letters, stored uppercase.
//
// Usage: construct via ParseCountryCode at trust boundaries to enforce the
// format; direct casting bypasses validation.
type CountryCode string

// ParseCountryCode constructs a CountryCode from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or not a two-letter
// code; no other errors are expected.
func ParseCountryCode(s string) (CountryCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "country code cannot be empty")
	}
	if len(s) != 2 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "country code must be two letters")
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", dErrors.New(dErrors.CodeInvalidInput, "country code must be two letters")
		}
	}
	return CountryCode(strings.ToUpper(s)), nil
}

func (c CountryCode) String() string {
	return string(c)
}

func (c CountryCode) IsNil() bool {
	return c == ""
}

// VisaType identifies a visa category within a destination country, e.g.
// "tourist" or "student". Stored lowercase.
type VisaType string

// ParseVisaType constructs a VisaType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or contains
// characters outside [a-z0-9_-].
func ParseVisaType(s string) (VisaType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "visa type cannot be empty")
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return "", dErrors.New(dErrors.CodeInvalidInput, "visa type contains unsupported characters")
		}
	}
	return VisaType(s), nil
}

func (v VisaType) String() string {
	return string(v)
}

func (v VisaType) IsNil() bool {
	return v == ""
}
