// Package kbo implements the two pieces of the tool with repeatable logic:
// enterprise number normalization and contact field extraction from rendered
// registry pages.
package kbo

import (
	"fmt"
	"regexp"
)

var nonDigit = regexp.MustCompile(`\D+`)

// InvalidNumberError reports an input that cannot be normalized to a valid
// Belgian enterprise number. It keeps the original input for diagnostics.
type InvalidNumberError struct {
	Input string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid Belgian enterprise number: %q", e.Input)
}

// Normalize converts a free-form enterprise number into its canonical
// 10-digit form. All non-digit characters are stripped; a 9-digit result gets
// a leading zero (the registry accepts both forms but stores 10 digits).
// Any other digit count is an *InvalidNumberError.
//
// Normalize is idempotent: feeding it an already-canonical number returns the
// same string.
func Normalize(raw string) (string, error) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) == 9 {
		digits = "0" + digits
	}
	if len(digits) != 10 {
		return "", &InvalidNumberError{Input: raw}
	}
	return digits, nil
}

// IsNormalized reports whether s is already in canonical form.
func IsNormalized(s string) bool {
	n, err := Normalize(s)
	return err == nil && n == s
}

// NormalizeAll normalizes every number in order. The first invalid number
// aborts with its error: a malformed identifier means bad input data, and the
// caller has not started scraping yet.
func NormalizeAll(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		n, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
