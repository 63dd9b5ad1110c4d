// internal/validation/validation.go
package validation

import (
	"regexp"
	"unicode/utf8"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	pinCodeRe  = regexp.MustCompile(`^\d{6}$`)
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Email reports whether s looks like an email address of at most 255 characters.
func Email(s string) bool {
	return utf8.RuneCountInString(s) <= 255 && emailRe.MatchString(s)
}

// FullName reports whether s is 1-150 characters of letters and spaces.
func FullName(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= 150 && fullNameRe.MatchString(s)
}

// PhoneNumber reports whether s is 7-15 digits.
func PhoneNumber(s string) bool {
	n := len(s) // digits only, so bytes equal characters
	return n >= 7 && n <= 15 && digitsRe.MatchString(s)
}

// PinCode reports whether s is exactly 6 digits.
func PinCode(s string) bool {
	return pinCodeRe.MatchString(s)
}

// Length reports whether s is non-empty and at most max characters. Limits
// are in characters, not bytes, so multi-byte input is counted by rune.
func Length(s string, max int) bool {
	return s != "" && utf8.RuneCountInString(s) <= max
}
