// Package security holds the input validation predicates and log
// sanitization applied to externally supplied strings before they reach
// the credential verifier, query construction, or a log sink.
package security

import (
	"regexp"
	"strings"
	"unicode"
)

const maxLoggedLength = 200

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// Advisory denylist, defense in depth on top of parameterized
	// queries - not a substitute for them.
	sqlKeywordPattern = regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop|create|alter|exec|execute|script|javascript|vbscript)`)
)

// IsValidUsername reports whether the username is 3-50 characters of
// letters, digits and underscores. Total over all inputs.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidPassword reports whether the password is at least 8 characters
// and contains an uppercase letter, a lowercase letter and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// IsValidEmail reports whether the address has a conventional
// local-part @ domain shape with a 2+ letter top-level segment.
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// IsInputSafe reports whether the input is free of SQL/script keywords,
// case-insensitively.
func IsInputSafe(input string) bool {
	return !sqlKeywordPattern.MatchString(input)
}

// SanitizeForLogging makes an externally supplied string safe for a log
// sink (CWE-117): line breaks and tabs become underscores, remaining
// control characters are stripped, and long values are truncated.
func SanitizeForLogging(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			b.WriteRune('_')
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	sanitized := b.String()
	if len(sanitized) > maxLoggedLength {
		sanitized = sanitized[:maxLoggedLength] + "...[truncated]"
	}
	return sanitized
}
