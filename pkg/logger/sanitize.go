package logger

import "strings"

// sensitiveParams are query parameter names whose values must never
// reach the request log.
var sensitiveParams = []string{
	"password",
	"token",
	"secret",
	"auth",
}

// SanitizeQueryString reports whether a raw query string contains a
// sensitive parameter and should be redacted wholesale from logs.
func SanitizeQueryString(rawQuery string) bool {
	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param) {
			return true
		}
	}
	return false
}
