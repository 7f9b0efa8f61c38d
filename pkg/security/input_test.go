package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"minimum length", "abc", true},
		{"typical", "admin_1", true},
		{"fifty characters", strings.Repeat("a", 50), true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 51), false},
		{"empty", "", false},
		{"hyphen rejected", "ana-reyes", false},
		{"space rejected", "ana reyes", false},
		{"at sign rejected", "ana@reyes", false},
		{"unicode rejected", "añareyes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets all rules", "Password1", true},
		{"special characters allowed", "P@ssw0rd!", true},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "Passwords", false},
		{"too short", "Pass1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain", "reyes@brgy.gov.ph", true},
		{"plus tag", "reyes+relief@example.com", true},
		{"subdomain", "staff@mail.lgu.gov.ph", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"missing at", "reyes.example.com", false},
		{"missing tld", "reyes@example", false},
		{"one letter tld", "reyes@example.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsInputSafe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ordinary name", "Maria Clara", true},
		{"empty", "", true},
		{"injection attempt", "robert'; DROP TABLE users;--", false},
		{"lowercase keyword", "union all", false},
		{"mixed case keyword", "SeLeCt 1", false},
		{"script tag", "<script>alert(1)</script>", false},
		{"keyword inside a word still flagged", "reselected", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInputSafe(tt.input))
		})
	}
}

func TestSanitizeForLogging(t *testing.T) {
	t.Run("line breaks and tabs become underscores", func(t *testing.T) {
		assert.Equal(t, "line1_line2_tab", SanitizeForLogging("line1\nline2\ttab"))
		assert.Equal(t, "a__b", SanitizeForLogging("a\r\nb"))
	})

	t.Run("other control characters are dropped", func(t *testing.T) {
		assert.Equal(t, "ab", SanitizeForLogging("a\x00\x1bb"))
	})

	t.Run("long values are truncated with a marker", func(t *testing.T) {
		got := SanitizeForLogging(strings.Repeat("x", 500))
		assert.Len(t, got, 200+len("...[truncated]"))
		assert.True(t, strings.HasSuffix(got, "...[truncated]"))
	})

	t.Run("short clean input is unchanged", func(t *testing.T) {
		assert.Equal(t, "captain_reyes", SanitizeForLogging("captain_reyes"))
	})
}
