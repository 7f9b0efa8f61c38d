package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQueryString(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     bool
	}{
		{"empty", "", false},
		{"harmless parameters", "page=2&limit=50", false},
		{"password parameter", "password=hunter2", true},
		{"token parameter", "token=abc123", true},
		{"mixed case", "Auth=Bearer+x", true},
		{"sensitive among harmless", "page=2&secret=x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQueryString(tt.rawQuery))
		})
	}
}
