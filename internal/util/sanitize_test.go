package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"preview key", "dj-template-launch", "dj-template-launch"},
		{"forged entry via CRLF", "dj-template\r\nlevel=info msg=\"login ok\"", "dj-template level=info msg=\"login ok\""},
		{"bare LF", "key\nadmin", "key admin"},
		{"run of controls collapses", "id\x00\x1b[31m\t", "id [31m "},
		{"DEL", "x\x7fy", "x y"},
		{"multibyte kept", "São Paulo\nlaunch", "São Paulo launch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeForLog(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n")
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "dj-template", Truncate("dj-template", 200))
	assert.Equal(t, "dj-", Truncate("dj-template", 3))
	assert.Equal(t, "dj-template", Truncate("dj-template", 0), "non-positive limit disables truncation")

	// "é" is two bytes; cutting inside it backs off to the previous rune.
	got := Truncate("café-launch", 4)
	assert.Equal(t, "caf", got)
	assert.True(t, utf8.ValidString(got))

	long := strings.Repeat("日本", 100)
	got = Truncate(long, 200)
	assert.LessOrEqual(t, len(got), 200)
	assert.True(t, utf8.ValidString(got))
}
