package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"acme", true},
		{"acme-2024", true},
		{"dj_daniel", true},
		{"A1", true},
		{"", false},
		{"-leading-dash", false},
		{"_leading", false},
		{"../etc/passwd", false},
		{"nested/key", false},
		{`back\slash`, false},
		{"with space", false},
		{"dots.json", false},
		{strings.Repeat("a", MaxKeyLength), true},
		{strings.Repeat("a", MaxKeyLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeKey(tt.key))
		})
	}
}

func TestTruncateBasic(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
