package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"de-DE", "de"},
		{"zh_CN", "zh"},
		{"EN", "en"},
		{"fr", "fr"},
		{"", "en"},
		{"-", "en"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, ResolveLanguage(c.input), "input=%q", c.input)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "0123456789...", Preview("0123456789abcdef", 10))
}
