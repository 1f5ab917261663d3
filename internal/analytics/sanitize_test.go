package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Strips tags and decodes entities",
			input:    "<b>Hi</b>&nbsp;there",
			expected: "Hi there",
		},
		{
			name:     "Collapses whitespace",
			input:    "one\n\n  two\t three",
			expected: "one two three",
		},
		{
			name:     "Trims surrounding whitespace",
			input:    "   padded   ",
			expected: "padded",
		},
		{
			name:     "Empty input yields placeholder",
			input:    "",
			expected: emptyPlaceholder,
		},
		{
			name:     "Only tags yields placeholder",
			input:    "<div><span></span></div>",
			expected: emptyPlaceholder,
		},
		{
			name:     "Ampersand entity",
			input:    "bulls&amp;bears",
			expected: "bulls&bears",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Sanitize(tc.input))
		})
	}
}

func TestSanitizeTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 5000)
	out := Sanitize(long)

	assert.Len(t, []rune(out), maxContentRunes+len([]rune(truncationMarker)))
	assert.True(t, strings.HasSuffix(out, truncationMarker))
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"<b>Hi</b>&nbsp;there",
		"plain text with   gaps",
		"RSI: 45 | MACD: bearish",
		strings.Repeat("x", 1999),
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once))
	}
}
