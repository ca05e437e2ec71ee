package text_test

import (
	"testing"

	"textsum/internal/utils/text"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already canonical",
			input:    "The cat sat.",
			expected: "The cat sat.",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "   hello world   ",
			expected: "hello world",
		},
		{
			name:     "internal whitespace run collapses",
			input:    "hello    \t  world",
			expected: "hello world",
		},
		{
			name:     "newlines become single spaces",
			input:    "line one\nline two\r\nline three",
			expected: "line one line two line three",
		},
		{
			name:     "control characters removed",
			input:    "abc\x00\x07def",
			expected: "abcdef",
		},
		{
			name:     "sentence punctuation preserved",
			input:    "One.  Two!  Three?",
			expected: "One. Two! Three?",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    " \t\n ",
			expected: "",
		},
		{
			name:     "unicode text untouched",
			input:    "  こんにちは 世界  ",
			expected: "こんにちは 世界",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  a  b  c  ",
		"The quick brown fox. Jumps over!",
		"",
	}
	for _, in := range inputs {
		once := text.Normalize(in)
		twice := text.Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
