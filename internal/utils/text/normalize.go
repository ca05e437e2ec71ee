// Package text provides utilities for text processing: normalization,
// sentence segmentation, and character/token counting. These functions are
// shared by the chunker, the analyzer, and the summarization backends so
// that all stages agree on what a word and a sentence are.
package text

import (
	"strings"
	"unicode"
)

// Normalize converts raw input into the canonical form the pipeline
// operates on: leading/trailing whitespace is stripped, internal runs of
// whitespace collapse to a single space, and non-printable control
// characters are removed. Sentence-ending punctuation is preserved.
//
// Empty input normalizes to the empty string; treating that as an error is
// the caller's responsibility.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r):
			// Non-whitespace control characters are dropped entirely.
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}
