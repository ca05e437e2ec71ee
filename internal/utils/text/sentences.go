package text

import (
	"strings"
	"unicode"
)

// terminal reports whether r ends a sentence.
func terminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// SplitSentences segments canonical text into sentences using a terminal
// punctuation heuristic: a run of sentence-ending punctuation followed by
// whitespace closes a sentence. Closing quotes and brackets directly after
// the punctuation stay with the sentence they close.
//
// Text without any boundary is returned as a single sentence. Empty input
// yields a nil slice. The heuristic never splits inside a whitespace-free
// token, so "3.14" and "v1.2.3" survive intact.
func SplitSentences(canonical string) []string {
	if canonical == "" {
		return nil
	}

	var sentences []string
	runes := []rune(canonical)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !terminal(runes[i]) {
			continue
		}

		// Absorb the full punctuation run ("?!", "...").
		end := i
		for end+1 < len(runes) && terminal(runes[end+1]) {
			end++
		}

		// Keep trailing closers with the sentence: quotes, brackets.
		for end+1 < len(runes) && isCloser(runes[end+1]) {
			end++
		}

		// A boundary needs following whitespace (or end of text).
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		s := strings.TrimSpace(string(runes[start : end+1]))
		if s != "" {
			sentences = append(sentences, s)
		}
		i = end + 1
		start = i + 1
	}

	// Trailing text without terminal punctuation is its own sentence.
	if start < len(runes) {
		s := strings.TrimSpace(string(runes[start:]))
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 {
		return []string{strings.TrimSpace(canonical)}
	}
	return sentences
}

// isCloser reports whether r is a closing quote or bracket that belongs to
// the sentence whose terminal punctuation precedes it.
func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '』', '」':
		return true
	}
	return false
}

// CountSentences returns the number of sentences detected in the text,
// with a minimum of 1 for any non-empty text.
func CountSentences(text string) int {
	return len(SplitSentences(text))
}
