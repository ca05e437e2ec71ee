package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given
// text. It correctly handles multi-byte characters (CJK, emoji, combining
// marks) by counting runes instead of bytes, so character limits behave the
// same for all scripts.
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts the maximal whitespace-delimited tokens in the text.
// The pipeline uses this as its token-length estimate: chunk size bounds
// and summary length budgets are expressed in these units.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
