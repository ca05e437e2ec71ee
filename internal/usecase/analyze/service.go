// Package analyze computes descriptive text statistics and extracts
// keywords. All functions are pure: identical input text always yields
// identical metrics and identical keyword ordering.
package analyze

import (
	"math"
	"strings"
	"unicode"

	"textsum/internal/domain/entity"
	"textsum/internal/utils/text"
)

// Metrics computes AnalysisMetrics for the given text.
//
// Word count is the number of maximal whitespace-delimited tokens. Sentence
// count uses the shared sentence-boundary heuristic, with a minimum of 1
// for non-empty text. Average sentence length is rounded to two decimal
// places. Unique words are distinct case-folded tokens with surrounding
// punctuation stripped; lexical diversity is unique / total.
func Metrics(input string) entity.AnalysisMetrics {
	wordCount := text.CountWords(input)
	sentenceCount := text.CountSentences(input)

	denom := sentenceCount
	if denom < 1 {
		denom = 1
	}
	avg := math.Round(float64(wordCount)/float64(denom)*100) / 100

	unique := map[string]struct{}{}
	for _, tok := range strings.Fields(input) {
		w := foldToken(tok)
		if w == "" {
			continue
		}
		unique[w] = struct{}{}
	}

	wordDenom := wordCount
	if wordDenom < 1 {
		wordDenom = 1
	}

	return entity.AnalysisMetrics{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: avg,
		UniqueWords:       len(unique),
		LexicalDiversity:  float64(len(unique)) / float64(wordDenom),
	}
}

// Keywords extracts the topK most frequent keywords from the text.
//
// Tokens are case-folded and stripped of surrounding punctuation, then
// filtered against the fixed stop-word list and a two-rune minimum length.
// Results are ordered by descending frequency; ties are broken by first
// occurrence in the text, which keeps the output deterministic.
func Keywords(input string, topK int) []entity.Keyword {
	if topK <= 0 {
		topK = entity.DefaultTopKeywords
	}

	counts := map[string]int{}
	var order []string

	for _, tok := range strings.Fields(input) {
		w := foldToken(tok)
		if w == "" || len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Insertion sort by count keeps first-occurrence order for ties.
	ranked := make([]entity.Keyword, 0, len(order))
	for _, w := range order {
		kw := entity.Keyword{Term: w, Count: counts[w]}
		pos := len(ranked)
		for pos > 0 && ranked[pos-1].Count < kw.Count {
			pos--
		}
		ranked = append(ranked, entity.Keyword{})
		copy(ranked[pos+1:], ranked[pos:])
		ranked[pos] = kw
	}

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// foldToken lowercases a token and strips leading/trailing runes that are
// not letters or digits. Returns "" if nothing remains.
func foldToken(tok string) string {
	trimmed := strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(trimmed)
}
