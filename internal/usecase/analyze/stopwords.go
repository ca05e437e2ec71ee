package analyze

// stopWords is the fixed English stop-word list used by keyword extraction.
// The list is deliberately frozen in source rather than loaded from
// configuration: keyword output must be deterministic across deployments.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the",
		"and", "or", "but", "nor", "so", "yet",
		"in", "on", "at", "to", "of", "for", "from", "by", "with",
		"about", "into", "over", "under", "after", "before", "between",
		"up", "down", "out", "off", "through", "during",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "doing",
		"have", "has", "had", "having",
		"will", "would", "shall", "should", "can", "could", "may", "might", "must",
		"i", "you", "he", "she", "it", "we", "they",
		"me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their",
		"this", "that", "these", "those",
		"there", "here", "where", "when", "why", "how",
		"what", "which", "who", "whom",
		"not", "no", "as", "if", "then", "than", "too", "very",
		"just", "also", "only", "both", "each", "all", "any", "some", "such",
		"own", "same", "other", "more", "most", "few", "much",
	} {
		stopWords[w] = struct{}{}
	}
}
