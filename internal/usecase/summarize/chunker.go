package summarize

import (
	"strings"

	"textsum/internal/domain/entity"
	"textsum/internal/utils/text"
)

// DefaultMaxChunkTokens is the default chunk size bound, expressed in
// whitespace-delimited tokens.
const DefaultMaxChunkTokens = 400

// ChunkText splits canonical (normalized) text into ordered chunks whose
// estimated token count stays within maxChunkTokens. Sentences are the unit
// of accumulation: consecutive sentences are packed greedily into the
// current chunk, and a chunk is closed when adding the next sentence would
// exceed the bound. The chunker never splits mid-sentence; a single
// sentence longer than the bound is emitted as its own oversized chunk
// rather than truncated.
//
// Joining the returned chunks' texts with a single space reconstructs the
// canonical text. Empty input yields no chunks.
func ChunkText(canonical string, maxChunkTokens int) []entity.Chunk {
	if canonical == "" {
		return nil
	}
	if maxChunkTokens <= 0 {
		maxChunkTokens = DefaultMaxChunkTokens
	}

	sentences := text.SplitSentences(canonical)

	var chunks []entity.Chunk
	var current []string
	currentTokens := 0
	offset := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunkText := strings.Join(current, " ")
		runeLen := text.CountRunes(chunkText)
		chunks = append(chunks, entity.Chunk{
			Index:       len(chunks),
			Text:        chunkText,
			StartOffset: offset,
			EndOffset:   offset + runeLen,
		})
		// +1 accounts for the single space separating chunks in the
		// canonical text.
		offset += runeLen + 1
		current = current[:0]
		currentTokens = 0
	}

	for _, sentence := range sentences {
		tokens := text.CountWords(sentence)
		if len(current) > 0 && currentTokens+tokens > maxChunkTokens {
			flush()
		}
		current = append(current, sentence)
		currentTokens += tokens
	}
	flush()

	return chunks
}
