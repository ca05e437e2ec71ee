package entity

// Chunk is an ordered span of normalized document text that is submitted
// independently to the summarization backend.
//
// Invariants maintained by the chunker:
//   - Index values are 0-based, contiguous, and preserve document order.
//   - Text is never empty.
//   - Joining all chunk texts with a single space reconstructs the
//     normalized document text.
type Chunk struct {
	// Index is the 0-based position of this chunk within the document.
	Index int

	// Text is the chunk's span of the normalized text.
	Text string

	// StartOffset is the chunk's starting character offset (in runes)
	// within the normalized text.
	StartOffset int

	// EndOffset is the character offset one past the chunk's last rune.
	EndOffset int
}

// ChunkSummary is the summarization backend's output for a single chunk.
// It is produced and owned by the aggregator and never shared.
type ChunkSummary struct {
	// ChunkIndex is the Index of the source chunk.
	ChunkIndex int

	// Text is the backend-generated summary of the chunk.
	Text string
}
