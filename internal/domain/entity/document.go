// Package entity defines the domain types for the summarization pipeline:
// documents, chunks, summary parameters, analysis metrics, and the error
// taxonomy shared by all pipeline stages.
package entity

import "unicode/utf8"

// SourceKind identifies where a document's raw text came from.
type SourceKind string

const (
	// SourceTyped indicates text entered directly by the user.
	SourceTyped SourceKind = "typed"
	// SourceUploaded indicates text read from an uploaded file.
	SourceUploaded SourceKind = "uploaded"
	// SourceURL indicates text extracted from a fetched web page.
	SourceURL SourceKind = "url"
)

// Document is an immutable snapshot of the input text as it entered the
// pipeline. It is created once at ingestion and never mutated; pipeline
// stages operate on derived values (normalized text, chunks).
type Document struct {
	// Text is the raw input text exactly as received.
	Text string

	// Source records how the text was obtained.
	Source SourceKind

	// ByteLength is the length of Text in bytes.
	ByteLength int

	// CharCount is the length of Text in Unicode code points.
	CharCount int
}

// NewDocument creates a Document from raw text, recording byte and
// character lengths at construction time.
func NewDocument(text string, source SourceKind) Document {
	return Document{
		Text:       text,
		Source:     source,
		ByteLength: len(text),
		CharCount:  utf8.RuneCountInString(text),
	}
}
