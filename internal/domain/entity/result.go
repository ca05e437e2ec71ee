package entity

import "time"

// Keyword is a single extracted keyword with its frequency in the text.
type Keyword struct {
	// Term is the case-folded, punctuation-stripped word.
	Term string `json:"term"`

	// Count is the term's frequency in the analyzed text.
	Count int `json:"count"`
}

// AnalysisMetrics holds descriptive statistics for a text. It is derived
// purely from the input and recomputed on each call; identical input always
// yields identical metrics.
type AnalysisMetrics struct {
	// WordCount is the number of maximal whitespace-delimited tokens.
	WordCount int `json:"word_count"`

	// SentenceCount is the number of detected sentences. It is at least 1
	// for any non-empty text.
	SentenceCount int `json:"sentence_count"`

	// AvgSentenceLength is WordCount / SentenceCount, rounded to two
	// decimal places.
	AvgSentenceLength float64 `json:"avg_sentence_length"`

	// UniqueWords is the number of distinct case-folded word tokens with
	// punctuation stripped.
	UniqueWords int `json:"unique_words"`

	// LexicalDiversity is UniqueWords / WordCount, in [0, 1].
	LexicalDiversity float64 `json:"lexical_diversity"`
}

// PipelineResult is the final artifact of a successful pipeline run. It is
// returned to the caller and not retained by the pipeline.
type PipelineResult struct {
	// Summary is the final merged summary text, plain UTF-8 suitable for
	// direct file writing.
	Summary string `json:"summary"`

	// Model is the backend identifier that produced the summary.
	Model string `json:"model"`

	// InputMetrics are the analysis metrics for the raw input text.
	InputMetrics AnalysisMetrics `json:"input_metrics"`

	// SummaryMetrics are the analysis metrics for the final summary.
	SummaryMetrics AnalysisMetrics `json:"summary_metrics"`

	// Keywords are the top keywords extracted from the raw input.
	Keywords []Keyword `json:"keywords"`

	// ChunksProcessed is the number of chunks the input was split into.
	ChunksProcessed int `json:"chunks_processed"`

	// SecondPass reports whether a summary-of-summaries compression pass ran.
	SecondPass bool `json:"second_pass"`

	// OriginalChars and SummaryChars are character counts used to compute
	// the compression ratio shown to users.
	OriginalChars int `json:"original_chars"`
	SummaryChars  int `json:"summary_chars"`

	// CompressionRatio is SummaryChars / OriginalChars.
	CompressionRatio float64 `json:"compression_ratio"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`
}
