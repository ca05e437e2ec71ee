package summarizer

import (
	"context"
	"strings"

	"textsum/internal/domain/entity"
	"textsum/internal/utils/text"
)

// Extractive is a deterministic local backend that summarizes by selecting
// leading sentences until the word budget is spent. It needs no network,
// no credentials, and no model weights, which makes it the default backend
// and the one unit tests exercise end to end.
type Extractive struct{}

// NewExtractive creates the extractive backend.
func NewExtractive() *Extractive {
	return &Extractive{}
}

// Summarize selects sentences from the front of the input, in order, while
// the running word count stays within params.MaxLength. The first sentence
// is always included even when it alone exceeds the budget, so the summary
// is never empty for non-empty input. Identical input and parameters
// always produce identical output.
func (e *Extractive) Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sentences := text.SplitSentences(input)
	if len(sentences) == 0 {
		return "", nil
	}

	var picked []string
	words := 0
	for _, s := range sentences {
		n := text.CountWords(s)
		if len(picked) > 0 && words+n > params.MaxLength {
			break
		}
		picked = append(picked, s)
		words += n
		if words >= params.MaxLength {
			break
		}
	}

	return strings.Join(picked, " "), nil
}
