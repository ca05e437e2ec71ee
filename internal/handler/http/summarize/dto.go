package summarize

import "textsum/internal/domain/entity"

// Request is the summarize endpoint's JSON body. Exactly one of Text and
// URL must be set. Parameter fields left at zero take the pipeline
// defaults.
type Request struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`

	Model     string `json:"model,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	MinLength int    `json:"min_length,omitempty"`
	NumBeams  int    `json:"num_beams,omitempty"`
	DoSample  bool   `json:"do_sample,omitempty"`
}

// params translates the request into pipeline parameters, filling
// defaults for fields the client omitted.
func (r Request) params(defaultModel string) entity.SummaryParameters {
	model := r.Model
	if model == "" {
		model = defaultModel
	}
	p := entity.DefaultParameters(model)
	if r.MaxLength != 0 {
		p.MaxLength = r.MaxLength
	}
	if r.MinLength != 0 {
		p.MinLength = r.MinLength
	}
	if r.NumBeams != 0 {
		p.NumBeams = r.NumBeams
	}
	p.DoSample = r.DoSample
	return p
}

// Response wraps the pipeline result with the document source that
// produced it.
type Response struct {
	Source string `json:"source"`
	*entity.PipelineResult
}
