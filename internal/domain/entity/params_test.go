package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParameters(t *testing.T) {
	params := DefaultParameters("extractive")

	assert.Equal(t, "extractive", params.Model)
	assert.Equal(t, DefaultMaxLength, params.MaxLength)
	assert.Equal(t, DefaultMinLength, params.MinLength)
	assert.Equal(t, DefaultNumBeams, params.NumBeams)
	assert.False(t, params.DoSample)
	assert.NoError(t, params.Validate())
}

func TestSummaryParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SummaryParameters)
		wantErr string
	}{
		{
			name:    "empty model",
			mutate:  func(p *SummaryParameters) { p.Model = "" },
			wantErr: "model identifier",
		},
		{
			name:    "zero min length",
			mutate:  func(p *SummaryParameters) { p.MinLength = 0 },
			wantErr: "min length",
		},
		{
			name:    "negative min length",
			mutate:  func(p *SummaryParameters) { p.MinLength = -5 },
			wantErr: "min length",
		},
		{
			name:    "max equal to min",
			mutate:  func(p *SummaryParameters) { p.MaxLength = p.MinLength },
			wantErr: "must exceed min length",
		},
		{
			name:    "max below min",
			mutate:  func(p *SummaryParameters) { p.MaxLength = 10 },
			wantErr: "must exceed min length",
		},
		{
			name:    "zero beams",
			mutate:  func(p *SummaryParameters) { p.NumBeams = 0 },
			wantErr: "beam count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters("extractive")
			tt.mutate(&params)

			err := params.Validate()
			assert.ErrorIs(t, err, ErrInvalidParameters)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSummaryParameters_ValidateReportsAllProblems(t *testing.T) {
	err := SummaryParameters{}.Validate()

	assert.ErrorIs(t, err, ErrInvalidParameters)
	assert.Contains(t, err.Error(), "model identifier")
	assert.Contains(t, err.Error(), "min length")
	assert.Contains(t, err.Error(), "beam count")
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("héllo wörld", SourceTyped)

	assert.Equal(t, "héllo wörld", doc.Text)
	assert.Equal(t, SourceTyped, doc.Source)
	assert.Equal(t, 13, doc.ByteLength)
	assert.Equal(t, 11, doc.CharCount)
}
