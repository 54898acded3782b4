package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/report"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  ```json {\"a\":1} ```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestDecodeContentHappyPath(t *testing.T) {
	raw := "```json\n" + `{
		"language": "en",
		"executive_summary": "sum",
		"structured_analysis": {"trends": ["one", "two"]},
		"other_dimensions": {"Topic": ["x"]},
		"qa_log": [{"question": "q", "answer": "a"}]
	}` + "\n```"

	content, cleaned, err := DecodeContent(raw, Diagnostics{}, nil)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.NotEmpty(t, cleaned)
	assert.Equal(t, report.LangEN, content.Lang())
	assert.Len(t, content.StructuredAnalysis, 1)
	require.Len(t, content.OtherDimensions, 1)
	assert.Equal(t, "Topic", content.OtherDimensions[0].Title)
}

func TestDecodeContentRepairsNearJSON(t *testing.T) {
	// Trailing comma: invalid JSON that the repair pass can fix.
	raw := `{"language": "en", "structured_analysis": {"trends": ["a", "b",]}}`
	content, _, err := DecodeContent(raw, Diagnostics{}, nil)
	require.NoError(t, err)
	assert.Len(t, content.StructuredAnalysis, 1)
}

func TestDecodeContentParseError(t *testing.T) {
	diag := Diagnostics{FinishReason: "SAFETY", BlockReason: "OTHER"}
	_, _, err := DecodeContent("I'm sorry, I cannot help with that.", diag, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionParse)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "SAFETY", pe.Diag.FinishReason)
	assert.Equal(t, "OTHER", pe.Diag.BlockReason)
	assert.Contains(t, pe.Error(), "SAFETY")
}

func TestDecodeContentEmptyText(t *testing.T) {
	_, _, err := DecodeContent("```json```", Diagnostics{}, nil)
	assert.ErrorIs(t, err, common.ErrExtractionParse)
}

func TestDecodeContentMalformedShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"nested object value", `{"structured_analysis": {"trends": {"nested": "object"}}}`},
		{"numeric list item", `{"structured_analysis": {"trends": [1, 2]}}`},
		{"analysis not object", `{"structured_analysis": ["a"]}`},
		{"missing analysis", `{"language": "en"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeContent(tt.raw, Diagnostics{}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrMalformedContent)
			assert.NotErrorIs(t, err, common.ErrExtractionParse)
		})
	}
}

func TestAudioMimeType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", AudioMimeType("/tmp/rec.mp3"))
	assert.Equal(t, "audio/wav", AudioMimeType("rec.WAV"))
	assert.Equal(t, "audio/mp4", AudioMimeType("a/b/rec.m4a"))
	assert.Equal(t, "audio/mpeg", AudioMimeType("noext"))
}
