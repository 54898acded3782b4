package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/report"
)

// Diagnostics carries raw response fields that explain why the service did
// not produce usable structured output.
type Diagnostics struct {
	FinishReason  string
	BlockReason   string
	SafetyRatings []SafetyRating
}

// ParseError reports a response that never became well-formed JSON, distinct
// from network/processing failures. It keeps the service's diagnostic fields
// so a contract violation can be debugged.
type ParseError struct {
	Diag  Diagnostics
	Cause error
}

func (e *ParseError) Error() string {
	msg := "extraction response not parseable"
	if e.Diag.FinishReason != "" {
		msg += ", finish_reason=" + e.Diag.FinishReason
	}
	if e.Diag.BlockReason != "" {
		msg += ", block_reason=" + e.Diag.BlockReason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{common.ErrExtractionParse, e.Cause}
	}
	return []error{common.ErrExtractionParse}
}

// StripFences removes fenced code-block markers the service sometimes wraps
// around its JSON output.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeContent turns a raw model response into StructuredContent:
// fence-strip, parse (with one JSON repair attempt), validate the shape,
// then unmarshal. Returns the cleaned JSON alongside the content.
//   - still not JSON after repair       → ParseError (ErrExtractionParse)
//   - JSON but wrong field shapes       → ErrMalformedContent
func DecodeContent(raw string, diag Diagnostics, logger *slog.Logger) (*report.StructuredContent, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	text := StripFences(raw)
	if text == "" {
		return nil, nil, &ParseError{Diag: diag, Cause: fmt.Errorf("empty response text")}
	}

	if !json.Valid([]byte(text)) {
		repaired, err := jsonrepair.JSONRepair(text)
		if err != nil || !json.Valid([]byte(repaired)) {
			if err == nil {
				err = fmt.Errorf("repaired output still invalid")
			}
			return nil, nil, &ParseError{Diag: diag, Cause: err}
		}
		logger.Warn("extract.decode.repaired_json",
			"original_len", len(text),
			"repaired_len", len(repaired),
		)
		text = repaired
	}

	data := []byte(text)

	// The repair pass can turn refusal prose into a bare JSON string; only a
	// top-level object counts as structured output.
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, &ParseError{Diag: diag, Cause: err}
	}
	if _, ok := top.(map[string]any); !ok {
		return nil, nil, &ParseError{Diag: diag, Cause: fmt.Errorf("response is not a JSON object")}
	}

	if err := ValidateJSONAgainstSchema(BuildContentJSONSchema(), data); err != nil {
		return nil, data, fmt.Errorf("content shape: %v: %w", err, common.ErrMalformedContent)
	}

	var content report.StructuredContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, data, fmt.Errorf("unmarshal content: %v: %w", err, common.ErrMalformedContent)
	}
	return &content, data, nil
}
