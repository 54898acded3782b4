package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/consultpro/interviewdoc/internal/common"
)

// Lang is the detected content language. It drives every localized string
// downstream: section titles, fixed labels, the filename prefix.
type Lang string

const (
	LangZH Lang = "zh"
	LangEN Lang = "en"
)

// NormalizeLang maps the extraction step's free-form language value onto the
// closed set: anything containing "zh", "chinese" or "cn" is Chinese,
// everything else (including unknown values) falls back to English.
func NormalizeLang(v string) Lang {
	s := strings.ToLower(v)
	if strings.Contains(s, "zh") || strings.Contains(s, "chinese") || strings.Contains(s, "cn") {
		return LangZH
	}
	return LangEN
}

// QAEntry is one exchange of the interview transcript.
type QAEntry struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	ContextNote string `json:"context_note,omitempty"`
}

// Topic is one free-form finding outside the fixed taxonomy: a title plus a
// value that is either a list of point strings or a single string.
type Topic struct {
	Title string
	Value any
}

// Topics preserves the key order of a JSON object. Free-form findings are
// rendered in the order the extraction step produced them, which a plain Go
// map would lose.
type Topics []Topic

func (t *Topics) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("other_dimensions is not an object: %w", common.ErrMalformedContent)
	}
	out := Topics{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("other_dimensions key is not a string: %w", common.ErrMalformedContent)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return err
		}
		out = append(out, Topic{Title: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

func (t Topics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, topic := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(topic.Title)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(topic.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StructuredContent is the parsed result of the extraction step. It is
// ephemeral: constructed per report-generation request, rendered, and
// discarded (or kept as the single session result).
type StructuredContent struct {
	Language           string         `json:"language"`
	ExecutiveSummary   string         `json:"executive_summary,omitempty"`
	StructuredAnalysis map[string]any `json:"structured_analysis"`
	OtherDimensions    Topics         `json:"other_dimensions,omitempty"`
	QALog              []QAEntry      `json:"qa_log,omitempty"`
}

// Lang returns the normalized content language.
func (c *StructuredContent) Lang() Lang {
	return NormalizeLang(c.Language)
}

// pointsOf normalizes a section value to its point strings. A list value
// renders as bullets, a scalar string as one plain paragraph; anything else
// violates the extraction contract.
func pointsOf(v any) (points []string, isList bool, err error) {
	switch t := v.(type) {
	case string:
		return []string{t}, false, nil
	case []string:
		return t, true, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false, fmt.Errorf("list item is %T, want string: %w", e, common.ErrMalformedContent)
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("section value is %T, want string or list of strings: %w", v, common.ErrMalformedContent)
	}
}

// Metadata is supplied by the caller, not by extraction. Identity fields are
// used only for title/metadata text and the output filename.
type Metadata struct {
	Mode    Mode
	Company string
	Product string
	Topic   string
	Date    time.Time
}
