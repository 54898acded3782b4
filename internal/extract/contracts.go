package extract

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/consultpro/interviewdoc/internal/report"
)

// Request carries everything the extraction service needs for one audio file.
type Request struct {
	AudioPath string
	MimeType  string
	Mode      report.Mode
}

// Extractor is the interface the pipeline depends on. Implementations return
// the parsed structured content plus the cleaned raw JSON for diagnostics.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*report.StructuredContent, []byte /*rawJSON*/, error)
}

// SafetyRating is a diagnostic classification flag attached to a response.
type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

// AudioMimeType guesses the MIME type of an audio file from its extension.
func AudioMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".aac":
		return "audio/aac"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	}
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "audio/") {
		return mt
	}
	return "audio/mpeg"
}
