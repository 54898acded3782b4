package pipeline

import (
	"context"
	"log/slog"

	"github.com/consultpro/interviewdoc/internal/extract"
	"github.com/consultpro/interviewdoc/internal/report"
)

// Processor coordinates extraction (audio → structured content) then
// assembly (structured content → document).
type Processor struct {
	Logger    *slog.Logger
	Extractor extract.Extractor
	Assembler *report.Assembler
}

func NewProcessor(logger *slog.Logger, extractor extract.Extractor, assembler *report.Assembler) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Extractor: extractor, Assembler: assembler}
}

// Result is one generated report. It is the unit the session store keeps.
type Result struct {
	Filename string
	Document []byte
	Content  *report.StructuredContent
}

// Generate runs the two stages for one audio file. Errors are hard stops;
// no partial result is returned.
func (p *Processor) Generate(ctx context.Context, audioPath string, meta report.Metadata) (*Result, error) {
	// 1) extraction stage → structured content
	content, _, err := p.Extractor.Extract(ctx, extract.Request{
		AudioPath: audioPath,
		MimeType:  extract.AudioMimeType(audioPath),
		Mode:      meta.Mode,
	})
	if err != nil {
		p.Logger.Error("processor.extract.failed", "audio", audioPath, "err", err)
		return nil, err
	}
	p.Logger.Info("processor.extract.ok",
		"audio", audioPath,
		"language", content.Language,
		"sections", len(content.StructuredAnalysis),
	)

	// 2) assembly stage → formatted document + filename
	doc, err := p.Assembler.Build(content, meta)
	if err != nil {
		p.Logger.Error("processor.assemble.failed", "mode", string(meta.Mode), "err", err)
		return nil, err
	}
	name := report.Filename(meta, content.Lang())
	p.Logger.Info("processor.assemble.ok", "filename", name, "bytes", len(doc))

	return &Result{Filename: name, Document: doc, Content: content}, nil
}
