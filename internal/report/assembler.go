package report

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/consultpro/interviewdoc/internal/docx"
)

// Typography: one Latin face and one CJK face on every run, emphasis through
// bold weight and size only.
const (
	fontLatin = "Calibri"
	fontCJK   = "微软雅黑"

	logoHeightEMU = 457200 // half an inch
)

var (
	styleTitle   = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 40, Bold: true}
	styleHeading = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 28, Bold: true}
	styleSubhead = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 24, Bold: true}
	styleBody    = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 21}
	styleBold    = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 21, Bold: true}
	styleNote    = docx.RunStyle{AsciiFont: fontLatin, EastAsiaFont: fontCJK, SizeHalfPoints: 18}
)

// Assembler renders StructuredContent into a formatted docx document.
type Assembler struct {
	logo   []byte // optional header logo; nil means no header image
	logger *slog.Logger
}

func NewAssembler(logo []byte, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logo: logo, logger: logger}
}

// Build lays the report out: header logo, title line, metadata line, summary,
// structured sections in taxonomy order, free-form findings, Q&A transcript.
// Malformed section values abort the build with no partial document.
func (a *Assembler) Build(content *StructuredContent, meta Metadata) ([]byte, error) {
	start := time.Now()

	lang := content.Lang()
	sections, err := Resolve(meta.Mode, lang)
	if err != nil {
		return nil, err
	}
	lb := labelsFor(meta.Mode)

	doc := docx.New()
	if len(a.logo) > 0 {
		if err := doc.SetHeaderImage(a.logo, logoHeightEMU); err != nil {
			// A broken logo resource never blocks the report.
			a.logger.Warn("report.build.logo_skipped", "error", err)
		}
	}

	a.writeTitleBlock(doc, content, meta, lang, lb)

	if summary := SanitizeText(content.ExecutiveSummary); summary != "" {
		a.writeHeading(doc, lb.SummaryHeading.in(lang))
		doc.AddParagraph().Spacing(0, 120).AddText(summary, styleBody)
	}

	rendered := 0
	for _, sec := range sections {
		v, ok := content.StructuredAnalysis[sec.Key]
		if !ok {
			continue
		}
		points, isList, err := pointsOf(v)
		if err != nil {
			return nil, fmt.Errorf("structured_analysis[%s]: %w", sec.Key, err)
		}
		if !a.writeSection(doc, sec.Title, points, isList) {
			continue
		}
		rendered++
	}

	// Free-form topics keep the extraction step's order. The heading is only
	// emitted once at least one topic has renderable content.
	others := 0
	headingWritten := false
	for _, topic := range content.OtherDimensions {
		points, isList, err := pointsOf(topic.Value)
		if err != nil {
			return nil, fmt.Errorf("other_dimensions[%s]: %w", topic.Title, err)
		}
		if !hasContent(points) {
			continue
		}
		if !headingWritten {
			a.writeHeading(doc, lb.OtherHeading.in(lang))
			headingWritten = true
		}
		a.writeSection(doc, SanitizeText(topic.Title), points, isList)
		others++
	}

	if len(content.QALog) > 0 {
		a.writeQALog(doc, content.QALog, lang, lb)
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	a.logger.Info("report.build.ok",
		"mode", string(meta.Mode),
		"lang", string(lang),
		"sections", rendered,
		"other_topics", others,
		"qa_entries", len(content.QALog),
		"bytes", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (a *Assembler) writeTitleBlock(doc *docx.Document, content *StructuredContent, meta Metadata, lang Lang, lb modeLabels) {
	var title string
	if meta.Mode.IsMeeting() {
		topic := strings.TrimSpace(meta.Topic)
		if topic == "" {
			topic = lb.DefaultTopic.in(lang)
		}
		title = fmt.Sprintf("%s - %s", topic, lb.TitleSuffix.in(lang))
	} else {
		title = fmt.Sprintf("%s - %s %s", meta.Company, meta.Product, lb.TitleSuffix.in(lang))
	}
	doc.AddParagraph().Spacing(0, 120).AddText(title, styleTitle)

	metaLine := fmt.Sprintf("%s: %s | %s: %s",
		lb.DateField.in(lang), meta.Date.Format("2006-01-02"),
		lb.TypeField.in(lang), lb.TypeLabel.in(lang))
	doc.AddParagraph().Spacing(0, 60).AddText(metaLine, styleBody)
	doc.AddParagraph().Spacing(0, 120).AddText(strings.Repeat("-", 50), styleBody)
}

func hasContent(points []string) bool {
	for _, p := range points {
		if SanitizeText(p) != "" {
			return true
		}
	}
	return false
}

func (a *Assembler) writeHeading(doc *docx.Document, text string) {
	doc.AddParagraph().Spacing(160, 80).AddText(text, styleHeading)
}

// writeSection emits a bold subheading followed by bullet paragraphs (list
// value) or one plain paragraph (scalar value). Sections whose points are
// all empty after sanitization produce no output, so the document never
// contains an empty heading. Reports whether anything was written.
func (a *Assembler) writeSection(doc *docx.Document, title string, points []string, isList bool) bool {
	clean := make([]string, 0, len(points))
	for _, p := range points {
		if s := SanitizeText(p); s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return false
	}

	doc.AddParagraph().Spacing(120, 60).AddText(title, styleSubhead)
	if isList {
		for _, p := range clean {
			doc.AddParagraph().
				HangingIndent(docx.QuarterInchTwips).
				AddText("•", styleBody).
				AddTab(styleBody).
				AddText(p, styleBody)
		}
	} else {
		doc.AddParagraph().Spacing(0, 60).AddText(clean[0], styleBody)
	}
	return true
}

func (a *Assembler) writeQALog(doc *docx.Document, entries []QAEntry, lang Lang, lb modeLabels) {
	a.writeHeading(doc, lb.QAHeading.in(lang))
	notePrefix := "Note: "
	if lang == LangZH {
		notePrefix = "注: "
	}
	for _, qa := range entries {
		q := SanitizeText(qa.Question)
		ans := SanitizeText(qa.Answer)
		if q == "" && ans == "" {
			continue
		}
		doc.AddParagraph().Spacing(80, 20).AddText("Q: "+q, styleBold)
		doc.AddParagraph().Spacing(0, 40).AddText("A: "+ans, styleBody)
		if note := SanitizeText(qa.ContextNote); note != "" {
			doc.AddParagraph().Spacing(0, 60).AddText("["+notePrefix+note+"]", styleNote)
		}
	}
}
