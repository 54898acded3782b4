package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// RunStyle describes one text run. Every run carries both a Latin face and
// an East Asian face so mixed-script content renders each script in its own
// font without manual splitting. Color is always pure black.
type RunStyle struct {
	AsciiFont      string
	EastAsiaFont   string
	SizeHalfPoints int
	Bold           bool
}

type run struct {
	text  string
	isTab bool
	style RunStyle
}

// Paragraph is a sequence of runs with paragraph-level layout properties.
type Paragraph struct {
	alignment     string // "", "left", "center", "right"
	indentLeft    int    // twips
	hanging       int    // twips
	tabStops      []int  // twips
	spacingBefore int    // twentieths of a point
	spacingAfter  int    // twentieths of a point
	runs          []run
}

// Align sets paragraph justification ("left", "center", "right").
func (p *Paragraph) Align(v string) *Paragraph {
	p.alignment = v
	return p
}

// Spacing sets space before/after the paragraph, in twentieths of a point.
func (p *Paragraph) Spacing(before, after int) *Paragraph {
	p.spacingBefore = before
	p.spacingAfter = after
	return p
}

// HangingIndent configures bullet layout: body indent of the given unit, a
// negative first-line indent of the same unit pulling the glyph back to the
// margin, and a tab stop at the body-indent position so wrapped continuation
// lines align under the text rather than under the glyph.
func (p *Paragraph) HangingIndent(twips int) *Paragraph {
	p.indentLeft = twips
	p.hanging = twips
	p.tabStops = append(p.tabStops, twips)
	return p
}

// AddText appends a styled text run.
func (p *Paragraph) AddText(text string, style RunStyle) *Paragraph {
	p.runs = append(p.runs, run{text: text, style: style})
	return p
}

// AddTab appends a tab run.
func (p *Paragraph) AddTab(style RunStyle) *Paragraph {
	p.runs = append(p.runs, run{isTab: true, style: style})
	return p
}

func (p *Paragraph) writeXML(buf *bytes.Buffer) {
	buf.WriteString("<w:p>")
	p.writePropsXML(buf)
	for _, r := range p.runs {
		r.writeXML(buf)
	}
	buf.WriteString("</w:p>")
}

func (p *Paragraph) writePropsXML(buf *bytes.Buffer) {
	hasProps := p.alignment != "" || p.indentLeft != 0 || p.hanging != 0 ||
		len(p.tabStops) > 0 || p.spacingBefore != 0 || p.spacingAfter != 0
	if !hasProps {
		return
	}
	buf.WriteString("<w:pPr>")
	if len(p.tabStops) > 0 {
		buf.WriteString("<w:tabs>")
		for _, pos := range p.tabStops {
			fmt.Fprintf(buf, `<w:tab w:val="left" w:pos="%d"/>`, pos)
		}
		buf.WriteString("</w:tabs>")
	}
	if p.spacingBefore != 0 || p.spacingAfter != 0 {
		fmt.Fprintf(buf, `<w:spacing w:before="%d" w:after="%d"/>`, p.spacingBefore, p.spacingAfter)
	}
	if p.indentLeft != 0 || p.hanging != 0 {
		fmt.Fprintf(buf, `<w:ind w:left="%d" w:hanging="%d"/>`, p.indentLeft, p.hanging)
	}
	if p.alignment != "" {
		fmt.Fprintf(buf, `<w:jc w:val="%s"/>`, p.alignment)
	}
	buf.WriteString("</w:pPr>")
}

func (r run) writeXML(buf *bytes.Buffer) {
	buf.WriteString("<w:r>")
	buf.WriteString("<w:rPr>")
	fmt.Fprintf(buf, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:eastAsia="%s"/>`,
		escape(r.style.AsciiFont), escape(r.style.AsciiFont), escape(r.style.EastAsiaFont))
	if r.style.Bold {
		buf.WriteString("<w:b/>")
	}
	buf.WriteString(`<w:color w:val="000000"/>`)
	if r.style.SizeHalfPoints > 0 {
		fmt.Fprintf(buf, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.style.SizeHalfPoints, r.style.SizeHalfPoints)
	}
	buf.WriteString("</w:rPr>")
	if r.isTab {
		buf.WriteString("<w:tab/>")
	} else {
		buf.WriteString(`<w:t xml:space="preserve">`)
		buf.WriteString(escape(r.text))
		buf.WriteString("</w:t>")
	}
	buf.WriteString("</w:r>")
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
