// Package docx writes minimal WordprocessingML (.docx) packages.
//
// It covers exactly what the report layout needs: paragraphs of styled runs
// with dual Latin/CJK font faces, hanging-indent bullet paragraphs with tab
// stops, and an optional page header carrying one inline image at a fixed
// physical height. Parts are emitted by hand so the layout invariants map
// one-to-one onto w:ind, w:tabs, w:rFonts and the drawingml inline block.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// Layout units.
const (
	EMUPerInch   = 914400
	TwipsPerInch = 1440

	// QuarterInchTwips is the bullet body indent / hanging unit.
	QuarterInchTwips = 360
)

// Document is an in-memory docx package under construction.
type Document struct {
	paras  []*Paragraph
	header *headerImage
}

type headerImage struct {
	data []byte
	ext  string // "png" or "jpeg"
	cx   int64  // EMU
	cy   int64  // EMU
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// AddParagraph appends an empty paragraph and returns it for chaining.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.paras = append(d.paras, p)
	return p
}

// SetHeaderImage places an image right-aligned in the page header at the
// given physical height. Width scales proportionally from the decoded pixel
// aspect ratio, so source resolution does not matter. Only PNG and JPEG are
// accepted.
func (d *Document) SetHeaderImage(data []byte, heightEMU int64) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode header image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return fmt.Errorf("unsupported header image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("header image has empty dimensions")
	}
	d.header = &headerImage{
		data: data,
		ext:  format,
		cx:   heightEMU * int64(cfg.Width) / int64(cfg.Height),
		cy:   heightEMU,
	}
	return nil
}

// Bytes assembles the docx zip container.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/document.xml", d.documentXML()},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
	}
	if d.header != nil {
		parts = append(parts,
			struct {
				name string
				data []byte
			}{"word/header1.xml", d.headerXML()},
			struct {
				name string
				data []byte
			}{"word/_rels/header1.xml.rels", d.headerRelsXML()},
			struct {
				name string
				data []byte
			}{"word/media/image1." + d.header.ext, d.header.data},
		)
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}
