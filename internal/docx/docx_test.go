package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPart(t *testing.T, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	return ""
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEmptyDocumentPackage(t *testing.T) {
	doc := New()
	pkg, err := doc.Bytes()
	require.NoError(t, err)

	assert.Contains(t, readPart(t, pkg, "[Content_Types].xml"), "/word/document.xml")
	assert.Contains(t, readPart(t, pkg, "_rels/.rels"), "word/document.xml")

	body := readPart(t, pkg, "word/document.xml")
	assert.Contains(t, body, "<w:body>")
	assert.Contains(t, body, "<w:sectPr>")
	assert.NotContains(t, body, "headerReference")
	assert.Empty(t, readPart(t, pkg, "word/header1.xml"))
}

func TestParagraphRunsAndEscaping(t *testing.T) {
	doc := New()
	style := RunStyle{AsciiFont: "Calibri", EastAsiaFont: "宋体", SizeHalfPoints: 22, Bold: true}
	doc.AddParagraph().Align("center").AddText("a < b & c", style)

	pkg, err := doc.Bytes()
	require.NoError(t, err)
	body := readPart(t, pkg, "word/document.xml")

	assert.Contains(t, body, `<w:jc w:val="center"/>`)
	assert.Contains(t, body, "a &lt; b &amp; c")
	assert.Contains(t, body, `<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="宋体"/>`)
	assert.Contains(t, body, "<w:b/>")
	assert.Contains(t, body, `<w:sz w:val="22"/>`)
}

func TestHangingIndentLayout(t *testing.T) {
	doc := New()
	style := RunStyle{AsciiFont: "Calibri", EastAsiaFont: "宋体", SizeHalfPoints: 21}
	doc.AddParagraph().
		HangingIndent(QuarterInchTwips).
		AddText("•", style).
		AddTab(style).
		AddText("wrapped point", style)

	pkg, err := doc.Bytes()
	require.NoError(t, err)
	body := readPart(t, pkg, "word/document.xml")

	// Tab stops come before indent settings, glyph-tab-text in content.
	tabs := strings.Index(body, `<w:tab w:val="left" w:pos="360"/>`)
	ind := strings.Index(body, `<w:ind w:left="360" w:hanging="360"/>`)
	require.GreaterOrEqual(t, tabs, 0)
	require.GreaterOrEqual(t, ind, 0)
	assert.Less(t, tabs, ind)
	assert.Contains(t, body, "<w:tab/>")
}

func TestHeaderImageScalesWidth(t *testing.T) {
	doc := New()
	// 2:1 aspect ratio; at cy=457200 the width must be 914400.
	require.NoError(t, doc.SetHeaderImage(pngBytes(t, 100, 50), 457200))

	pkg, err := doc.Bytes()
	require.NoError(t, err)

	hdr := readPart(t, pkg, "word/header1.xml")
	assert.Contains(t, hdr, `<wp:extent cx="914400" cy="457200"/>`)
	assert.Contains(t, hdr, `<w:jc w:val="right"/>`)
	assert.Contains(t, hdr, `r:embed="rIdImg"`)

	body := readPart(t, pkg, "word/document.xml")
	assert.Contains(t, body, `<w:headerReference w:type="default" r:id="rIdHdr"/>`)

	rels := readPart(t, pkg, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Target="header1.xml"`)

	hdrRels := readPart(t, pkg, "word/_rels/header1.xml.rels")
	assert.Contains(t, hdrRels, `Target="media/image1.png"`)
	assert.NotEmpty(t, readPart(t, pkg, "word/media/image1.png"))

	types := readPart(t, pkg, "[Content_Types].xml")
	assert.Contains(t, types, `Extension="png"`)
	assert.Contains(t, types, "/word/header1.xml")
}

func TestSetHeaderImageRejectsGarbage(t *testing.T) {
	doc := New()
	err := doc.SetHeaderImage([]byte("not an image"), 457200)
	assert.Error(t, err)
}
