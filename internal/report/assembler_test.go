package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultpro/interviewdoc/internal/common"
)

func testMeta(mode Mode) Metadata {
	return Metadata{
		Mode:    mode,
		Company: "Medtronic",
		Product: "Staplers",
		Topic:   "Q1 Review",
		Date:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

// docXML unzips a built document and returns word/document.xml as a string.
func docXML(t *testing.T, doc []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatal("word/document.xml not found in package")
	return ""
}

func TestBuildEndToEndTrade(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"trends":        []any{"VBP reduced ASP by 15%"},
			"company_sales": []any{"Revenue grew 20% YoY"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)

	// Title and metadata line.
	assert.Contains(t, xml, "Medtronic - Staplers Interview Record")
	assert.Contains(t, xml, "Date: 2025-03-09 | Type: Trade")

	// No summary heading when the summary is absent.
	assert.NotContains(t, xml, "Executive Summary")

	// Taxonomy order: company_sales before trends regardless of input order.
	sales := strings.Index(xml, "Company Sales Performance")
	trends := strings.Index(xml, "Industry Trends")
	require.GreaterOrEqual(t, sales, 0)
	require.GreaterOrEqual(t, trends, 0)
	assert.Less(t, sales, trends)
	assert.Contains(t, xml, "Revenue grew 20% YoY")
	assert.Contains(t, xml, "VBP reduced ASP by 15%")

	// Absent keys produce no headings.
	for _, absent := range []string{"Competition Landscape", "Sales &amp; Marketing Strategy", "Channel &amp; Access Strategy", "Organization Structure"} {
		assert.NotContains(t, xml, absent)
	}

	// No other-findings block.
	assert.NotContains(t, xml, "Other Findings")
}

func TestBuildTaxonomyOrderClinical(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"expectations":   []any{"better ergonomics"},
			"clinical_value": []any{"reduces op time"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeClinical))
	require.NoError(t, err)

	xml := docXML(t, doc)
	value := strings.Index(xml, "Clinical Value")
	expect := strings.Index(xml, "Expectations")
	require.GreaterOrEqual(t, value, 0)
	require.GreaterOrEqual(t, expect, 0)
	assert.Less(t, value, expect)
}

func TestBuildUnknownKeyDropped(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"company_sales": []any{"Revenue grew"},
			"mystery_key":   []any{"should never render"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.NotContains(t, xml, "should never render")
	assert.NotContains(t, xml, "mystery_key")
}

func TestBuildSummaryOmission(t *testing.T) {
	a := NewAssembler(nil, nil)

	content := &StructuredContent{Language: "en", ExecutiveSummary: "", StructuredAnalysis: map[string]any{}}
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)
	assert.NotContains(t, docXML(t, doc), "Executive Summary")

	content.ExecutiveSummary = "**X**"
	doc, err = a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)
	xml := docXML(t, doc)
	assert.Contains(t, xml, "Executive Summary")
	assert.Contains(t, xml, ">X</w:t>")
}

func TestBuildLanguagePropagation(t *testing.T) {
	content := &StructuredContent{
		Language:         "zh",
		ExecutiveSummary: "摘要内容",
		StructuredAnalysis: map[string]any{
			"trends": []any{"集采降价15%"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "访谈记录")
	assert.Contains(t, xml, "执行摘要")
	assert.Contains(t, xml, "行业总体趋势")
	assert.Contains(t, xml, "商业/厂商")
	assert.NotContains(t, xml, "Industry Trends")

	// Unknown language falls back to English labels.
	content.Language = "unknown-value"
	doc, err = a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)
	xml = docXML(t, doc)
	assert.Contains(t, xml, "Industry Trends")
	assert.Contains(t, xml, "Interview Record")
}

func TestBuildMalformedContent(t *testing.T) {
	a := NewAssembler(nil, nil)

	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"trends": map[string]any{"nested": "object"},
		},
	}
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedContent)
	assert.Nil(t, doc)

	content = &StructuredContent{
		Language:           "en",
		StructuredAnalysis: map[string]any{},
		OtherDimensions:    Topics{{Title: "T", Value: 42}},
	}
	doc, err = a.Build(content, testMeta(ModeTrade))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedContent)
	assert.Nil(t, doc)
}

func TestBuildMarkdownLeakSanitized(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"trends": []any{"**Revenue** grew ##fast"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "Revenue grew fast")
	assert.NotContains(t, xml, "**")
	assert.NotContains(t, xml, "##")
}

func TestBuildBulletHangingIndent(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"trends": []any{"a long point that wraps"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, `<w:ind w:left="360" w:hanging="360"/>`)
	assert.Contains(t, xml, `<w:tab w:val="left" w:pos="360"/>`)
	assert.Contains(t, xml, "•")
	assert.Contains(t, xml, "<w:tab/>")
}

func TestBuildScalarSectionRendersParagraph(t *testing.T) {
	content := &StructuredContent{
		Language: "en",
		StructuredAnalysis: map[string]any{
			"competition": "One competitor dominates.",
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "One competitor dominates.")
	// Scalar sections are plain paragraphs, not bullets.
	assert.NotContains(t, xml, `<w:ind w:left="360" w:hanging="360"/>`)
}

func TestBuildOtherDimensionsOrderAndHeading(t *testing.T) {
	content := &StructuredContent{
		Language:           "en",
		StructuredAnalysis: map[string]any{},
		OtherDimensions: Topics{
			{Title: "Zebra Topic", Value: []any{"z"}},
			{Title: "Alpha Topic", Value: []any{"a"}},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "Other Findings")
	zebra := strings.Index(xml, "Zebra Topic")
	alpha := strings.Index(xml, "Alpha Topic")
	require.GreaterOrEqual(t, zebra, 0)
	require.GreaterOrEqual(t, alpha, 0)
	assert.Less(t, zebra, alpha, "free-form topics keep extraction order")
}

func TestBuildMeetingLabels(t *testing.T) {
	content := &StructuredContent{
		Language:         "zh",
		ExecutiveSummary: "会议摘要",
		StructuredAnalysis: map[string]any{
			"action_items": []any{"跟进预算"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeMeeting))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "Q1 Review - 会议纪要")
	assert.Contains(t, xml, "摘要概览")
	assert.Contains(t, xml, "行动事项")
	assert.Contains(t, xml, "会议/讨论")
}

func TestBuildQALog(t *testing.T) {
	content := &StructuredContent{
		Language:           "en",
		StructuredAnalysis: map[string]any{},
		QALog: []QAEntry{
			{Question: "How is growth?", Answer: "20% YoY", ContextNote: "said twice"},
			{Question: "Competitors?", Answer: "Two majors"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	assert.Contains(t, xml, "Interview Log (Q&amp;A)")
	assert.Contains(t, xml, "Q: How is growth?")
	assert.Contains(t, xml, "A: 20% YoY")
	assert.Contains(t, xml, "[Note: said twice]")
}

func TestBuildEveryRunCarriesDualFontsAndBlack(t *testing.T) {
	content := &StructuredContent{
		Language:         "en",
		ExecutiveSummary: "Summary with 中文 mixed in",
		StructuredAnalysis: map[string]any{
			"trends": []any{"point"},
		},
	}
	a := NewAssembler(nil, nil)
	doc, err := a.Build(content, testMeta(ModeTrade))
	require.NoError(t, err)

	xml := docXML(t, doc)
	runs := strings.Count(xml, "<w:r>")
	assert.Equal(t, runs, strings.Count(xml, "w:eastAsia="))
	assert.Equal(t, runs, strings.Count(xml, `<w:color w:val="000000"/>`))
	// Emphasis is bold/size only: no italics anywhere.
	assert.NotContains(t, xml, "<w:i/>")
}
