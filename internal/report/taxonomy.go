package report

import (
	"fmt"
	"strings"

	"github.com/consultpro/interviewdoc/internal/common"
)

// Mode selects the fixed section vocabulary and the localized labels of a
// report. It is a closed set; ParseMode rejects everything else.
type Mode string

const (
	ModeTrade    Mode = "trade"
	ModeClinical Mode = "clinical"
	ModeMeeting  Mode = "meeting"
)

// ParseMode normalizes and validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTrade:
		return ModeTrade, nil
	case ModeClinical:
		return ModeClinical, nil
	case ModeMeeting:
		return ModeMeeting, nil
	default:
		return "", fmt.Errorf("mode %q: %w", s, common.ErrUnknownMode)
	}
}

// IsMeeting reports whether the mode renders meeting-minutes labels instead
// of interview-record labels.
func (m Mode) IsMeeting() bool { return m == ModeMeeting }

// sectionDef is one taxonomy entry: canonical key plus both localized titles.
type sectionDef struct {
	Key string
	EN  string
	ZH  string
}

// The render order of structured sections is ALWAYS this fixed order, never
// the order keys appear in the extracted mapping.
var taxonomies = map[Mode][]sectionDef{
	ModeTrade: {
		{Key: "company_sales", EN: "Company Sales Performance", ZH: "公司销售表现"},
		{Key: "sales_marketing", EN: "Sales & Marketing Strategy", ZH: "销售与营销策略"},
		{Key: "channel_strategy", EN: "Channel & Access Strategy", ZH: "渠道与准入策略"},
		{Key: "org_structure", EN: "Organization Structure", ZH: "组织架构"},
		{Key: "competition", EN: "Competition Landscape", ZH: "竞争格局"},
		{Key: "trends", EN: "Industry Trends", ZH: "行业总体趋势"},
	},
	ModeClinical: {
		{Key: "clinical_value", EN: "Clinical Value & Prospects", ZH: "临床价值与前景"},
		{Key: "adoption", EN: "Hospital Adoption", ZH: "医院落地与使用情况"},
		{Key: "competition", EN: "Competition (Clinical View)", ZH: "竞品竞争情况"},
		{Key: "pain_points", EN: "Clinical Pain Points", ZH: "临床痛点与未满足需求"},
		{Key: "expectations", EN: "Expectations & Outlook", ZH: "专家预期与展望"},
	},
	ModeMeeting: {
		{Key: "meeting_context", EN: "Meeting Context", ZH: "会议背景"},
		{Key: "key_discussion", EN: "Key Discussion", ZH: "重点讨论"},
		{Key: "conclusions", EN: "Conclusions", ZH: "会议结论"},
		{Key: "action_items", EN: "Action Items", ZH: "行动事项"},
	},
}

// ResolvedSection pairs a canonical section key with its title in the
// requested language.
type ResolvedSection struct {
	Key   string
	Title string
}

// Resolve returns the full fixed section list for a mode, in canonical
// order, titled in the requested language. Pure; static data only.
func Resolve(mode Mode, lang Lang) ([]ResolvedSection, error) {
	defs, ok := taxonomies[mode]
	if !ok {
		return nil, fmt.Errorf("mode %q: %w", mode, common.ErrUnknownMode)
	}
	out := make([]ResolvedSection, 0, len(defs))
	for _, d := range defs {
		title := d.EN
		if lang == LangZH {
			title = d.ZH
		}
		out = append(out, ResolvedSection{Key: d.Key, Title: title})
	}
	return out, nil
}

// SectionKeys returns the canonical key set of a mode, in taxonomy order.
// The extraction prompt pins the model to exactly these keys.
func SectionKeys(mode Mode) ([]string, error) {
	defs, ok := taxonomies[mode]
	if !ok {
		return nil, fmt.Errorf("mode %q: %w", mode, common.ErrUnknownMode)
	}
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, d.Key)
	}
	return keys, nil
}

// localized is an en/zh string pair.
type localized struct {
	EN string
	ZH string
}

func (l localized) in(lang Lang) string {
	if lang == LangZH {
		return l.ZH
	}
	return l.EN
}

// Fixed document labels per mode.
type modeLabels struct {
	TitleSuffix    localized // appended to the title line
	TypeLabel      localized // interview/meeting type in the metadata line
	TypeField      localized // "Type" field name in the metadata line
	DateField      localized // "Date" field name in the metadata line
	SummaryHeading localized
	OtherHeading   localized
	QAHeading      localized
	FilePrefix     localized // output filename prefix
	DefaultTopic   localized // fallback when the identity field is blank
}

var labels = map[Mode]modeLabels{
	ModeTrade: {
		TitleSuffix:    localized{EN: "Interview Record", ZH: "访谈记录"},
		TypeLabel:      localized{EN: "Trade", ZH: "商业/厂商"},
		TypeField:      localized{EN: "Type", ZH: "访谈类型"},
		DateField:      localized{EN: "Date", ZH: "访谈时间"},
		SummaryHeading: localized{EN: "Executive Summary", ZH: "执行摘要"},
		OtherHeading:   localized{EN: "Other Findings", ZH: "其他发现"},
		QAHeading:      localized{EN: "Interview Log (Q&A)", ZH: "访谈详细实录 (Q&A)"},
		FilePrefix:     localized{EN: "InterviewRecord", ZH: "访谈记录"},
		DefaultTopic:   localized{EN: "Interview", ZH: "未命名访谈"},
	},
	ModeClinical: {
		TitleSuffix:    localized{EN: "Interview Record", ZH: "访谈记录"},
		TypeLabel:      localized{EN: "Clinical/Expert", ZH: "临床/专家"},
		TypeField:      localized{EN: "Type", ZH: "访谈类型"},
		DateField:      localized{EN: "Date", ZH: "访谈时间"},
		SummaryHeading: localized{EN: "Executive Summary", ZH: "执行摘要"},
		OtherHeading:   localized{EN: "Other Findings", ZH: "其他发现"},
		QAHeading:      localized{EN: "Interview Log (Q&A)", ZH: "访谈详细实录 (Q&A)"},
		FilePrefix:     localized{EN: "InterviewRecord", ZH: "访谈记录"},
		DefaultTopic:   localized{EN: "Interview", ZH: "未命名访谈"},
	},
	ModeMeeting: {
		TitleSuffix:    localized{EN: "Meeting Minutes", ZH: "会议纪要"},
		TypeLabel:      localized{EN: "Meeting/Discussion", ZH: "会议/讨论"},
		TypeField:      localized{EN: "Type", ZH: "会议类型"},
		DateField:      localized{EN: "Date", ZH: "会议时间"},
		SummaryHeading: localized{EN: "Overview", ZH: "摘要概览"},
		OtherHeading:   localized{EN: "Additional Notes", ZH: "其他补充"},
		QAHeading:      localized{EN: "Discussion Log (Q&A)", ZH: "讨论详细实录 (Q&A)"},
		FilePrefix:     localized{EN: "MeetingMinutes", ZH: "会议纪要"},
		DefaultTopic:   localized{EN: "Meeting", ZH: "未命名会议"},
	},
}

func labelsFor(mode Mode) modeLabels {
	return labels[mode]
}
