package report

import (
	"strings"
	"time"
)

// Filename builds the output document name:
// {localized prefix}_{company-or-topic}_{product-if-any}_{YYYYMMDD}.docx.
// Empty identity fields are skipped rather than leaving double underscores.
// Unsafe characters in company/product are the caller's responsibility.
func Filename(meta Metadata, lang Lang) string {
	lb := labelsFor(meta.Mode)
	parts := []string{lb.FilePrefix.in(lang)}

	if meta.Mode.IsMeeting() {
		topic := strings.TrimSpace(meta.Topic)
		if topic == "" {
			topic = lb.DefaultTopic.in(lang)
		}
		parts = append(parts, topic)
	} else {
		if c := strings.TrimSpace(meta.Company); c != "" {
			parts = append(parts, c)
		}
		if p := strings.TrimSpace(meta.Product); p != "" {
			parts = append(parts, p)
		}
	}

	date := meta.Date
	if date.IsZero() {
		date = time.Now()
	}
	parts = append(parts, date.Format("20060102"))
	return strings.Join(parts, "_") + ".docx"
}
