package report

import "strings"

// markerReplacer removes emphasis/heading markers the extraction step leaks
// into content despite being instructed not to. Longer markers first so a
// "###" is not left as a stray "#".
var markerReplacer = strings.NewReplacer(
	"###", "",
	"##", "",
	"**", "",
	"__", "",
)

// SanitizeText strips markdown bold/italic markers and heading markers from
// extracted text and trims surrounding whitespace. Removal loops until a
// fixed point: deleting one marker can make two halves of another adjacent
// (e.g. "*__*" leaves "**"), and the result must be idempotent.
func SanitizeText(s string) string {
	for {
		next := markerReplacer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
