package extract

import (
	"fmt"
	"strings"

	"github.com/consultpro/interviewdoc/internal/report"
)

// Per-key detail hints for the framework description. Keys must stay in sync
// with the report taxonomy; BuildPrompt iterates the taxonomy's key list so a
// missing hint is caught at prompt-build time.
var keyHints = map[string]string{
	// trade
	"company_sales":    "Revenue, growth rates, market size and scale, TAM/SAM when mentioned.",
	"sales_marketing":  "Pricing, sales team structure, promotion methods.",
	"channel_strategy": "Distributors, hospital listing, regional coverage, market access.",
	"org_structure":    "Team setup, headcount, reporting lines, key roles.",
	"trends":           "Policy impact (VBP/DRG), macro trends, overall industry direction.",
	// clinical
	"clinical_value": "Clinical value, technology prospects, future potential.",
	"adoption":       "Usage rate, department acceptance, billing codes, rollout status.",
	"pain_points":    "Unmet needs, side effects, limitations of current technology.",
	"expectations":   "Desired improvements, outlook, what experts want next.",
	// meeting
	"meeting_context": "Background, purpose, participants, agenda.",
	"key_discussion":  "Main topics debated, positions taken, open issues.",
	"conclusions":     "Decisions reached, agreements, summary judgements.",
	"action_items":    "Follow-ups with owners and deadlines where stated.",
	// shared between trade and clinical
	"competition": "Competitor names, market shares, strengths and weaknesses, in-practice comparisons.",
}

// BuildPrompt returns the full extraction instruction for a mode: role,
// strict rules, the mode's exact-key framework, and the output JSON contract.
func BuildPrompt(mode report.Mode) (string, error) {
	keys, err := report.SectionKeys(mode)
	if err != nil {
		return "", err
	}

	var fw strings.Builder
	for i, k := range keys {
		hint, ok := keyHints[k]
		if !ok {
			return "", fmt.Errorf("no framework hint for section key %q", k)
		}
		fmt.Fprintf(&fw, "%d. \"%s\": %s\n", i+1, k, hint)
	}

	role := "You are a senior strategy consultant. Extract a comprehensive interview record from the audio."
	if mode.IsMeeting() {
		role = "You are a senior chief of staff. Extract comprehensive meeting minutes from the audio."
	}

	return role + `

### STRICT RULES:
1. Source of truth: ONLY use information from the audio. NO external knowledge.
2. Completeness: capture ALL numbers, names, and specific details.
3. Structure: in "structured_analysis", use ONLY the exact keys listed in the framework below. Omit keys with no content.
4. New dimensions: put anything significant outside the framework into "other_dimensions" under a short topic title.
5. Plain text only: never use markdown emphasis markers (**, __) or heading markers (##, ###) inside any value.
6. Language consistency: write every value in the language spoken in the audio and set "language" to "zh" or "en" accordingly.

### FRAMEWORK (exact keys):
` + fw.String() + `
### OUTPUT JSON:
{
  "language": "zh or en",
  "executive_summary": "around 300 words",
  "structured_analysis": {
    "framework_key": ["Detail 1", "Detail 2"]
  },
  "other_dimensions": {
    "Topic Name": ["Detail 1"]
  },
  "qa_log": [
    {"question": "...", "answer": "...", "context_note": "optional context"}
  ]
}
Return ONLY the JSON object.`, nil
}
