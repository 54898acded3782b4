package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/report"
)

func TestBuildPromptContainsExactKeys(t *testing.T) {
	for _, mode := range []report.Mode{report.ModeTrade, report.ModeClinical, report.ModeMeeting} {
		prompt, err := BuildPrompt(mode)
		require.NoError(t, err)

		keys, err := report.SectionKeys(mode)
		require.NoError(t, err)
		for _, k := range keys {
			assert.Contains(t, prompt, `"`+k+`"`, "mode %s key %s", mode, k)
		}
		assert.Contains(t, prompt, "other_dimensions")
		assert.Contains(t, prompt, "qa_log")
		assert.Contains(t, prompt, `"language"`)
	}
}

func TestBuildPromptUnknownMode(t *testing.T) {
	_, err := BuildPrompt(report.Mode("webinar"))
	assert.ErrorIs(t, err, common.ErrUnknownMode)
}

func TestBuildContentJSONSchemaValidates(t *testing.T) {
	schema := BuildContentJSONSchema()

	ok := `{"language":"en","structured_analysis":{"trends":["a"],"competition":"b"}}`
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(ok)))

	bad := `{"structured_analysis":{"trends":{"nested":"object"}}}`
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(bad)))
}
