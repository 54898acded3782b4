package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildContentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map for the structured-content contract. Section values are either
// a single string or a list of strings; anything else is a shape violation.
// structured_analysis keys are deliberately NOT constrained here — unknown
// keys are dropped at render time, not rejected.
func BuildContentJSONSchema() map[string]any {
	points := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"language":          map[string]any{"type": "string"},
			"executive_summary": map[string]any{"type": "string"},
			"structured_analysis": map[string]any{
				"type":                 "object",
				"additionalProperties": points,
			},
			"other_dimensions": map[string]any{
				"type":                 "object",
				"additionalProperties": points,
			},
			"qa_log": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":     map[string]any{"type": "string"},
						"answer":       map[string]any{"type": "string"},
						"context_note": map[string]any{"type": "string"},
					},
					"required": []string{"question", "answer"},
				},
			},
		},
		"required": []string{"structured_analysis"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
