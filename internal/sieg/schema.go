package sieg

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildResponseSchema returns the JSON-Schema the BaixarXmls response must
// satisfy: a JSON array of non-empty base64 strings, one per document.
func buildResponseSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":      "string",
			"minLength": 1,
			"pattern":   `^[A-Za-z0-9+/]+={0,2}$`,
		},
	}
}

// validateResponse validates "data" against the response schema before any
// blob is decoded, so a malformed API answer is rejected as a whole instead
// of surfacing as per-item decode noise.
func validateResponse(data []byte) error {
	b, err := json.Marshal(buildResponseSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
