package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockSchema() *Schema {
	return &Schema{
		Name:        "theory-block",
		Description: "A theory block",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"position": map[string]any{"type": "integer", "minimum": 0},
				"kind":     map[string]any{"type": "string", "enum": []any{"theory", "code", "note"}},
			},
			"required": []any{"title", "position"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"conforming", `{"title":"Slices","position":0,"kind":"theory"}`, false},
		{"optional field omitted", `{"title":"Slices","position":1}`, false},
		{"missing required", `{"title":"Slices"}`, true},
		{"wrong type", `{"title":"Slices","position":"first"}`, true},
		{"enum violation", `{"title":"Slices","position":0,"kind":"video"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(blockSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, json.RawMessage(tt.raw), invalid.Content)
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)))
}

func TestValidateResponseNested(t *testing.T) {
	schema := &Schema{
		Name: "lesson-plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lesson": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"answers": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"lesson", "answers"},
		},
	}

	require.NoError(t, validateResponse(schema, json.RawMessage(`{"lesson":{"name":"Slices"},"answers":[0,2,3]}`)))
	require.Error(t, validateResponse(schema, json.RawMessage(`{"lesson":{"name":"Slices"},"answers":["not","ints"]}`)))
}
