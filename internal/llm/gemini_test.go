package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.0-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"position": map[string]any{"type": "integer"},
			"kind":     map[string]any{"type": "string", "enum": []any{"theory", "code", "note"}},
			"answers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"title", "position"},
	})

	assert.Equal(t, genai.TypeObject, schema.Type)
	require.Len(t, schema.Properties, 4)
	assert.Equal(t, genai.TypeString, schema.Properties["title"].Type)
	assert.Equal(t, genai.TypeInteger, schema.Properties["position"].Type)
	assert.Equal(t, []string{"theory", "code", "note"}, schema.Properties["kind"].Enum)
	assert.Equal(t, genai.TypeArray, schema.Properties["answers"].Type)
	assert.Equal(t, genai.TypeInteger, schema.Properties["answers"].Items.Type)
	assert.ElementsMatch(t, []string{"title", "position"}, schema.Required)
}
