package generate

import "github.com/abhisek/courseforge/internal/llm"

// blockDefinition is the JSON Schema for one tagged block object. It is
// deliberately a single flat object rather than a oneOf so every provider
// backend can express it natively; per-kind shape is enforced when the
// block is decoded.
var blockDefinition = map[string]any{
	"type":        "object",
	"description": "One lesson content block, discriminated by type.",
	"properties": map[string]any{
		"type": map[string]any{
			"type":        "string",
			"enum":        []any{"theory", "code", "note", "single_choice", "multiple_choice"},
			"description": "Block kind.",
		},
		"title": map[string]any{
			"type":        "string",
			"description": "Title for theory and code blocks.",
		},
		"content": map[string]any{
			"type":        "string",
			"description": "Body text for theory and note blocks.",
		},
		"code": map[string]any{
			"type":        "string",
			"description": "Source code for code blocks.",
		},
		"language": map[string]any{
			"type":        "string",
			"description": "Programming language of a code block.",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Explanation shown after a quiz answer or under code.",
		},
		"note_type": map[string]any{
			"type": "string",
			"enum": []any{"info", "warning", "tip", "important"},
		},
		"question": map[string]any{
			"type":        "string",
			"description": "Question text for choice blocks.",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Answer options for choice blocks, at least two.",
		},
		"correct_answer": map[string]any{
			"type":        "integer",
			"description": "Zero-based index of the correct option (single choice).",
		},
		"correct_answers": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "integer"},
			"description": "Zero-based indices of correct options (multiple choice).",
		},
	},
	"required": []any{"type"},
}

// lessonContentSchema constrains a generated lesson to an object with an
// ordered blocks array.
var lessonContentSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "Ordered content blocks for one lesson.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"blocks": map[string]any{
				"type":  "array",
				"items": blockDefinition,
			},
		},
		"required": []any{"blocks"},
	},
}

// singleBlockSchema constrains single-block regeneration.
var singleBlockSchema = &llm.Schema{
	Name:        "lesson-block",
	Description: "One regenerated lesson content block.",
	Definition:  blockDefinition,
}
