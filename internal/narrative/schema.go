package narrative

import "github.com/abhisek/levelcheck/internal/llm"

// Schema is the structured output requested from the provider.
var Schema = &llm.Schema{
	Name:        "report-narrative",
	Description: "A short note to a parent or tutor describing a placement quiz result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "3-5 sentences describing where the learner stands in math and English",
			},
			"highlights": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "1-4 specific strengths shown in the quiz (5-12 words each)",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "2-4 concrete home activities for the priority topics",
			},
		},
		"required":             []any{"summary", "highlights", "next_steps"},
		"additionalProperties": false,
	},
}
