package recommend

import "venturemeter/internal/llm"

// Report is the structured recommendation produced after an assessment.
type Report struct {
	Summary         string                   `json:"summary"`
	OverallReadiness string                  `json:"overallReadiness"`
	Categories      []CategoryRecommendation `json:"categories"`
	NextSteps       []string                 `json:"nextSteps"`
}

// CategoryRecommendation is the advice for one assessment category.
type CategoryRecommendation struct {
	Category string `json:"category"`
	Strength string `json:"strength"`
	Risk     string `json:"risk"`
	Advice   string `json:"advice"`
}

// reportSchema constrains the model output to the Report shape.
func reportSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "assessment-report",
		Description: "Actionable recommendations derived from a startup self-assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"description": "Two to three sentences on where the startup stands overall",
				},
				"overallReadiness": map[string]any{
					"type": "string",
					"enum": []any{"early", "developing", "promising", "strong"},
				},
				"categories": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"category": map[string]any{"type": "string"},
							"strength": map[string]any{"type": "string"},
							"risk":     map[string]any{"type": "string"},
							"advice":   map[string]any{"type": "string"},
						},
						"required":             []any{"category", "strength", "risk", "advice"},
						"additionalProperties": false,
					},
				},
				"nextSteps": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": float64(1),
					"maxItems": float64(5),
				},
			},
			"required":             []any{"summary", "overallReadiness", "categories", "nextSteps"},
			"additionalProperties": false,
		},
	}
}
