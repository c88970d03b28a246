// internal/workers/conversation/generate-advice/models.go
package generateadvice

import "finlight-engine/internal/models"

type Input struct {
	UserID      string                       `json:"userId,omitempty"`
	Query       string                       `json:"query"`
	Language    string                       `json:"language,omitempty"`
	UserContext *models.UserFinancialContext `json:"userContext,omitempty"`
	CurrentDate string                       `json:"currentDate,omitempty"`
}

type Output struct {
	Text           string   `json:"text"`
	Suggestions    []string `json:"suggestions"`
	ActionRequired bool     `json:"actionRequired"`
	Intent         string   `json:"intent"`
	Confidence     float64  `json:"confidence"`
	Source         string   `json:"source"`
}
