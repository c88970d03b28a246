// internal/workers/insights/calculate-financial-score/models.go
package calculatefinancialscore

import (
	"finlight-engine/internal/models"
	"finlight-engine/internal/scoring"
)

type Input struct {
	UserID      string                       `json:"userId,omitempty"`
	UserContext *models.UserFinancialContext `json:"userContext,omitempty"`
	CurrentDate string                       `json:"currentDate,omitempty"`
}

// Output is the score breakdown plus whether it was computed from a
// complete profile.
type Output struct {
	UserID          string `json:"userId,omitempty"`
	ProfileComplete bool   `json:"profileComplete"`
	scoring.Score
}
