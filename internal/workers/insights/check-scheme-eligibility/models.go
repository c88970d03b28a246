// internal/workers/insights/check-scheme-eligibility/models.go
package checkschemeeligibility

import (
	"finlight-engine/internal/eligibility"
	"finlight-engine/internal/models"
)

type Input struct {
	UserID      string                       `json:"userId,omitempty"`
	UserContext *models.UserFinancialContext `json:"userContext,omitempty"`
	SchemeName  string                       `json:"schemeName"`
	// Age is optional; eligibility.DefaultAge is assumed when absent.
	Age *int `json:"age,omitempty"`
}

type Output struct {
	UserID string `json:"userId,omitempty"`
	eligibility.Result
}
