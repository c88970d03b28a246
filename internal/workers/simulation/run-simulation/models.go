// internal/workers/simulation/run-simulation/models.go
package runsimulation

import (
	"finlight-engine/internal/models"
	"finlight-engine/internal/simulation"
)

type Input struct {
	SimulationType string                       `json:"simulationType"`
	Inputs         map[string]interface{}       `json:"inputs,omitempty"`
	UserProfile    *models.UserFinancialContext `json:"userProfile,omitempty"`
	UserID         string                       `json:"userId,omitempty"`
	CurrentDate    string                       `json:"currentDate,omitempty"`
}

type Output struct {
	Success        bool              `json:"success"`
	SimulationType string            `json:"simulationType"`
	Result         simulation.Result `json:"result"`
}
