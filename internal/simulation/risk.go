package simulation

import (
	"fmt"
	"math"

	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"
)

const (
	indefinite    = "Indefinite"
	cannotRecover = "Cannot recover with current savings"
)

type IncomeDropScenario struct {
	IncomeReduction  float64 `json:"income_reduction"`
	NewMonthlyIncome float64 `json:"new_monthly_income"`
	CurrentExpenses  float64 `json:"current_expenses"`
	DurationMonths   int     `json:"duration_months"`
}

type IncomeDropImpact struct {
	NewMonthlySavings  float64 `json:"new_monthly_savings"`
	MonthlyDeficit     float64 `json:"monthly_deficit"`
	TotalDeficitPeriod float64 `json:"total_deficit_period"`
	SurvivalMonths     Measure `json:"survival_months"`
}

type EmergencyPlan struct {
	ImmediateActions   []string `json:"immediate_actions"`
	ExpenseCutsNeeded  float64  `json:"expense_cuts_needed"`
	EmergencyFundUsage float64  `json:"emergency_fund_usage"`
}

type IncomeDrop struct {
	Summary
	Scenario       IncomeDropScenario `json:"scenario"`
	ImpactAnalysis IncomeDropImpact   `json:"impact_analysis"`
	EmergencyPlan  EmergencyPlan      `json:"emergency_plan"`
}

// incomeDropAlert reports survival months as "Indefinite" when the reduced
// income still covers expenses.
func incomeDropAlert(in Inputs, env Envelope) (*IncomeDrop, error) {
	reduction := in.Float("income_reduction", 5000)
	duration := in.Int("duration_months", 3)

	newIncome := env.MonthlyIncome - reduction
	newSavings := newIncome - env.MonthlyExpenses
	deficit := 0.0
	if newSavings < 0 {
		deficit = -newSavings
	}

	survival := math.Inf(1)
	if deficit > 0 {
		survival = 0
		if env.CurrentSavings > 0 {
			survival = env.CurrentSavings / deficit
		}
	}

	actions := []string{}
	if deficit > 0 {
		actions = append(actions, "Immediate expense reduction required")
	}
	if survival < 6 {
		actions = append(actions, "Tap into emergency funds")
	}
	if survival < 3 {
		actions = append(actions, "Seek alternative income sources urgently")
	}

	survivalMonths := Sentinel(indefinite)
	if !math.IsInf(survival, 1) {
		survivalMonths = Amount(finance.Round1(survival))
	}
	first := "Monitor expenses closely"
	if deficit > 0 {
		first = "Cut non-essential expenses immediately"
	}

	return &IncomeDrop{
		Summary: Summary{
			Title: "Income Drop Impact Analysis",
			Recommendations: []string{
				first,
				"Explore freelance or part-time opportunities",
				"Negotiate payment deferrals with creditors if needed",
				"Consider temporary lifestyle adjustments",
				"Build larger emergency fund for future",
			},
		},
		Scenario: IncomeDropScenario{
			IncomeReduction:  reduction,
			NewMonthlyIncome: newIncome,
			CurrentExpenses:  env.MonthlyExpenses,
			DurationMonths:   duration,
		},
		ImpactAnalysis: IncomeDropImpact{
			NewMonthlySavings:  finance.Round(newSavings),
			MonthlyDeficit:     finance.Round(deficit),
			TotalDeficitPeriod: finance.Round(deficit * float64(duration)),
			SurvivalMonths:     survivalMonths,
		},
		EmergencyPlan: EmergencyPlan{
			ImmediateActions:   actions,
			ExpenseCutsNeeded:  finance.Round(deficit),
			EmergencyFundUsage: finance.Round(math.Min(env.CurrentSavings, deficit*float64(duration))),
		},
	}, nil
}

// Extra costs an event causes on top of lost income; unknown events use rain.
var weatherExtraCosts = map[string]float64{
	"rain":    2000,
	"drought": 3000,
	"flood":   5000,
	"storm":   4000,
}

type WeatherEventDetails struct {
	Type                   string            `json:"type"`
	DurationDays           int               `json:"duration_days"`
	IncomeImpactPercentage float64           `json:"income_impact_percentage"`
	IncomeType             models.IncomeType `json:"income_type"`
}

type WeatherImpact struct {
	IncomeLoss         float64 `json:"income_loss"`
	AdditionalExpenses float64 `json:"additional_expenses"`
	TotalImpact        float64 `json:"total_impact"`
	CurrentSavings     float64 `json:"current_savings"`
}

type Recovery struct {
	CanCoverWithSavings   bool    `json:"can_cover_with_savings"`
	MonthsToRecover       Measure `json:"months_to_recover"`
	EmergencyFundAdequacy string  `json:"emergency_fund_adequacy"`
}

type WeatherEvent struct {
	Summary
	EventDetails         WeatherEventDetails `json:"event_details"`
	FinancialImpact      WeatherImpact       `json:"financial_impact"`
	RecoveryAnalysis     Recovery            `json:"recovery_analysis"`
	MitigationStrategies []string            `json:"mitigation_strategies"`
	ImmediateActions     []string            `json:"immediate_actions"`
}

// incomeLoss scales the hit by how exposed each income type is: daily
// earners lose the affected days, seasonal earners a month, salaried
// earners a tenth of a month.
func incomeLoss(env Envelope, days int, share float64) float64 {
	switch env.IncomeType {
	case models.IncomeDaily:
		return env.MonthlyIncome / 30 * float64(days) * share
	case models.IncomeSeasonal:
		return env.MonthlyIncome * share
	}
	return env.MonthlyIncome * 0.1 * share
}

func weatherEventImpact(in Inputs, env Envelope) (*WeatherEvent, error) {
	event := in.String("event_type", "rain")
	days := in.Int("duration_days", 14)
	impactPct := in.Float("income_impact", 80)

	loss := incomeLoss(env, days, impactPct/100)
	extra, ok := weatherExtraCosts[event]
	if !ok {
		extra = weatherExtraCosts["rain"]
	}
	total := loss + extra

	months := Sentinel(cannotRecover)
	if env.CurrentSavings > 0 {
		months = Amount(finance.Round1(total / env.CurrentSavings))
	}
	adequacy := "Insufficient"
	if env.CurrentSavings >= total*2 {
		adequacy = "Adequate"
	}

	return &WeatherEvent{
		Summary: Summary{
			Title: fmt.Sprintf("Weather Impact Analysis - %s", displayName(event)),
			Recommendations: []string{
				"Build weather-specific emergency fund",
				"Diversify income sources to reduce dependency",
				"Apply for government relief schemes",
			},
		},
		EventDetails: WeatherEventDetails{
			Type:                   event,
			DurationDays:           days,
			IncomeImpactPercentage: impactPct,
			IncomeType:             env.IncomeType,
		},
		FinancialImpact: WeatherImpact{
			IncomeLoss:         finance.Round(loss),
			AdditionalExpenses: extra,
			TotalImpact:        finance.Round(total),
			CurrentSavings:     env.CurrentSavings,
		},
		RecoveryAnalysis: Recovery{
			CanCoverWithSavings:   env.CurrentSavings >= total,
			MonthsToRecover:       months,
			EmergencyFundAdequacy: adequacy,
		},
		MitigationStrategies: []string{
			"Build weather-specific emergency fund",
			"Diversify income sources to reduce dependency",
			"Consider weather insurance if available",
			"Join community support groups",
			"Maintain 3-6 months of expenses as emergency fund",
		},
		ImmediateActions: []string{
			"Apply for government relief schemes",
			"Contact local NGOs for support",
			"Negotiate with creditors for payment deferrals",
			"Explore temporary alternative income sources",
		},
	}, nil
}
