// Package simulation runs the "what-if" scenarios: budget forecasts, loan
// and EMI analysis, goal tracking, shocks and option comparisons. Every
// handler takes the same Envelope and returns a typed Result.
package simulation

import (
	apperrors "finlight-engine/internal/common/errors"
)

type Type string

const (
	MonthlyBudgetForecast  Type = "monthly_budget_forecast"
	LoanAffordability      Type = "loan_affordability"
	SavingsGoalTracker     Type = "savings_goal_tracker"
	ExpenseReductionImpact Type = "expense_reduction_impact"
	LifeEventPlanning      Type = "life_event_planning"
	LoanImpactEstimation   Type = "loan_impact_estimation"
	IncomeDropAlert        Type = "income_drop_alert"
	FestiveSeasonSpending  Type = "festive_season_spending"
	RetirementReadiness    Type = "retirement_readiness"
	WeatherEventImpact     Type = "weather_event_impact"
	EMIVsSavingDilemma     Type = "emi_vs_saving_dilemma"
	InvestmentPlanning     Type = "investment_planning"
	BestOptionSelector     Type = "best_option_selector"
)

// Types lists every registered simulation in a stable order.
var Types = []Type{
	MonthlyBudgetForecast,
	LoanAffordability,
	SavingsGoalTracker,
	ExpenseReductionImpact,
	LifeEventPlanning,
	LoanImpactEstimation,
	IncomeDropAlert,
	FestiveSeasonSpending,
	RetirementReadiness,
	WeatherEventImpact,
	EMIVsSavingDilemma,
	InvestmentPlanning,
	BestOptionSelector,
}

// ParseType returns UNKNOWN_SIMULATION_TYPE for anything not in Types.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", apperrors.NewUnknownSimulationTypeError(s)
}
