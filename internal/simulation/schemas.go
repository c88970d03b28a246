package simulation

import (
	"strings"

	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/validation"
)

func object(props map[string]validation.Property) validation.JSONSchema {
	return validation.JSONSchema{Type: "object", Properties: props, AdditionalProperties: true}
}

var (
	money    = validation.Property{Type: "number", Minimum: validation.Min(0)}
	rate     = validation.Property{Type: "number", Minimum: validation.Min(0)}
	tenure   = validation.Property{Type: "integer", Minimum: validation.Min(1)}
	count    = validation.Property{Type: "integer", Minimum: validation.Min(0)}
	label    = validation.Property{Type: "string"}
	age      = validation.Property{Type: "integer", Minimum: validation.Min(0), Maximum: validation.Max(120)}
	optionIn = validation.Property{
		Type: "object",
		Properties: map[string]validation.Property{
			"name":         {Type: "string", MinLength: intPtr(1)},
			"cost":         money,
			"monthly_cost": money,
		},
	}
)

func intPtr(v int) *int { return &v }

// inputSchemas describes the accepted inputs of each simulation. Unknown
// keys are allowed and ignored.
var inputSchemas = map[Type]validation.JSONSchema{
	MonthlyBudgetForecast: object(map[string]validation.Property{}),
	LoanAffordability: object(map[string]validation.Property{
		"loan_amount":   money,
		"loan_tenure":   tenure,
		"interest_rate": rate,
	}),
	SavingsGoalTracker: object(map[string]validation.Property{
		"target_amount": money,
		"target_date":   {Type: "string", Pattern: `^\d{4}-\d{2}-\d{2}$`},
		"current_saved": money,
	}),
	ExpenseReductionImpact: object(map[string]validation.Property{
		"reduction_amount": money,
		"category":         label,
	}),
	LifeEventPlanning: object(map[string]validation.Property{
		"event_type":      label,
		"timeline_months": tenure,
	}),
	LoanImpactEstimation: object(map[string]validation.Property{
		"loan_amount": money,
		"loan_tenure": tenure,
		"loan_type":   label,
	}),
	IncomeDropAlert: object(map[string]validation.Property{
		"income_reduction": money,
		"duration_months":  count,
	}),
	FestiveSeasonSpending: object(map[string]validation.Property{
		"festival":           label,
		"planned_spending":   money,
		"months_to_festival": {Type: "integer"},
	}),
	RetirementReadiness: object(map[string]validation.Property{
		"current_age":                age,
		"retirement_age":             age,
		"desired_monthly_income":     money,
		"current_retirement_savings": money,
	}),
	WeatherEventImpact: object(map[string]validation.Property{
		"event_type":    label,
		"duration_days": count,
		"income_impact": {Type: "number", Minimum: validation.Min(0), Maximum: validation.Max(100)},
	}),
	EMIVsSavingDilemma: object(map[string]validation.Property{
		"item_cost":     money,
		"item_type":     label,
		"emi_tenure":    tenure,
		"interest_rate": rate,
	}),
	InvestmentPlanning: object(map[string]validation.Property{
		"monthly_investment": money,
		"duration_years":     count,
		"risk_tolerance":     label,
		"goal":               label,
	}),
	BestOptionSelector: object(map[string]validation.Property{
		"option1":          optionIn,
		"option2":          optionIn,
		"comparison_years": tenure,
	}),
}

// InputSchema returns the JSON schema for t's inputs.
func InputSchema(t Type) validation.JSONSchema {
	return inputSchemas[t]
}

// ValidateInputs checks inputs against t's schema and reports every
// violation in one INVALID_INPUT error.
func ValidateInputs(t Type, inputs Inputs) error {
	schema, ok := inputSchemas[t]
	if !ok {
		return apperrors.NewUnknownSimulationTypeError(string(t))
	}

	res, err := validation.Validate(schema, map[string]interface{}(inputs.compact()))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !res.Valid {
		return apperrors.NewInvalidInputError(strings.Join(res.GetErrorMessages(), "; ")).
			WithMetadata("simulationType", string(t))
	}
	return nil
}
