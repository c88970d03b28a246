// internal/models/financial.go
package models

import (
	"fmt"

	apperrors "finlight-engine/internal/common/errors"
)

type IncomeType string

const (
	IncomeFixed    IncomeType = "fixed"
	IncomeDaily    IncomeType = "daily"
	IncomeSeasonal IncomeType = "seasonal"
)

// Valid reports whether t is one of the known income types.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeFixed, IncomeDaily, IncomeSeasonal:
		return true
	}
	return false
}

// SavingsGoal is a user's savings target.
type SavingsGoal struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	Category      string  `json:"category,omitempty"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate,omitempty"`
	IsCompleted   bool    `json:"isCompleted"`
}

// Progress returns completion as a fraction in [0, ∞). Goals without a
// positive target count as zero progress.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount
}

// UserFinancialContext is the financial picture a request is evaluated
// against. MonthlyIncome and MonthlyExpenses are nil when the user has not
// provided them.
type UserFinancialContext struct {
	UserID              string        `json:"userId,omitempty"`
	FullName            string        `json:"fullName,omitempty"`
	MonthlyIncome       *float64      `json:"monthlyIncome,omitempty"`
	MonthlyExpenses     *float64      `json:"monthlyExpenses,omitempty"`
	ExistingLiabilities float64       `json:"existingLiabilities,omitempty"`
	FamilySize          int           `json:"familySize,omitempty"`
	Dependents          int           `json:"dependents,omitempty"`
	IncomeType          IncomeType    `json:"incomeType,omitempty"`
	Location            string        `json:"location,omitempty"`
	State               string        `json:"state,omitempty"`
	CulturalBackground  string        `json:"culturalBackground,omitempty"`
	PreferredLanguage   string        `json:"preferredLanguage,omitempty"`
	Goals               []SavingsGoal `json:"goals,omitempty"`
}

// HasProfile reports whether both income and expenses are known.
func (c *UserFinancialContext) HasProfile() bool {
	return c != nil && c.MonthlyIncome != nil && c.MonthlyExpenses != nil
}

// Income returns the monthly income or 0 when unknown.
func (c *UserFinancialContext) Income() float64 {
	if c == nil || c.MonthlyIncome == nil {
		return 0
	}
	return *c.MonthlyIncome
}

// Expenses returns the monthly expenses or 0 when unknown.
func (c *UserFinancialContext) Expenses() float64 {
	if c == nil || c.MonthlyExpenses == nil {
		return 0
	}
	return *c.MonthlyExpenses
}

// CurrentSavings is income minus expenses and may be negative.
func (c *UserFinancialContext) CurrentSavings() float64 {
	return c.Income() - c.Expenses()
}

// ActiveGoals returns the goals that are not completed.
func (c *UserFinancialContext) ActiveGoals() []SavingsGoal {
	if c == nil {
		return nil
	}
	var active []SavingsGoal
	for _, g := range c.Goals {
		if !g.IsCompleted {
			active = append(active, g)
		}
	}
	return active
}

// Validate rejects out-of-domain values. Missing fields are not errors.
func (c *UserFinancialContext) Validate() error {
	if c == nil {
		return nil
	}
	if c.MonthlyIncome != nil && *c.MonthlyIncome < 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("monthlyIncome must be >= 0, got %v", *c.MonthlyIncome))
	}
	if c.MonthlyExpenses != nil && *c.MonthlyExpenses < 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("monthlyExpenses must be >= 0, got %v", *c.MonthlyExpenses))
	}
	if c.ExistingLiabilities < 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("existingLiabilities must be >= 0, got %v", c.ExistingLiabilities))
	}
	if c.FamilySize < 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("familySize must be >= 0, got %d", c.FamilySize))
	}
	if c.IncomeType != "" && !c.IncomeType.Valid() {
		return apperrors.NewInvalidInputError(fmt.Sprintf("incomeType must be fixed, daily or seasonal, got %q", c.IncomeType))
	}
	return nil
}

// Float returns a pointer to v, for building contexts in code.
func Float(v float64) *float64 {
	return &v
}
