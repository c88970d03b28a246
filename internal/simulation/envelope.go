package simulation

import (
	"strings"
	"time"

	"finlight-engine/internal/models"
)

// Defaults applied when the caller's context leaves a field out.
const (
	DefaultMonthlyIncome   = 50000
	DefaultMonthlyExpenses = 35000
	DefaultLocation        = "India"
)

// Envelope is the parameter set every handler receives, whether it uses
// all of it or not.
type Envelope struct {
	MonthlyIncome       float64
	MonthlyExpenses     float64
	CurrentSavings      float64
	Location            string
	FamilySize          int
	IncomeType          models.IncomeType
	ExistingLiabilities float64
	User                *models.UserFinancialContext
	Now                 time.Time
}

// NewEnvelope fills the envelope from ctx, which may be nil. Only absent
// income or expenses are defaulted; an explicit zero is kept.
func NewEnvelope(ctx *models.UserFinancialContext, now time.Time) Envelope {
	env := Envelope{
		MonthlyIncome:   DefaultMonthlyIncome,
		MonthlyExpenses: DefaultMonthlyExpenses,
		Location:        DefaultLocation,
		FamilySize:      1,
		IncomeType:      models.IncomeFixed,
		User:            ctx,
		Now:             now,
	}

	if ctx != nil {
		if ctx.MonthlyIncome != nil {
			env.MonthlyIncome = *ctx.MonthlyIncome
		}
		if ctx.MonthlyExpenses != nil {
			env.MonthlyExpenses = *ctx.MonthlyExpenses
		}
		switch {
		case strings.TrimSpace(ctx.Location) != "":
			env.Location = ctx.Location
		case strings.TrimSpace(ctx.State) != "":
			env.Location = ctx.State
		}
		if ctx.FamilySize > 0 {
			env.FamilySize = ctx.FamilySize
		}
		if ctx.IncomeType != "" {
			env.IncomeType = ctx.IncomeType
		}
		env.ExistingLiabilities = ctx.ExistingLiabilities
	}

	env.CurrentSavings = env.MonthlyIncome - env.MonthlyExpenses
	return env
}
