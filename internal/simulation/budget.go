package simulation

import (
	"fmt"

	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"
)

type MonthFlow struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savings_rate"`
}

type ExpenseSplit struct {
	Essential     float64 `json:"essential"`
	Discretionary float64 `json:"discretionary"`
}

type BudgetForecast struct {
	Summary
	CurrentMonth        MonthFlow    `json:"current_month"`
	NextMonthPrediction MonthFlow    `json:"next_month_prediction"`
	ExpenseBreakdown    ExpenseSplit `json:"expense_breakdown"`
	Insights            []string     `json:"insights"`
}

// incomeFactor is the expected share of this month's income earned next
// month for each income type.
func incomeFactor(t models.IncomeType) float64 {
	switch t {
	case models.IncomeSeasonal:
		return 0.8
	case models.IncomeDaily:
		return 0.9
	}
	return 1.0
}

func monthlyBudgetForecast(_ Inputs, env Envelope) (*BudgetForecast, error) {
	predictedIncome := env.MonthlyIncome * incomeFactor(env.IncomeType)
	predictedExpenses := env.MonthlyExpenses * 1.05
	predictedSavings := predictedIncome - predictedExpenses

	insights := []string{}
	if predictedSavings < env.CurrentSavings {
		insights = append(insights, "⚠️ Your savings might decrease next month due to seasonal factors")
	}
	if predictedExpenses > env.MonthlyExpenses {
		insights = append(insights, "📈 Expenses are expected to rise by 5% due to inflation")
	}
	if env.FamilySize > 3 {
		insights = append(insights, "👨‍👩‍👧‍👦 Consider family-specific budgeting for larger household")
	}

	return &BudgetForecast{
		Summary: Summary{
			Title: "Monthly Budget Forecast",
			Recommendations: []string{
				"Track daily expenses to improve accuracy",
				"Set up automatic savings transfers",
				"Review and optimize discretionary spending",
			},
		},
		CurrentMonth: MonthFlow{
			Income:      env.MonthlyIncome,
			Expenses:    env.MonthlyExpenses,
			Savings:     env.CurrentSavings,
			SavingsRate: finance.Round1(finance.PercentOf(env.CurrentSavings, env.MonthlyIncome)),
		},
		NextMonthPrediction: MonthFlow{
			Income:      finance.Round(predictedIncome),
			Expenses:    finance.Round(predictedExpenses),
			Savings:     finance.Round(predictedSavings),
			SavingsRate: finance.Round1(finance.PercentOf(predictedSavings, predictedIncome)),
		},
		ExpenseBreakdown: ExpenseSplit{
			Essential:     finance.Round(env.MonthlyExpenses * 0.6),
			Discretionary: finance.Round(env.MonthlyExpenses * 0.4),
		},
		Insights: insights,
	}, nil
}

type ReductionDetails struct {
	Category                 string  `json:"category"`
	MonthlyReduction         float64 `json:"monthly_reduction"`
	NewMonthlyExpenses       float64 `json:"new_monthly_expenses"`
	AdditionalMonthlySavings float64 `json:"additional_monthly_savings"`
}

type ReductionImpact struct {
	MonthlySavingsIncrease float64 `json:"monthly_savings_increase"`
	AnnualSavingsIncrease  float64 `json:"annual_savings_increase"`
	NewSavingsRate         float64 `json:"new_savings_rate"`
}

type LongTermPotential struct {
	FiveYearValue float64 `json:"5_year_investment_value"`
	TenYearValue  float64 `json:"10_year_investment_value"`
}

type ExpenseReduction struct {
	Summary
	ReductionDetails  ReductionDetails  `json:"reduction_details"`
	ImpactAnalysis    ReductionImpact   `json:"impact_analysis"`
	LongTermPotential LongTermPotential `json:"long_term_potential"`
}

func expenseReductionImpact(in Inputs, env Envelope) (*ExpenseReduction, error) {
	reduction := in.Float("reduction_amount", 1000)
	category := in.String("category", "dining_out")

	newExpenses := env.MonthlyExpenses - reduction
	newSavings := env.MonthlyIncome - newExpenses
	additional := newSavings - env.CurrentSavings
	annual := additional * 12

	return &ExpenseReduction{
		Summary: Summary{
			Title: "Expense Reduction Impact",
			Recommendations: []string{
				fmt.Sprintf("Reducing %s expenses can significantly boost savings", category),
				"Invest the additional savings for compound growth",
				"Track expenses to identify more reduction opportunities",
				"Consider this as a permanent lifestyle change",
			},
		},
		ReductionDetails: ReductionDetails{
			Category:                 category,
			MonthlyReduction:         reduction,
			NewMonthlyExpenses:       finance.Round(newExpenses),
			AdditionalMonthlySavings: finance.Round(additional),
		},
		ImpactAnalysis: ReductionImpact{
			MonthlySavingsIncrease: finance.Round(additional),
			AnnualSavingsIncrease:  finance.Round(annual),
			NewSavingsRate:         finance.Round1(finance.PercentOf(newSavings, env.MonthlyIncome)),
		},
		LongTermPotential: LongTermPotential{
			FiveYearValue: finance.Round(annual * 5 * 1.12),
			TenYearValue:  finance.Round(annual * 10 * 1.15),
		},
	}, nil
}

// Typical spend relative to the plan, by festival.
var festivalMultipliers = map[string]float64{
	"Diwali":           1.5,
	"Durga Puja":       1.3,
	"Ganesh Chaturthi": 1.2,
	"Eid":              1.1,
	"Christmas":        1.2,
	"Holi":             0.8,
	"Navratri":         1.0,
}

type FestivalDetails struct {
	Name                   string  `json:"name"`
	PlannedSpending        float64 `json:"planned_spending"`
	EstimatedTotalSpending float64 `json:"estimated_total_spending"`
	MonthsToFestival       int     `json:"months_to_festival"`
}

type FestivalPlanning struct {
	MonthlySavingsNeeded        float64 `json:"monthly_savings_needed"`
	CanAffordWithCurrentSavings bool    `json:"can_afford_with_current_savings"`
	RemainingSavingsAfter       float64 `json:"remaining_savings_after"`
	ImpactOnRegularGoals        string  `json:"impact_on_regular_goals"`
}

type FestivalSpendSplit struct {
	GiftsAndShopping float64 `json:"gifts_and_shopping"`
	FoodAndSweets    float64 `json:"food_and_sweets"`
	Decorations      float64 `json:"decorations"`
	Miscellaneous    float64 `json:"miscellaneous"`
}

type FestiveSeason struct {
	Summary
	FestivalDetails   FestivalDetails    `json:"festival_details"`
	FinancialPlanning FestivalPlanning   `json:"financial_planning"`
	SpendingBreakdown FestivalSpendSplit `json:"spending_breakdown"`
}

func festiveSeasonSpending(in Inputs, env Envelope) (*FestiveSeason, error) {
	name := in.String("festival", "Diwali")
	planned := in.Float("planned_spending", 15000)
	months := in.Int("months_to_festival", 3)

	multiplier, ok := festivalMultipliers[name]
	if !ok {
		multiplier = 1.0
	}
	total := planned * multiplier

	needed := total
	if months > 0 {
		needed = total / float64(months)
	}
	remaining := env.CurrentSavings - needed

	impact := "Significant"
	if remaining > 10000 {
		impact = "Minimal"
	}

	return &FestiveSeason{
		Summary: Summary{
			Title: "Festive Season Planning - " + name,
			Recommendations: []string{
				fmt.Sprintf("Start saving %s monthly for %s", finance.Rupees(needed), name),
				"Create a separate festival savings account",
				"Make a detailed shopping list to avoid overspending",
				"Consider homemade gifts and decorations to save money",
				"Look for early bird discounts and offers",
			},
		},
		FestivalDetails: FestivalDetails{
			Name:                   name,
			PlannedSpending:        planned,
			EstimatedTotalSpending: finance.Round(total),
			MonthsToFestival:       months,
		},
		FinancialPlanning: FestivalPlanning{
			MonthlySavingsNeeded:        finance.Round(needed),
			CanAffordWithCurrentSavings: env.CurrentSavings >= needed,
			RemainingSavingsAfter:       finance.Round(remaining),
			ImpactOnRegularGoals:        impact,
		},
		SpendingBreakdown: FestivalSpendSplit{
			GiftsAndShopping: finance.Round(total * 0.4),
			FoodAndSweets:    finance.Round(total * 0.3),
			Decorations:      finance.Round(total * 0.2),
			Miscellaneous:    finance.Round(total * 0.1),
		},
	}, nil
}
