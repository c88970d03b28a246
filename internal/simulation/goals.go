package simulation

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dateLayout = "2006-01-02"

	increaseSavingsFirst = "Increase savings first"
)

// displayName turns an identifier like "home_purchase" into "Home Purchase".
// Casers hold state, so each call gets its own.
func displayName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// savingsBuffer pads required savings for irregular income.
func savingsBuffer(t models.IncomeType) float64 {
	switch t {
	case models.IncomeSeasonal:
		return 1.2
	case models.IncomeDaily:
		return 1.1
	}
	return 1.0
}

type GoalDetails struct {
	TargetAmount    float64 `json:"target_amount"`
	CurrentSaved    float64 `json:"current_saved"`
	RemainingAmount float64 `json:"remaining_amount"`
	TargetDate      string  `json:"target_date"`
	MonthsRemaining int     `json:"months_remaining"`
}

type GoalProgress struct {
	PercentageComplete     float64 `json:"percentage_complete"`
	RequiredMonthlySavings float64 `json:"required_monthly_savings"`
	CurrentMonthlySavings  float64 `json:"current_monthly_savings"`
	Feasible               bool    `json:"feasible"`
}

type GoalTimeline struct {
	OnTrack            bool    `json:"on_track"`
	SuggestedTimeline  string  `json:"suggested_timeline"`
	AccelerationNeeded float64 `json:"acceleration_needed"`
}

type GoalTracker struct {
	Summary
	GoalDetails      GoalDetails  `json:"goal_details"`
	Progress         GoalProgress `json:"progress"`
	TimelineAnalysis GoalTimeline `json:"timeline_analysis"`
}

// savingsGoalTracker judges feasibility on the unbuffered requirement; the
// income-type buffer only affects the reported monthly figure.
func savingsGoalTracker(in Inputs, env Envelope) (*GoalTracker, error) {
	target := in.Float("target_amount", 50000)
	targetDate := in.String("target_date", "2024-12-31")
	saved := in.Float("current_saved", 0)

	loc := env.Now.Location()
	due, err := time.ParseInLocation(dateLayout, targetDate, loc)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("target_date must be YYYY-MM-DD, got %q", targetDate))
	}

	days := int(math.Floor(due.Sub(env.Now).Hours() / 24))
	months := days / 30
	if months < 1 {
		months = 1
	}

	remaining := target - saved
	required := remaining / float64(months)
	feasible := required <= env.CurrentSavings
	required *= savingsBuffer(env.IncomeType)

	timeline := increaseSavingsFirst
	if env.CurrentSavings > 0 {
		timeline = fmt.Sprintf("%d months", int(math.Ceil(math.Max(remaining, 0)/env.CurrentSavings)))
	}
	acceleration := 0.0
	first := "You're on track!"
	if !feasible {
		acceleration = finance.Round(required - env.CurrentSavings)
		first = "Increase monthly savings"
	}

	return &GoalTracker{
		Summary: Summary{
			Title: "Savings Goal Tracker",
			Recommendations: []string{
				first,
				"Consider SIP investments for better returns",
				"Set up automatic transfers to savings account",
				"Review and reduce unnecessary expenses",
			},
		},
		GoalDetails: GoalDetails{
			TargetAmount:    target,
			CurrentSaved:    saved,
			RemainingAmount: remaining,
			TargetDate:      targetDate,
			MonthsRemaining: months,
		},
		Progress: GoalProgress{
			PercentageComplete:     finance.Round1(finance.PercentOf(saved, target)),
			RequiredMonthlySavings: finance.Round(required),
			CurrentMonthlySavings:  finance.Round(env.CurrentSavings),
			Feasible:               feasible,
		},
		TimelineAnalysis: GoalTimeline{
			OnTrack:            feasible,
			SuggestedTimeline:  timeline,
			AccelerationNeeded: acceleration,
		},
	}, nil
}

type eventCost struct {
	immediate       float64
	monthlyIncrease float64
	oneTime         float64
}

// Cost estimates in rupees; unknown events are costed as a baby.
var lifeEventCosts = map[string]eventCost{
	"baby":          {immediate: 50000, monthlyIncrease: 8000, oneTime: 25000},
	"marriage":      {immediate: 300000, monthlyIncrease: 5000, oneTime: 100000},
	"home_purchase": {immediate: 500000, monthlyIncrease: 15000, oneTime: 50000},
	"education":     {immediate: 100000, monthlyIncrease: 3000, oneTime: 20000},
}

type EventDetails struct {
	Type            string  `json:"type"`
	TimelineMonths  int     `json:"timeline_months"`
	ImmediateCosts  float64 `json:"immediate_costs"`
	OneTimeCosts    float64 `json:"one_time_costs"`
	MonthlyIncrease float64 `json:"monthly_increase"`
}

type EventImpact struct {
	TotalImmediateCost          float64 `json:"total_immediate_cost"`
	MonthlySavingsNeeded        float64 `json:"monthly_savings_needed"`
	CanAffordWithCurrentSavings bool    `json:"can_afford_with_current_savings"`
	NewMonthlyExpenses          float64 `json:"new_monthly_expenses"`
	NewSavingsCapacity          float64 `json:"new_savings_capacity"`
}

type EventPreparation struct {
	StartSavingNow        float64 `json:"start_saving_now"`
	EmergencyFundNeeded   float64 `json:"emergency_fund_needed"`
	InsuranceReviewNeeded bool    `json:"insurance_review_needed"`
}

type LifeEvent struct {
	Summary
	EventDetails    EventDetails     `json:"event_details"`
	FinancialImpact EventImpact      `json:"financial_impact"`
	PreparationPlan EventPreparation `json:"preparation_plan"`
}

func lifeEventPlanning(in Inputs, env Envelope) (*LifeEvent, error) {
	event := in.String("event_type", "baby")
	timeline := in.Int("timeline_months", 12)
	if timeline < 1 {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("timeline_months must be at least 1, got %d", timeline))
	}

	costs, ok := lifeEventCosts[event]
	if !ok {
		costs = lifeEventCosts["baby"]
	}

	total := costs.immediate + costs.oneTime
	monthly := total / float64(timeline)
	newExpenses := env.MonthlyExpenses + costs.monthlyIncrease

	return &LifeEvent{
		Summary: Summary{
			Title: "Life Event Planning - " + displayName(event),
			Recommendations: []string{
				fmt.Sprintf("Start saving %s monthly for %s", finance.Rupees(monthly), event),
				"Review and increase health/life insurance coverage",
				"Create separate savings account for this goal",
				"Consider reducing discretionary expenses temporarily",
			},
		},
		EventDetails: EventDetails{
			Type:            event,
			TimelineMonths:  timeline,
			ImmediateCosts:  costs.immediate,
			OneTimeCosts:    costs.oneTime,
			MonthlyIncrease: costs.monthlyIncrease,
		},
		FinancialImpact: EventImpact{
			TotalImmediateCost:          total,
			MonthlySavingsNeeded:        finance.Round(monthly),
			CanAffordWithCurrentSavings: env.CurrentSavings*float64(timeline) >= total,
			NewMonthlyExpenses:          finance.Round(newExpenses),
			NewSavingsCapacity:          finance.Round(env.MonthlyIncome - newExpenses),
		},
		PreparationPlan: EventPreparation{
			StartSavingNow:        finance.Round(monthly),
			EmergencyFundNeeded:   finance.Round(newExpenses * 6),
			InsuranceReviewNeeded: true,
		},
	}, nil
}

// Expected return on retirement SIPs, per month (12% a year).
const retirementMonthlyReturn = 0.01

type RetirementPlan struct {
	CurrentAge           int     `json:"current_age"`
	RetirementAge        int     `json:"retirement_age"`
	YearsToRetirement    int     `json:"years_to_retirement"`
	DesiredMonthlyIncome float64 `json:"desired_monthly_income"`
}

type CorpusCalculation struct {
	RetirementCorpusNeeded   float64 `json:"retirement_corpus_needed"`
	CurrentRetirementSavings float64 `json:"current_retirement_savings"`
	GapAmount                float64 `json:"gap_amount"`
	ReadinessPercentage      float64 `json:"readiness_percentage"`
}

type RetirementSIP struct {
	MonthlySIPNeeded             float64 `json:"monthly_sip_needed"`
	AffordableWithCurrentSavings bool    `json:"affordable_with_current_savings"`
	PercentageOfIncome           float64 `json:"percentage_of_income"`
}

type Retirement struct {
	Summary
	RetirementPlan    RetirementPlan    `json:"retirement_plan"`
	CorpusCalculation CorpusCalculation `json:"corpus_calculation"`
	InvestmentPlan    RetirementSIP     `json:"investment_plan"`
}

func retirementReadiness(in Inputs, env Envelope) (*Retirement, error) {
	currentAge := in.Int("current_age", 30)
	retirementAge := in.Int("retirement_age", 60)
	desired := in.Float("desired_monthly_income", env.MonthlyExpenses)
	saved := in.Float("current_retirement_savings", 0)

	years := retirementAge - currentAge
	corpus := finance.RetirementCorpus(desired)
	sip := finance.SinkingFundInstallment(corpus, retirementMonthlyReturn, years*12)

	return &Retirement{
		Summary: Summary{
			Title: "Retirement Readiness Analysis",
			Recommendations: []string{
				fmt.Sprintf("Start SIP of %s monthly for retirement", finance.Rupees(sip)),
				"Invest in equity mutual funds for long-term growth",
				"Consider EPF, PPF, and NPS for tax benefits",
				"Review and increase SIP amount annually",
				"Don't rely solely on traditional savings accounts",
			},
		},
		RetirementPlan: RetirementPlan{
			CurrentAge:           currentAge,
			RetirementAge:        retirementAge,
			YearsToRetirement:    years,
			DesiredMonthlyIncome: desired,
		},
		CorpusCalculation: CorpusCalculation{
			RetirementCorpusNeeded:   finance.Round(corpus),
			CurrentRetirementSavings: saved,
			GapAmount:                finance.Round(corpus - saved),
			ReadinessPercentage:      finance.Round1(finance.PercentOf(saved, corpus)),
		},
		InvestmentPlan: RetirementSIP{
			MonthlySIPNeeded:             finance.Round(sip),
			AffordableWithCurrentSavings: sip <= env.CurrentSavings,
			PercentageOfIncome:           finance.Round1(finance.PercentOf(sip, env.MonthlyIncome)),
		},
	}, nil
}

type Allocation struct {
	Allocation float64 `json:"allocation"`
	Return     float64 `json:"return"`
}

type holding struct {
	name string
	Allocation
}

// Model portfolios by risk tolerance; unknown tolerances use moderate.
var portfolios = map[string][]holding{
	"conservative": {
		{"fd", Allocation{40, 6.5}},
		{"ppf", Allocation{30, 7.1}},
		{"debt_funds", Allocation{30, 7.5}},
	},
	"moderate": {
		{"equity_funds", Allocation{50, 12}},
		{"debt_funds", Allocation{30, 7.5}},
		{"fd", Allocation{20, 6.5}},
	},
	"aggressive": {
		{"equity_funds", Allocation{70, 15}},
		{"small_cap_funds", Allocation{20, 18}},
		{"debt_funds", Allocation{10, 7.5}},
	},
}

type InvestmentDetails struct {
	MonthlyAmount float64 `json:"monthly_amount"`
	DurationYears int     `json:"duration_years"`
	RiskTolerance string  `json:"risk_tolerance"`
	Goal          string  `json:"goal"`
}

type Projection struct {
	TotalInvestment    float64 `json:"total_investment"`
	ExpectedReturnRate float64 `json:"expected_return_rate"`
	FutureValue        float64 `json:"future_value"`
	TotalReturns       float64 `json:"total_returns"`
	ReturnPercentage   float64 `json:"return_percentage"`
}

type SIPAnalysis struct {
	MonthlySIP         float64 `json:"monthly_sip"`
	Affordable         bool    `json:"affordable"`
	PercentageOfIncome float64 `json:"percentage_of_income"`
}

type InvestmentPlan struct {
	Summary
	InvestmentDetails   InvestmentDetails     `json:"investment_details"`
	PortfolioAllocation map[string]Allocation `json:"portfolio_allocation"`
	Projection          Projection            `json:"projection"`
	SIPAnalysis         SIPAnalysis           `json:"sip_analysis"`
}

func investmentPlanning(in Inputs, env Envelope) (*InvestmentPlan, error) {
	amount := in.Float("monthly_investment", 2000)
	years := in.Int("duration_years", 5)
	risk := in.String("risk_tolerance", "moderate")
	goal := in.String("goal", "wealth_creation")

	holdings, ok := portfolios[risk]
	if !ok {
		holdings = portfolios["moderate"]
	}

	allocation := make(map[string]Allocation, len(holdings))
	weighted := 0.0
	for _, h := range holdings {
		allocation[h.name] = h.Allocation
		weighted += h.Allocation.Allocation * h.Return
	}
	weighted /= 100

	months := years * 12
	invested := amount * float64(months)
	fv, err := finance.FutureValueOfPeriodicInvestment(amount, weighted, months)
	if err != nil {
		return nil, err
	}
	returns := fv - invested

	return &InvestmentPlan{
		Summary: Summary{
			Title: "Investment Planning Strategy",
			Recommendations: []string{
				fmt.Sprintf("Start SIP of %s based on your %s risk profile", finance.Rupees(amount), risk),
				"Diversify across asset classes as shown in allocation",
				"Review and rebalance portfolio annually",
				"Increase SIP amount by 10% every year",
				"Stay invested for the full duration for best results",
			},
		},
		InvestmentDetails: InvestmentDetails{
			MonthlyAmount: amount,
			DurationYears: years,
			RiskTolerance: risk,
			Goal:          goal,
		},
		PortfolioAllocation: allocation,
		Projection: Projection{
			TotalInvestment:    finance.Round(invested),
			ExpectedReturnRate: finance.Round1(weighted),
			FutureValue:        finance.Round(fv),
			TotalReturns:       finance.Round(returns),
			ReturnPercentage:   finance.Round1(finance.PercentOf(returns, invested)),
		},
		SIPAnalysis: SIPAnalysis{
			MonthlySIP:         amount,
			Affordable:         amount <= env.CurrentSavings,
			PercentageOfIncome: finance.Round1(finance.PercentOf(amount, env.MonthlyIncome)),
		},
	}, nil
}
