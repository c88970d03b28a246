package simulation

import (
	"fmt"
	"math"

	"finlight-engine/internal/finance"
)

const (
	riskHigh   = "High"
	riskMedium = "Medium"
	riskLow    = "Low"

	// Sentinel for a debt-to-income ratio with no positive income.
	ratioUndefined = "Undefined"

	maxAffordableDTI = 40.0
)

func riskLevel(dti float64) string {
	switch {
	case dti > 50:
		return riskHigh
	case dti > 30:
		return riskMedium
	}
	return riskLow
}

// debtToIncome returns the ratio as a Measure, the risk band, and whether a
// numeric ratio exists. Zero income is the highest risk.
func debtToIncome(obligation, income float64) (Measure, string, float64, bool) {
	dti, err := finance.DebtToIncomeRatio(obligation, income)
	if err != nil {
		return Sentinel(ratioUndefined), riskHigh, 0, false
	}
	return Amount(finance.Round1(dti)), riskLevel(dti), dti, true
}

type LoanTerms struct {
	Amount       float64 `json:"amount"`
	TenureMonths int     `json:"tenure_months"`
	InterestRate float64 `json:"interest_rate"`
	MonthlyEMI   float64 `json:"monthly_emi"`
}

type Affordability struct {
	CanAfford         bool    `json:"can_afford"`
	AvailableIncome   float64 `json:"available_income"`
	DebtToIncomeRatio Measure `json:"debt_to_income_ratio"`
	RiskLevel         string  `json:"risk_level"`
}

type LoanCost struct {
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

type LoanAffordabilityResult struct {
	Summary
	LoanDetails   LoanTerms     `json:"loan_details"`
	Affordability Affordability `json:"affordability"`
	TotalCost     LoanCost      `json:"total_cost"`
}

func loanAffordability(in Inputs, env Envelope) (*LoanAffordabilityResult, error) {
	amount := in.Float("loan_amount", 100000)
	tenure := in.Int("loan_tenure", 12)
	rate := in.Float("interest_rate", 12)

	emi, err := finance.MonthlyInstallment(amount, rate, tenure)
	if err != nil {
		return nil, err
	}

	available := env.MonthlyIncome - env.MonthlyExpenses - env.ExistingLiabilities
	ratio, risk, dti, defined := debtToIncome(emi+env.ExistingLiabilities, env.MonthlyIncome)
	canAfford := defined && available >= emi && dti <= maxAffordableDTI
	total := emi * float64(tenure)

	dtiNote := "undefined"
	if defined {
		dtiNote = fmt.Sprintf("%.1f%%", dti)
	}
	tenureNote := "Current tenure is optimal"
	if tenure > 24 {
		tenureNote = "Consider shorter tenure to save on interest"
	}
	fundNote := "Good emergency fund available"
	if env.CurrentSavings < env.MonthlyExpenses*3 {
		fundNote = "Build emergency fund before taking loan"
	}

	return &LoanAffordabilityResult{
		Summary: Summary{
			Title: "Loan Affordability Analysis",
			Recommendations: []string{
				fmt.Sprintf("Keep debt-to-income ratio below 40%% (currently %s)", dtiNote),
				tenureNote,
				fundNote,
			},
		},
		LoanDetails: LoanTerms{
			Amount:       amount,
			TenureMonths: tenure,
			InterestRate: rate,
			MonthlyEMI:   finance.Round(emi),
		},
		Affordability: Affordability{
			CanAfford:         canAfford,
			AvailableIncome:   finance.Round(available),
			DebtToIncomeRatio: ratio,
			RiskLevel:         risk,
		},
		TotalCost: LoanCost{
			TotalPayment:  finance.Round(total),
			TotalInterest: finance.Round(total - amount),
		},
	}, nil
}

// Annual interest rates assumed per loan type; unknown types use personal.
var loanTypeRates = map[string]float64{
	"personal":  15,
	"business":  12,
	"education": 10,
	"home":      8.5,
	"vehicle":   9,
}

type TypedLoanTerms struct {
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	TenureMonths int     `json:"tenure_months"`
	InterestRate float64 `json:"interest_rate"`
	MonthlyEMI   float64 `json:"monthly_emi"`
}

type LoanBudgetImpact struct {
	NewMonthlyExpenses float64 `json:"new_monthly_expenses"`
	NewMonthlySavings  float64 `json:"new_monthly_savings"`
	SavingsReduction   float64 `json:"savings_reduction"`
	DebtToIncomeRatio  Measure `json:"debt_to_income_ratio"`
}

type LoanRepayment struct {
	TotalRepayment     float64 `json:"total_repayment"`
	TotalInterest      float64 `json:"total_interest"`
	InterestPercentage float64 `json:"interest_percentage"`
}

type LoanRisk struct {
	RiskLevel           string `json:"risk_level"`
	EmergencyFundImpact string `json:"emergency_fund_impact"`
	RepaymentCapacity   string `json:"repayment_capacity"`
}

type LoanImpact struct {
	Summary
	LoanDetails     TypedLoanTerms   `json:"loan_details"`
	FinancialImpact LoanBudgetImpact `json:"financial_impact"`
	TotalCost       LoanRepayment    `json:"total_cost"`
	RiskAssessment  LoanRisk         `json:"risk_assessment"`
}

func loanImpactEstimation(in Inputs, env Envelope) (*LoanImpact, error) {
	amount := in.Float("loan_amount", 20000)
	tenure := in.Int("loan_tenure", 12)
	loanType := in.String("loan_type", "personal")

	rate, ok := loanTypeRates[loanType]
	if !ok {
		rate = loanTypeRates["personal"]
	}

	emi, err := finance.MonthlyInstallment(amount, rate, tenure)
	if err != nil {
		return nil, err
	}

	newExpenses := env.MonthlyExpenses + emi
	newSavings := env.MonthlyIncome - newExpenses
	ratio, risk, _, _ := debtToIncome(emi+env.ExistingLiabilities, env.MonthlyIncome)
	total := emi * float64(tenure)
	interest := total - amount

	fundImpact := "Moderate"
	if newSavings < 5000 {
		fundImpact = "Significant"
	}
	capacity := "Tight"
	if newSavings > 0 {
		capacity = "Good"
	}
	tenureNote := "Tenure is reasonable"
	if tenure > 24 {
		tenureNote = "Consider shorter tenure to reduce total interest"
	}

	return &LoanImpact{
		Summary: Summary{
			Title: "Loan Impact Estimation",
			Recommendations: []string{
				tenureNote,
				"Maintain emergency fund of 6 months expenses",
				"Avoid taking additional loans during this period",
				"Consider prepayment when possible to save interest",
			},
		},
		LoanDetails: TypedLoanTerms{
			Amount:       amount,
			Type:         loanType,
			TenureMonths: tenure,
			InterestRate: rate,
			MonthlyEMI:   finance.Round(emi),
		},
		FinancialImpact: LoanBudgetImpact{
			NewMonthlyExpenses: finance.Round(newExpenses),
			NewMonthlySavings:  finance.Round(newSavings),
			SavingsReduction:   finance.Round(env.CurrentSavings - newSavings),
			DebtToIncomeRatio:  ratio,
		},
		TotalCost: LoanRepayment{
			TotalRepayment:     finance.Round(total),
			TotalInterest:      finance.Round(interest),
			InterestPercentage: finance.Round1(finance.PercentOf(interest, amount)),
		},
		RiskAssessment: LoanRisk{
			RiskLevel:           risk,
			EmergencyFundImpact: fundImpact,
			RepaymentCapacity:   capacity,
		},
	}, nil
}

// Annual depreciation by item type; unknown types use 10%.
var depreciationRates = map[string]float64{
	"electronics": 0.15,
	"vehicle":     0.10,
	"furniture":   0.05,
	"appliances":  0.08,
}

const (
	optionEMI  = "EMI"
	optionSave = "Save"

	cannotSave = "Cannot save with current rate"

	// Monthly return assumed on money kept invested while saving (12% a year).
	monthlyInvestmentReturn = 0.01
)

type ItemDetails struct {
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	EMITenure    int     `json:"emi_tenure"`
	InterestRate float64 `json:"interest_rate"`
}

type EMIOption struct {
	MonthlyEMI            float64 `json:"monthly_emi"`
	TotalCost             float64 `json:"total_cost"`
	TotalInterest         float64 `json:"total_interest"`
	ImmediateOwnership    bool    `json:"immediate_ownership"`
	ImpactOnMonthlyBudget float64 `json:"impact_on_monthly_budget"`
}

type SavingOption struct {
	MonthsToSave           Measure `json:"months_to_save"`
	OpportunityCost        float64 `json:"opportunity_cost"`
	ItemValueWhenPurchased float64 `json:"item_value_when_purchased"`
	TotalEffectiveCost     float64 `json:"total_effective_cost"`
	DelayedOwnership       bool    `json:"delayed_ownership"`
}

type EMIComparison struct {
	EMITotalCost        float64 `json:"emi_total_cost"`
	SavingEffectiveCost float64 `json:"saving_effective_cost"`
	SavingsAdvantage    float64 `json:"savings_advantage"`
	RecommendedOption   string  `json:"recommended_option"`
}

type EMIVsSaving struct {
	Summary
	ItemDetails  ItemDetails   `json:"item_details"`
	EMIOption    EMIOption     `json:"emi_option"`
	SavingOption SavingOption  `json:"saving_option"`
	Comparison   EMIComparison `json:"comparison"`
}

// emiVsSavingDilemma recommends saving only when the EMI route is strictly
// dearer than the effective cost of saving. Equal costs stay with EMI.
func emiVsSavingDilemma(in Inputs, env Envelope) (*EMIVsSaving, error) {
	cost := in.Float("item_cost", 50000)
	itemType := in.String("item_type", "electronics")
	tenure := in.Int("emi_tenure", 12)
	rate := in.Float("interest_rate", 15)

	emi, err := finance.MonthlyInstallment(cost, rate, tenure)
	if err != nil {
		return nil, err
	}
	totalEMI := emi * float64(tenure)

	depreciation, ok := depreciationRates[itemType]
	if !ok {
		depreciation = 0.10
	}

	canSave := env.CurrentSavings > 0
	monthsToSave := Sentinel(cannotSave)
	returns, itemValue := 0.0, 0.0
	if canSave {
		months := cost / env.CurrentSavings
		monthsToSave = Amount(finance.Round1(months))
		returns = env.CurrentSavings * months * monthlyInvestmentReturn
		itemValue = math.Max(0, cost*(1-depreciation*months/12))
	}
	effective := cost - returns

	recommended := optionEMI
	if totalEMI > effective {
		recommended = optionSave
	}
	first := "EMI might be better for immediate need"
	if recommended == optionSave {
		first = "Save if you can wait and invest the money"
	}

	return &EMIVsSaving{
		Summary: Summary{
			Title: "EMI vs Saving Analysis",
			Recommendations: []string{
				first,
				"Consider 0% EMI offers if available",
				"Factor in urgency of need",
				"Check for seasonal discounts while saving",
			},
		},
		ItemDetails: ItemDetails{
			Type:         itemType,
			Cost:         cost,
			EMITenure:    tenure,
			InterestRate: rate,
		},
		EMIOption: EMIOption{
			MonthlyEMI:            finance.Round(emi),
			TotalCost:             finance.Round(totalEMI),
			TotalInterest:         finance.Round(totalEMI - cost),
			ImmediateOwnership:    true,
			ImpactOnMonthlyBudget: finance.Round1(finance.PercentOf(emi, env.MonthlyIncome)),
		},
		SavingOption: SavingOption{
			MonthsToSave:           monthsToSave,
			OpportunityCost:        finance.Round(returns),
			ItemValueWhenPurchased: finance.Round(itemValue),
			TotalEffectiveCost:     finance.Round(effective),
			DelayedOwnership:       true,
		},
		Comparison: EMIComparison{
			EMITotalCost:        finance.Round(totalEMI),
			SavingEffectiveCost: finance.Round(effective),
			SavingsAdvantage:    finance.Round(totalEMI - effective),
			RecommendedOption:   recommended,
		},
	}, nil
}
