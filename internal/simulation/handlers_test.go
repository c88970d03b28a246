package simulation

import (
	"encoding/json"
	"testing"
	"time"

	"finlight-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Budget
// ==========================

func TestMonthlyBudgetForecast(t *testing.T) {
	e := NewEnvelope(&models.UserFinancialContext{
		MonthlyIncome:   models.Float(50000),
		MonthlyExpenses: models.Float(35000),
		IncomeType:      models.IncomeSeasonal,
		FamilySize:      5,
	}, testNow)

	res, err := monthlyBudgetForecast(Inputs{}, e)
	require.NoError(t, err)

	assert.Equal(t, MonthFlow{Income: 50000, Expenses: 35000, Savings: 15000, SavingsRate: 30}, res.CurrentMonth)
	assert.Equal(t, MonthFlow{Income: 40000, Expenses: 36750, Savings: 3250, SavingsRate: 8.1}, res.NextMonthPrediction)
	assert.Equal(t, ExpenseSplit{Essential: 21000, Discretionary: 14000}, res.ExpenseBreakdown)
	assert.Len(t, res.Insights, 3)
}

func TestMonthlyBudgetForecast_ZeroIncome(t *testing.T) {
	res, err := monthlyBudgetForecast(Inputs{}, testEnv(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.CurrentMonth.SavingsRate)
	assert.Equal(t, 0.0, res.NextMonthPrediction.SavingsRate)
	assert.NotNil(t, res.Insights)
}

func TestExpenseReductionImpact(t *testing.T) {
	res, err := expenseReductionImpact(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 34000.0, res.ReductionDetails.NewMonthlyExpenses)
	assert.Equal(t, 1000.0, res.ImpactAnalysis.MonthlySavingsIncrease)
	assert.Equal(t, 12000.0, res.ImpactAnalysis.AnnualSavingsIncrease)
	assert.Equal(t, 32.0, res.ImpactAnalysis.NewSavingsRate)
	assert.Equal(t, 67200.0, res.LongTermPotential.FiveYearValue)
	assert.Equal(t, 138000.0, res.LongTermPotential.TenYearValue)
	assert.Equal(t, "Reducing dining_out expenses can significantly boost savings", res.Recommendations[0])

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"5_year_investment_value":67200`)
}

func TestFestiveSeasonSpending(t *testing.T) {
	res, err := festiveSeasonSpending(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, "Festive Season Planning - Diwali", res.Title)
	assert.Equal(t, 22500.0, res.FestivalDetails.EstimatedTotalSpending)
	assert.Equal(t, 7500.0, res.FinancialPlanning.MonthlySavingsNeeded)
	assert.True(t, res.FinancialPlanning.CanAffordWithCurrentSavings)
	assert.Equal(t, "Significant", res.FinancialPlanning.ImpactOnRegularGoals)
	assert.Equal(t, FestivalSpendSplit{9000, 6750, 4500, 2250}, res.SpendingBreakdown)
	assert.Equal(t, "Start saving ₹7,500 monthly for Diwali", res.Recommendations[0])

	res, err = festiveSeasonSpending(Inputs{"festival": "Onam", "months_to_festival": 0.0, "planned_spending": 8000.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, 8000.0, res.FinancialPlanning.MonthlySavingsNeeded)
}

// ==========================
// Loans
// ==========================

func TestLoanAffordability_Scenario(t *testing.T) {
	res, err := loanAffordability(Inputs{"loan_amount": 100000.0, "loan_tenure": 12.0, "interest_rate": 12.0}, testEnv(50000, 30000))
	require.NoError(t, err)

	assert.Equal(t, 8885.0, res.LoanDetails.MonthlyEMI)
	assert.Equal(t, Amount(17.8), res.Affordability.DebtToIncomeRatio)
	assert.Equal(t, "Low", res.Affordability.RiskLevel)
	assert.True(t, res.Affordability.CanAfford)
	assert.Equal(t, 20000.0, res.Affordability.AvailableIncome)
	assert.Equal(t, LoanCost{TotalPayment: 106619, TotalInterest: 6619}, res.TotalCost)
	assert.Equal(t, []string{
		"Keep debt-to-income ratio below 40% (currently 17.8%)",
		"Current tenure is optimal",
		"Build emergency fund before taking loan",
	}, res.Recommendations)
}

func TestLoanAffordability_RiskBands(t *testing.T) {
	tests := []struct {
		name      string
		income    float64
		liability float64
		wantRisk  string
		canAfford bool
	}{
		{"medium", 25000, 0, "Medium", true},
		{"high", 15000, 0, "High", false},
		{"liabilities push over 40%", 25000, 2000, "Medium", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnvelope(&models.UserFinancialContext{
				MonthlyIncome:       models.Float(tt.income),
				MonthlyExpenses:     models.Float(1000),
				ExistingLiabilities: tt.liability,
			}, testNow)
			res, err := loanAffordability(Inputs{}, e)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRisk, res.Affordability.RiskLevel)
			assert.Equal(t, tt.canAfford, res.Affordability.CanAfford)
		})
	}
}

func TestLoanAffordability_ZeroIncome(t *testing.T) {
	res, err := loanAffordability(Inputs{}, testEnv(0, 0))
	require.NoError(t, err)

	assert.Equal(t, Sentinel("Undefined"), res.Affordability.DebtToIncomeRatio)
	assert.Equal(t, "High", res.Affordability.RiskLevel)
	assert.False(t, res.Affordability.CanAfford)
	assert.Equal(t, "Keep debt-to-income ratio below 40% (currently undefined)", res.Recommendations[0])

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"debt_to_income_ratio":"Undefined"`)
}

func TestLoanAffordability_ZeroRate(t *testing.T) {
	res, err := loanAffordability(Inputs{"loan_amount": 12000.0, "interest_rate": 0.0}, testEnv(50000, 30000))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.LoanDetails.MonthlyEMI)
	assert.Equal(t, 0.0, res.TotalCost.TotalInterest)
}

func TestLoanImpactEstimation(t *testing.T) {
	res, err := loanImpactEstimation(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 15.0, res.LoanDetails.InterestRate)
	assert.Equal(t, 1805.0, res.LoanDetails.MonthlyEMI)
	assert.Equal(t, LoanBudgetImpact{
		NewMonthlyExpenses: 36805,
		NewMonthlySavings:  13195,
		SavingsReduction:   1805,
		DebtToIncomeRatio:  Amount(3.6),
	}, res.FinancialImpact)
	assert.Equal(t, LoanRepayment{TotalRepayment: 21662, TotalInterest: 1662, InterestPercentage: 8.3}, res.TotalCost)
	assert.Equal(t, LoanRisk{RiskLevel: "Low", EmergencyFundImpact: "Moderate", RepaymentCapacity: "Good"}, res.RiskAssessment)
	assert.Equal(t, "Tenure is reasonable", res.Recommendations[0])

	res, err = loanImpactEstimation(Inputs{"loan_type": "home", "loan_tenure": 36.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, 8.5, res.LoanDetails.InterestRate)
	assert.Equal(t, "Consider shorter tenure to reduce total interest", res.Recommendations[0])

	res, err = loanImpactEstimation(Inputs{"loan_type": "payday"}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, 15.0, res.LoanDetails.InterestRate)
}

func TestEMIVsSavingDilemma(t *testing.T) {
	res, err := emiVsSavingDilemma(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 4513.0, res.EMIOption.MonthlyEMI)
	assert.Equal(t, 54155.0, res.EMIOption.TotalCost)
	assert.Equal(t, 9.0, res.EMIOption.ImpactOnMonthlyBudget)
	assert.Equal(t, Amount(3.3), res.SavingOption.MonthsToSave)
	assert.Equal(t, 500.0, res.SavingOption.OpportunityCost)
	assert.Equal(t, 47917.0, res.SavingOption.ItemValueWhenPurchased)
	assert.Equal(t, 49500.0, res.Comparison.SavingEffectiveCost)
	assert.Equal(t, 4655.0, res.Comparison.SavingsAdvantage)
	assert.Equal(t, "Save", res.Comparison.RecommendedOption)
	assert.Equal(t, "Save if you can wait and invest the money", res.Recommendations[0])
}

func TestEMIVsSavingDilemma_NoSurplus(t *testing.T) {
	res, err := emiVsSavingDilemma(Inputs{}, testEnv(40000, 40000))
	require.NoError(t, err)

	assert.Equal(t, Sentinel("Cannot save with current rate"), res.SavingOption.MonthsToSave)
	assert.Equal(t, 0.0, res.SavingOption.OpportunityCost)
	assert.Equal(t, 50000.0, res.Comparison.SavingEffectiveCost)
	assert.Greater(t, res.Comparison.EMITotalCost, res.Comparison.SavingEffectiveCost)
	assert.Equal(t, "Save", res.Comparison.RecommendedOption)
	assert.Equal(t, "Save if you can wait and invest the money", res.Recommendations[0])
}

func TestEMIVsSavingDilemma_TieDefaultsToEMI(t *testing.T) {
	res, err := emiVsSavingDilemma(Inputs{"item_cost": 0.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, res.Comparison.EMITotalCost, res.Comparison.SavingEffectiveCost)
	assert.Equal(t, "EMI", res.Comparison.RecommendedOption)
}

// ==========================
// Goals
// ==========================

func TestSavingsGoalTracker_NoSurplus(t *testing.T) {
	res, err := savingsGoalTracker(Inputs{"target_amount": 50000.0, "target_date": "2024-12-31", "current_saved": 0.0}, testEnv(40000, 40000))
	require.NoError(t, err)

	assert.Equal(t, 12, res.GoalDetails.MonthsRemaining)
	assert.False(t, res.Progress.Feasible)
	assert.Equal(t, 4167.0, res.Progress.RequiredMonthlySavings)
	assert.Equal(t, "Increase savings first", res.TimelineAnalysis.SuggestedTimeline)
	assert.Equal(t, 4167.0, res.TimelineAnalysis.AccelerationNeeded)
	assert.Equal(t, "Increase monthly savings", res.Recommendations[0])
}

func TestSavingsGoalTracker_IncomeTypeBuffer(t *testing.T) {
	tests := []struct {
		name         string
		income       float64
		incomeType   models.IncomeType
		wantRequired float64
		wantFeasible bool
		wantTimeline string
	}{
		{"seasonal pads by 20%", 50000, models.IncomeSeasonal, 5000, true, "5 months"},
		{"daily buffer does not change feasibility", 44200, models.IncomeDaily, 4583, true, "12 months"},
		{"fixed has no buffer", 44000, models.IncomeFixed, 4167, false, "13 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnvelope(&models.UserFinancialContext{
				MonthlyIncome:   models.Float(tt.income),
				MonthlyExpenses: models.Float(40000),
				IncomeType:      tt.incomeType,
			}, testNow)
			res, err := savingsGoalTracker(Inputs{}, e)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRequired, res.Progress.RequiredMonthlySavings)
			assert.Equal(t, tt.wantFeasible, res.Progress.Feasible)
			assert.Equal(t, tt.wantFeasible, res.TimelineAnalysis.OnTrack)
			assert.Equal(t, tt.wantTimeline, res.TimelineAnalysis.SuggestedTimeline)
		})
	}
}

func TestSavingsGoalTracker_PastDate(t *testing.T) {
	e := testEnv(50000, 35000)
	e.Now = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	res, err := savingsGoalTracker(Inputs{"current_saved": 20000.0}, e)
	require.NoError(t, err)
	assert.Equal(t, 1, res.GoalDetails.MonthsRemaining)
	assert.Equal(t, 40.0, res.Progress.PercentageComplete)
	assert.Equal(t, 30000.0, res.GoalDetails.RemainingAmount)
	assert.False(t, res.Progress.Feasible)
}

func TestLifeEventPlanning(t *testing.T) {
	res, err := lifeEventPlanning(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, "Life Event Planning - Baby", res.Title)
	assert.Equal(t, 75000.0, res.FinancialImpact.TotalImmediateCost)
	assert.Equal(t, 6250.0, res.FinancialImpact.MonthlySavingsNeeded)
	assert.True(t, res.FinancialImpact.CanAffordWithCurrentSavings)
	assert.Equal(t, 43000.0, res.FinancialImpact.NewMonthlyExpenses)
	assert.Equal(t, 258000.0, res.PreparationPlan.EmergencyFundNeeded)
	assert.Equal(t, "Start saving ₹6,250 monthly for baby", res.Recommendations[0])

	res, err = lifeEventPlanning(Inputs{"event_type": "home_purchase", "timeline_months": 24.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, "Life Event Planning - Home Purchase", res.Title)
	assert.False(t, res.FinancialImpact.CanAffordWithCurrentSavings)

	res, err = lifeEventPlanning(Inputs{"event_type": "sabbatical"}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, 50000.0, res.EventDetails.ImmediateCosts)
}

func TestRetirementReadiness(t *testing.T) {
	res, err := retirementReadiness(Inputs{"current_retirement_savings": 1050000.0}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 30, res.RetirementPlan.YearsToRetirement)
	assert.Equal(t, 10500000.0, res.CorpusCalculation.RetirementCorpusNeeded)
	assert.Equal(t, 9450000.0, res.CorpusCalculation.GapAmount)
	assert.Equal(t, 10.0, res.CorpusCalculation.ReadinessPercentage)
	assert.Equal(t, 3004.0, res.InvestmentPlan.MonthlySIPNeeded)
	assert.True(t, res.InvestmentPlan.AffordableWithCurrentSavings)
	assert.Equal(t, 6.0, res.InvestmentPlan.PercentageOfIncome)
	assert.Equal(t, "Start SIP of ₹3,004 monthly for retirement", res.Recommendations[0])
}

func TestRetirementReadiness_AlreadyRetired(t *testing.T) {
	res, err := retirementReadiness(Inputs{"current_age": 65.0, "desired_monthly_income": 10000.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, -5, res.RetirementPlan.YearsToRetirement)
	assert.Equal(t, 3000000.0, res.InvestmentPlan.MonthlySIPNeeded)
	assert.False(t, res.InvestmentPlan.AffordableWithCurrentSavings)
}

func TestInvestmentPlanning(t *testing.T) {
	res, err := investmentPlanning(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 120000.0, res.Projection.TotalInvestment)
	assert.InDelta(t, 9.55, res.Projection.ExpectedReturnRate, 0.051)
	assert.Equal(t, 154264.0, res.Projection.FutureValue)
	assert.Equal(t, 34264.0, res.Projection.TotalReturns)
	assert.Equal(t, 28.6, res.Projection.ReturnPercentage)
	assert.Equal(t, SIPAnalysis{MonthlySIP: 2000, Affordable: true, PercentageOfIncome: 4}, res.SIPAnalysis)
	assert.Equal(t, Allocation{Allocation: 50, Return: 12}, res.PortfolioAllocation["equity_funds"])
	assert.Equal(t, "Start SIP of ₹2,000 based on your moderate risk profile", res.Recommendations[0])

	res, err = investmentPlanning(Inputs{"risk_tolerance": "reckless"}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Contains(t, res.PortfolioAllocation, "equity_funds")
	assert.Equal(t, "reckless", res.InvestmentDetails.RiskTolerance)

	res, err = investmentPlanning(Inputs{"duration_years": 0.0}, testEnv(50000, 35000))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Projection.FutureValue)
	assert.Equal(t, 0.0, res.Projection.ReturnPercentage)
}

// ==========================
// Shocks
// ==========================

func TestIncomeDropAlert_NoDeficit(t *testing.T) {
	res, err := incomeDropAlert(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, Sentinel("Indefinite"), res.ImpactAnalysis.SurvivalMonths)
	assert.Empty(t, res.EmergencyPlan.ImmediateActions)
	assert.Equal(t, "Monitor expenses closely", res.Recommendations[0])

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"survival_months":"Indefinite"`)
	assert.Contains(t, string(b), `"immediate_actions":[]`)
}

func TestIncomeDropAlert_Deficit(t *testing.T) {
	res, err := incomeDropAlert(Inputs{}, testEnv(40000, 38000))
	require.NoError(t, err)

	assert.Equal(t, 3000.0, res.ImpactAnalysis.MonthlyDeficit)
	assert.Equal(t, 9000.0, res.ImpactAnalysis.TotalDeficitPeriod)
	assert.Equal(t, Amount(0.7), res.ImpactAnalysis.SurvivalMonths)
	assert.Equal(t, []string{
		"Immediate expense reduction required",
		"Tap into emergency funds",
		"Seek alternative income sources urgently",
	}, res.EmergencyPlan.ImmediateActions)
	assert.Equal(t, 2000.0, res.EmergencyPlan.EmergencyFundUsage)

	res, err = incomeDropAlert(Inputs{}, testEnv(30000, 38000))
	require.NoError(t, err)
	assert.Equal(t, Amount(0), res.ImpactAnalysis.SurvivalMonths)
}

func TestWeatherEventImpact(t *testing.T) {
	res, err := weatherEventImpact(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, "Weather Impact Analysis - Rain", res.Title)
	assert.Equal(t, 4000.0, res.FinancialImpact.IncomeLoss)
	assert.Equal(t, 6000.0, res.FinancialImpact.TotalImpact)
	assert.Equal(t, Amount(0.4), res.RecoveryAnalysis.MonthsToRecover)
	assert.Equal(t, "Adequate", res.RecoveryAnalysis.EmergencyFundAdequacy)
	assert.Len(t, res.MitigationStrategies, 5)
	assert.Len(t, res.ImmediateActions, 4)

	daily := NewEnvelope(&models.UserFinancialContext{
		MonthlyIncome:   models.Float(50000),
		MonthlyExpenses: models.Float(50000),
		IncomeType:      models.IncomeDaily,
	}, testNow)
	res, err = weatherEventImpact(Inputs{"event_type": "flood"}, daily)
	require.NoError(t, err)
	assert.Equal(t, 18667.0, res.FinancialImpact.IncomeLoss)
	assert.Equal(t, 5000.0, res.FinancialImpact.AdditionalExpenses)
	assert.Equal(t, Sentinel("Cannot recover with current savings"), res.RecoveryAnalysis.MonthsToRecover)
	assert.False(t, res.RecoveryAnalysis.CanCoverWithSavings)
}

// ==========================
// Comparison
// ==========================

func TestBestOptionSelector(t *testing.T) {
	res, err := bestOptionSelector(Inputs{}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 188000.0, res.Options.Option1.TotalCost)
	assert.Equal(t, 54000.0, res.Options.Option2.TotalCost)
	assert.Equal(t, "Public Transport", res.FinancialAnalysis.CheaperOption)
	assert.Equal(t, 134000.0, res.FinancialAnalysis.CostDifference)
	assert.Equal(t, 5222.0, res.FinancialAnalysis.MonthlyImpactOption1)
	assert.Equal(t, 1500.0, res.FinancialAnalysis.MonthlyImpactOption2)
	assert.Equal(t, 161945.0, res.FinancialAnalysis.InvestmentOpportunity)
	assert.Equal(t, 36, res.QualitativeComparison.Option1Score)
	assert.Equal(t, 21, res.QualitativeComparison.Option2Score)
	assert.Equal(t, "4.4 years", res.Recommendation.BreakEvenPeriod)
	assert.Equal(t, "Financially, Public Transport is better by ₹134,000", res.Recommendations[0])
}

func TestBestOptionSelector_LongerPeriodStillCompoundsThreeYears(t *testing.T) {
	res, err := bestOptionSelector(Inputs{"comparison_years": 5.0}, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 260000.0, res.Options.Option1.TotalCost)
	assert.Equal(t, 90000.0, res.Options.Option2.TotalCost)
	assert.Equal(t, 123272.0, res.FinancialAnalysis.InvestmentOpportunity)
}

func TestBestOptionSelector_CustomOptions(t *testing.T) {
	in := Inputs{
		"option1":          map[string]interface{}{"name": "Rent", "monthly_cost": 12000.0},
		"option2":          map[string]interface{}{"name": "Buy", "cost": 500000.0, "monthly_cost": 12000.0},
		"comparison_years": 1.0,
	}
	res, err := bestOptionSelector(in, testEnv(50000, 35000))
	require.NoError(t, err)

	assert.Equal(t, 80000.0, res.Options.Option1.InitialCost)
	assert.Equal(t, "N/A", res.Recommendation.BreakEvenPeriod)
	assert.Equal(t, 0.0, res.FinancialAnalysis.InvestmentOpportunity)
	assert.Equal(t, 12000.0, res.FinancialAnalysis.MonthlyImpactOption2)
	assert.Equal(t, "Rent", res.Recommendation.FinanciallyBetter)
}
