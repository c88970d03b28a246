package simulation

import (
	"fmt"
	"math"

	"finlight-engine/internal/finance"
)

// The cheaper option's savings are spread over the comparison period but
// always compounded for three years at this annual return.
const (
	comparisonAnnualReturn   = 12
	comparisonInvestedMonths = 36
)

type option struct {
	name        string
	cost        float64
	monthlyCost float64
}

var (
	defaultOption1 = option{name: "Buy Scooter", cost: 80000, monthlyCost: 3000}
	defaultOption2 = option{name: "Public Transport", cost: 0, monthlyCost: 1500}

	option1Benefits = map[string]int{"convenience": 9, "time_saving": 8, "comfort": 9, "flexibility": 10}
	option2Benefits = map[string]int{"convenience": 6, "time_saving": 5, "comfort": 6, "flexibility": 4}
)

func readOption(in Inputs, def option) option {
	return option{
		name:        in.String("name", def.name),
		cost:        in.Float("cost", def.cost),
		monthlyCost: in.Float("monthly_cost", def.monthlyCost),
	}
}

type OptionSummary struct {
	Name        string  `json:"name"`
	InitialCost float64 `json:"initial_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	TotalCost   float64 `json:"total_cost_3_years"`
}

type Options struct {
	Option1 OptionSummary `json:"option1"`
	Option2 OptionSummary `json:"option2"`
}

type OptionFinancials struct {
	CostDifference        float64 `json:"cost_difference"`
	CheaperOption         string  `json:"cheaper_option"`
	MonthlyImpactOption1  float64 `json:"monthly_impact_option1"`
	MonthlyImpactOption2  float64 `json:"monthly_impact_option2"`
	InvestmentOpportunity float64 `json:"investment_opportunity"`
}

type Qualitative struct {
	Option1Benefits map[string]int `json:"option1_benefits"`
	Option2Benefits map[string]int `json:"option2_benefits"`
	Option1Score    int            `json:"option1_score"`
	Option2Score    int            `json:"option2_score"`
}

type Verdict struct {
	FinanciallyBetter string `json:"financially_better"`
	OverallBetter     string `json:"overall_better"`
	BreakEvenPeriod   string `json:"break_even_period"`
}

type OptionComparison struct {
	Summary
	Options               Options          `json:"options"`
	FinancialAnalysis     OptionFinancials `json:"financial_analysis"`
	QualitativeComparison Qualitative      `json:"qualitative_comparison"`
	Recommendation        Verdict          `json:"recommendation"`
}

func score(benefits map[string]int) int {
	total := 0
	for _, v := range benefits {
		total += v
	}
	return total
}

func copyBenefits(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// bestOptionSelector compares two spending options over a period. Equal
// totals favour option2.
func bestOptionSelector(in Inputs, env Envelope) (*OptionComparison, error) {
	o1 := readOption(in.Object("option1"), defaultOption1)
	o2 := readOption(in.Object("option2"), defaultOption2)
	years := in.Int("comparison_years", 3)
	months := years * 12

	total1 := o1.cost + o1.monthlyCost*float64(months)
	total2 := o2.cost + o2.monthlyCost*float64(months)

	better := o2.name
	if total1 < total2 {
		better = o1.name
	}

	invested := 0.0
	if diff := total1 - total2; diff > 0 && months > 0 {
		fv, err := finance.FutureValueOfPeriodicInvestment(diff/float64(months), comparisonAnnualReturn, comparisonInvestedMonths)
		if err != nil {
			return nil, err
		}
		invested = fv
	}

	// Only option1's upfront cost is amortised into its monthly impact.
	impact1, impact2 := o1.monthlyCost, o2.monthlyCost
	if months > 0 {
		impact1 += o1.cost / float64(months)
	}

	breakEven := "N/A"
	if o1.monthlyCost != o2.monthlyCost {
		breakEven = fmt.Sprintf("%.1f years", math.Abs(o1.cost-o2.cost)/math.Abs(o1.monthlyCost-o2.monthlyCost)/12)
	}

	gap := math.Abs(total1 - total2)

	return &OptionComparison{
		Summary: Summary{
			Title: "Best Option Comparison",
			Recommendations: []string{
				fmt.Sprintf("Financially, %s is better by %s", better, finance.Rupees(gap)),
				"Consider convenience and time value in your decision",
				"Factor in your current financial goals and priorities",
				"Evaluate based on your income stability and emergency fund status",
			},
		},
		Options: Options{
			Option1: OptionSummary{Name: o1.name, InitialCost: o1.cost, MonthlyCost: o1.monthlyCost, TotalCost: finance.Round(total1)},
			Option2: OptionSummary{Name: o2.name, InitialCost: o2.cost, MonthlyCost: o2.monthlyCost, TotalCost: finance.Round(total2)},
		},
		FinancialAnalysis: OptionFinancials{
			CostDifference:        finance.Round(gap),
			CheaperOption:         better,
			MonthlyImpactOption1:  finance.Round(impact1),
			MonthlyImpactOption2:  finance.Round(impact2),
			InvestmentOpportunity: finance.Round(invested),
		},
		QualitativeComparison: Qualitative{
			Option1Benefits: copyBenefits(option1Benefits),
			Option2Benefits: copyBenefits(option2Benefits),
			Option1Score:    score(option1Benefits),
			Option2Score:    score(option2Benefits),
		},
		Recommendation: Verdict{
			FinanciallyBetter: better,
			OverallBetter:     "Consider both financial and convenience factors",
			BreakEvenPeriod:   breakEven,
		},
	}, nil
}
