// Package finance holds the pure numeric formulas used by advice and
// simulations. Nothing here rounds; callers round when presenting.
package finance

import (
	"fmt"
	"math"

	apperrors "finlight-engine/internal/common/errors"
)

// RetirementMultiplier sizes a retirement corpus as a multiple of annual
// spending (the 25x rule). It is fixed, not tunable.
const RetirementMultiplier = 25

// MonthlyInstallment returns the reducing-balance EMI for a loan.
// A zero rate degenerates to principal/tenure.
func MonthlyInstallment(principal, annualRatePercent float64, tenureMonths int) (float64, error) {
	if principal < 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("principal must be >= 0, got %v", principal))
	}
	if annualRatePercent < 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("interest rate must be >= 0, got %v", annualRatePercent))
	}
	if tenureMonths < 1 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("tenure must be at least 1 month, got %d", tenureMonths))
	}

	if annualRatePercent == 0 {
		return principal / float64(tenureMonths), nil
	}

	r := annualRatePercent / 1200
	growth := math.Pow(1+r, float64(tenureMonths))
	return principal * r * growth / (growth - 1), nil
}

// FutureValueOfPeriodicInvestment returns the value after months of
// contributions made at the start of each month, compounded monthly.
// A zero rate is a plain sum.
func FutureValueOfPeriodicInvestment(monthlyAmount, annualRatePercent float64, months int) (float64, error) {
	if monthlyAmount < 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("monthly amount must be >= 0, got %v", monthlyAmount))
	}
	if annualRatePercent < 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("interest rate must be >= 0, got %v", annualRatePercent))
	}
	if months < 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("months must be >= 0, got %d", months))
	}

	i := annualRatePercent / 1200
	if i == 0 {
		return monthlyAmount * float64(months), nil
	}
	return monthlyAmount * ((math.Pow(1+i, float64(months)) - 1) / i) * (1 + i), nil
}

// SinkingFundInstallment is the end-of-month contribution that grows to
// target after months at monthlyRate (a fraction, e.g. 0.01). With no
// months left the whole target is due now.
func SinkingFundInstallment(target, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return target
	}
	if monthlyRate == 0 {
		return target / float64(months)
	}
	return target * monthlyRate / (math.Pow(1+monthlyRate, float64(months)) - 1)
}

// DebtToIncomeRatio is obligation as a percentage of income. It is undefined
// when income is not positive.
func DebtToIncomeRatio(periodicObligation, monthlyIncome float64) (float64, error) {
	if monthlyIncome <= 0 {
		return 0, apperrors.NewArithmeticDegenerateError(
			fmt.Sprintf("debt-to-income ratio needs positive income, got %v", monthlyIncome))
	}
	return periodicObligation / monthlyIncome * 100, nil
}

// RetirementCorpus is the savings needed to fund desiredMonthlyIncome
// indefinitely.
func RetirementCorpus(desiredMonthlyIncome float64) float64 {
	return desiredMonthlyIncome * 12 * RetirementMultiplier
}

// PercentOf returns part/whole*100, or 0 when whole is not positive.
func PercentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// Round rounds to the nearest whole currency unit.
func Round(v float64) float64 {
	return math.Round(v)
}

// Round1 rounds to one decimal place, used for ratios and percentages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
