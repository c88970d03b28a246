// Package eligibility checks a user against a government scheme's criteria.
package eligibility

import (
	"fmt"
	"math"
	"strings"

	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/culture"
	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"
)

// DefaultAge is assumed when the caller does not know the user's age.
const DefaultAge = 25

// Confidence penalties per failed criterion.
const (
	agePenalty    = 0.3
	incomePenalty = 0.4
	statePenalty  = 0.5
)

var (
	eligibleRecommendations = []string{
		"You appear eligible! Proceed with application",
		"Gather required documents for application",
	}
	ineligibleRecommendations = []string{
		"Review eligibility criteria and update your profile",
		"Check similar schemes that might be applicable",
	}
	eligibleNextSteps = []string{
		"Download application form",
		"Contact local agent for assistance",
		"Visit nearest government office",
	}
	ineligibleNextSteps = []string{
		"Update your profile information",
		"Check alternative schemes",
		"Consult with financial advisor",
	}
)

type Request struct {
	SchemeName string
	// Age is nil when unknown.
	Age     *int
	Context *models.UserFinancialContext
}

type Result struct {
	Scheme          culture.Scheme `json:"scheme"`
	Eligible        bool           `json:"eligible"`
	Confidence      float64        `json:"confidence"`
	MissingCriteria []string       `json:"missingCriteria"`
	Recommendations []string       `json:"recommendations"`
	NextSteps       []string       `json:"nextSteps"`
	// ProfileComplete is false when income was unknown and the income
	// criterion could not be checked.
	ProfileComplete bool `json:"profileComplete"`
}

type Checker struct {
	tables *culture.Tables
}

// NewChecker uses culture.Default when tables is nil.
func NewChecker(tables *culture.Tables) *Checker {
	if tables == nil {
		tables = culture.Default()
	}
	return &Checker{tables: tables}
}

// Check returns SCHEME_NOT_FOUND for a name missing from the catalog.
// Criteria that cannot be evaluated for lack of data are passed.
func (c *Checker) Check(req Request) (*Result, error) {
	scheme, ok := c.tables.Scheme(req.SchemeName)
	if !ok {
		return nil, apperrors.NewSchemeNotFoundError(req.SchemeName)
	}

	age := DefaultAge
	if req.Age != nil {
		age = *req.Age
	}

	missing := []string{}
	confidence := 1.0

	if scheme.AgeMin != nil && age < *scheme.AgeMin {
		missing = append(missing, fmt.Sprintf("Minimum age requirement: %d", *scheme.AgeMin))
		confidence -= agePenalty
	}
	if scheme.AgeMax != nil && age > *scheme.AgeMax {
		missing = append(missing, fmt.Sprintf("Maximum age limit: %d", *scheme.AgeMax))
		confidence -= agePenalty
	}

	income := req.Context.Income()
	if scheme.IncomeMax != nil && income > 0 && income*12 > *scheme.IncomeMax {
		missing = append(missing, "Income should be below "+finance.Rupees(*scheme.IncomeMax))
		confidence -= incomePenalty
	}

	if state := contextState(req.Context); state != "" && !scheme.AvailableIn(state) {
		missing = append(missing, "Scheme not available in "+state)
		confidence -= statePenalty
	}

	eligible := len(missing) == 0
	res := &Result{
		Scheme:          scheme,
		Eligible:        eligible,
		Confidence:      math.Max(0, math.Round(confidence*100)/100),
		MissingCriteria: missing,
		ProfileComplete: req.Context.HasProfile(),
	}
	if eligible {
		res.Recommendations = append([]string(nil), eligibleRecommendations...)
		res.NextSteps = append([]string(nil), eligibleNextSteps...)
	} else {
		res.Recommendations = append([]string(nil), ineligibleRecommendations...)
		res.NextSteps = append([]string(nil), ineligibleNextSteps...)
	}
	return res, nil
}

func contextState(ctx *models.UserFinancialContext) string {
	if ctx == nil {
		return ""
	}
	return strings.TrimSpace(ctx.State)
}
