// Package advice turns a classified intent and the user's financial context
// into a short rule-based answer with follow-up suggestions.
package advice

import (
	"strings"
	"time"

	"finlight-engine/internal/culture"
	"finlight-engine/internal/models"
)

// Request is everything a generator may look at. Now drives the festival
// calendar and is never read from the wall clock here.
type Request struct {
	Intent   models.Intent
	Context  *models.UserFinancialContext
	Query    string
	Language string
	Now      time.Time
}

func (r Request) language() string {
	if r.Language != "" {
		return r.Language
	}
	if r.Intent.Language != "" {
		return r.Intent.Language
	}
	return culture.DefaultLanguage
}

func (r Request) displayName() string {
	if r.Context != nil && strings.TrimSpace(r.Context.FullName) != "" {
		return strings.TrimSpace(r.Context.FullName)
	}
	return "friend"
}

// Generator is stateless apart from the read-only tables.
type Generator struct {
	tables *culture.Tables
}

// NewGenerator uses culture.Default when tables is nil.
func NewGenerator(tables *culture.Tables) *Generator {
	if tables == nil {
		tables = culture.Default()
	}
	return &Generator{tables: tables}
}

// Generate always produces a response. Missing profile data shows up as
// ActionRequired, never as an error.
func (g *Generator) Generate(req Request) models.AdviceResponse {
	q := strings.ToLower(req.Query)

	var resp models.AdviceResponse
	switch req.Intent.Name {
	case models.IntentSavings:
		switch {
		case !req.Context.HasProfile():
			resp = createProfile()
		case containsAny(q, "how much", "kitna"):
			resp = g.savingsAmount(req)
		case containsAny(q, "where", "kahan"):
			resp = savingsOptions()
		default:
			resp = g.savings(req)
		}
	case models.IntentInvestment:
		switch {
		case containsAny(q, "mutual fund", "sip"):
			resp = mutualFunds()
		case containsAny(q, "stock", "share"):
			resp = stocks()
		case containsAny(q, "gold", "sona"):
			resp = gold()
		default:
			resp = g.investment(req)
		}
	case models.IntentGoal:
		resp = goals(req)
	case models.IntentScheme:
		resp = schemes()
	case models.IntentWedding:
		resp = wedding(req)
	case models.IntentFestival:
		resp = g.festival(req)
	case models.IntentEducation:
		resp = education(req)
	case models.IntentGreeting:
		resp = g.greeting(req)
	case models.IntentEmergency:
		resp = emergencyFund(req)
	case models.IntentBudget:
		resp = budget(req)
	default:
		resp = g.general(req, q)
	}

	resp.Source = models.SourceRules
	if len(resp.Suggestions) > models.MaxSuggestions {
		resp.Suggestions = resp.Suggestions[:models.MaxSuggestions]
	}
	return resp
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func reply(text string, suggestions ...string) models.AdviceResponse {
	return models.AdviceResponse{Text: text, Suggestions: suggestions}
}

func prompt(text string, suggestions ...string) models.AdviceResponse {
	return models.AdviceResponse{Text: text, Suggestions: suggestions, ActionRequired: true}
}
