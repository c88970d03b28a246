// internal/models/conversation.go
package models

type IntentName string

const (
	IntentSavings    IntentName = "savings_query"
	IntentInvestment IntentName = "investment_query"
	IntentGoal       IntentName = "goal_query"
	IntentScheme     IntentName = "scheme_query"
	IntentWedding    IntentName = "wedding_planning"
	IntentFestival   IntentName = "festival_planning"
	IntentEducation  IntentName = "education_planning"
	IntentGreeting   IntentName = "greeting"
	IntentEmergency  IntentName = "emergency_fund"
	IntentBudget     IntentName = "budget"
	IntentOther      IntentName = "other"
)

// Intent is the classified purpose of a query.
type Intent struct {
	Name       IntentName `json:"intent"`
	Confidence float64    `json:"confidence"`
	Language   string     `json:"language"`
}

// Advice text sources.
const (
	SourceRules      = "rules"
	SourceGenerative = "generative"
)

// MaxSuggestions caps AdviceResponse.Suggestions.
const MaxSuggestions = 4

// AdviceResponse is what the assistant says back.
type AdviceResponse struct {
	Text           string   `json:"text"`
	Suggestions    []string `json:"suggestions"`
	ActionRequired bool     `json:"actionRequired"`
	Source         string   `json:"source"`
}
