// Package nudge picks the culturally timed reminders sent to a user: the
// festivals of the month, a regional investment tip and the tax season.
package nudge

import (
	"fmt"
	"strings"
	"time"

	"finlight-engine/internal/culture"
)

// MaxNudges caps Generate's result.
const MaxNudges = 3

const (
	TypeFestival      = "festival"
	TypeStateSpecific = "state_specific"
	TypeSeasonal      = "seasonal"
)

type Nudge struct {
	Type            string `json:"type"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	CulturalContext string `json:"culturalContext"`
	Action          string `json:"action"`
}

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

// Generate returns up to MaxNudges nudges for a user in state on now's
// date. Festival nudges come first, in calendar declaration order.
func (g *Generator) Generate(state string, now time.Time) []Nudge {
	month := now.Month()
	nudges := []Nudge{}

	for _, f := range g.tables.FestivalsInMonth(month) {
		nudges = append(nudges, Nudge{
			Type:            TypeFestival,
			Title:           f.Name + " Planning",
			Message:         f.Suggestions[0],
			CulturalContext: f.Key,
			Action:          "create_festival_goal",
		})
	}

	state = strings.TrimSpace(state)
	if pattern, ok := g.tables.State(state); ok && state != "" {
		prefs := pattern.InvestmentPreferences
		if len(prefs) > 2 {
			prefs = prefs[:2]
		}
		nudges = append(nudges, Nudge{
			Type:            TypeStateSpecific,
			Title:           state + " Financial Tip",
			Message:         fmt.Sprintf("Popular in %s: %s", state, strings.Join(prefs, ", ")),
			CulturalContext: culture.NormalizeKey(state),
			Action:          "explore_investments",
		})
	}

	if month == time.March || month == time.April {
		nudges = append(nudges, Nudge{
			Type:            TypeSeasonal,
			Title:           "Tax Saving Reminder",
			Message:         "Don't forget to invest in tax-saving instruments before March 31st!",
			CulturalContext: "tax_season",
			Action:          "tax_planning",
		})
	}

	if len(nudges) > MaxNudges {
		nudges = nudges[:MaxNudges]
	}
	return nudges
}
