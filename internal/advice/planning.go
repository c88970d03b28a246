package advice

import (
	"fmt"
	"strings"

	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"
)

func goals(req Request) models.AdviceResponse {
	active := req.Context.ActiveGoals()
	if len(active) == 0 {
		return prompt("You don't have any active savings goals. Let's create some based on your priorities!",
			"Create emergency fund", "Plan for festival", "Wedding savings")
	}

	var target, current float64
	least := active[0]
	for _, g := range active {
		target += g.TargetAmount
		current += g.CurrentAmount
		if g.Progress() < least.Progress() {
			least = g
		}
	}

	var suggestions []string
	for i, g := range active {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, "Add to "+g.Title)
	}

	return reply(fmt.Sprintf("You have %d active goals with %.1f%% overall progress. Focus on '%s' which needs more attention.",
		len(active), finance.PercentOf(current, target), least.Title), suggestions...)
}

func schemes() models.AdviceResponse {
	return reply("Based on your profile, you might be eligible for government schemes like PM Kisan Samman Nidhi and Pradhan Mantri Jan Dhan Yojana. These schemes offer financial benefits and support.",
		"Check eligibility", "Browse all schemes", "Apply online")
}

func wedding(req Request) models.AdviceResponse {
	text := "Wedding planning requires careful budgeting. "

	var bg string
	if req.Context != nil {
		bg = strings.ToLower(req.Context.CulturalBackground)
	}
	switch {
	case strings.Contains(bg, "hindu"):
		text += "Consider gold purchases for Dhanteras, venue booking, and traditional ceremonies."
	case strings.Contains(bg, "muslim"):
		text += "Plan for Nikah ceremony, Walima, and Mahr arrangements."
	case strings.Contains(bg, "sikh"):
		text += "Budget for Anand Karaj ceremony and community feast."
	}
	return reply(text, "Create wedding fund", "Gold investment plan", "Venue budget calculator")
}

func (g *Generator) festival(req Request) models.AdviceResponse {
	var resp models.AdviceResponse
	if f, ok := g.tables.UpcomingFestival(req.Now); ok {
		suggestions := f.Suggestions
		if len(suggestions) > 3 {
			suggestions = suggestions[:3]
		}
		resp = reply(fmt.Sprintf("%s is approaching! %s", f.Name, f.Suggestions[0]), append([]string(nil), suggestions...)...)
	} else {
		resp = reply("Plan ahead for upcoming festivals to avoid financial stress.",
			"Create festival fund", "Monthly festival savings", "Budget planner")
	}

	if income := req.Context.Income(); income > 0 {
		resp.Text += fmt.Sprintf(" Consider setting aside %s monthly for festival expenses.", finance.Rupees(income*0.05))
	}
	return resp
}

func education(req Request) models.AdviceResponse {
	text := "Education is a great investment! "

	if req.Context != nil && req.Context.Dependents > 0 {
		return reply(text+fmt.Sprintf("With %d dependents, consider starting a Sukanya Samriddhi Yojana or education SIP.", req.Context.Dependents),
			"Sukanya Samriddhi Yojana", "Education SIP", "Child insurance")
	}
	return reply(text+"Consider skill development courses or higher education planning.",
		"Skill development fund", "Higher education loan", "Professional courses")
}
