package advice

import (
	"fmt"

	"finlight-engine/internal/models"
)

func (g *Generator) greeting(req Request) models.AdviceResponse {
	lang := req.language()
	return reply(g.tables.Greeting(lang, req.displayName()), g.tables.LanguageSuggestions(lang)...)
}

// general answers queries no intent matched. q is already lower-cased.
func (g *Generator) general(req Request, q string) models.AdviceResponse {
	name := req.displayName()

	var text string
	switch {
	case containsAny(q, "help", "madad"):
		text = fmt.Sprintf("I'm here to help you with financial planning, %s! I can assist with savings, investments, goal planning, government schemes, and more. What specific area would you like guidance on?", name)
	case containsAny(q, "money", "paisa"):
		text = "Money management is about making smart choices. Start with budgeting, build an emergency fund, then invest for your goals. Remember: spend less than you earn, invest the difference wisely!"
	case containsAny(q, "future", "bhavishya"):
		text = "Planning for the future is wise! Focus on: 1) Emergency fund, 2) Health insurance, 3) Life insurance, 4) Retirement planning, 5) Children's education. Start early to benefit from compounding!"
	default:
		text = fmt.Sprintf("Hello %s! I can help you with savings, investments, budgeting, goal planning, and government schemes. What would you like to know about your finances today?", name)
	}
	return reply(text, g.tables.LanguageSuggestions(req.language())...)
}
