package advice

import (
	"fmt"
	"strings"

	"finlight-engine/internal/models"
)

func (g *Generator) investment(req Request) models.AdviceResponse {
	ctx := req.Context
	if !ctx.HasProfile() {
		return prompt("I need to understand your financial profile first to suggest suitable investments.",
			"Complete financial profile", "Risk assessment")
	}

	bg := strings.ToLower(strings.TrimSpace(ctx.CulturalBackground))
	if bg == "" {
		return reply("I recommend starting with a balanced portfolio based on your risk tolerance.",
			"SIP in mutual funds", "Emergency fund", "Tax-saving investments")
	}

	filter, ok := g.tables.ReligiousFilter(bg)
	if !ok {
		return reply("Based on your profile, I recommend a diversified portfolio with mutual funds, gold, and fixed deposits.",
			"Mutual funds", "Gold investment", "Fixed deposits")
	}

	preferred := filter.PreferredInstruments
	top := preferred
	if len(top) > 2 {
		top = top[:2]
	}
	suggestions := preferred
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return reply(fmt.Sprintf("Based on your %s background, I recommend %s.", bg, strings.Join(top, ", ")),
		append([]string(nil), suggestions...)...)
}

func mutualFunds() models.AdviceResponse {
	return reply("Mutual funds are great for long-term wealth creation! Start with: 1) Large-cap funds for stability, 2) Mid-cap funds for growth, 3) ELSS funds for tax saving. Begin with SIP of ₹1,000-5,000 monthly. Diversify across 3-4 good funds.",
		"Start SIP", "Compare fund performance", "Tax-saving funds", "Risk assessment")
}

func stocks() models.AdviceResponse {
	return reply("Stock investing requires research and patience. Start with: 1) Blue-chip companies like TCS, Reliance, HDFC Bank, 2) Index funds for diversification, 3) Only invest money you won't need for 5+ years, 4) Never invest borrowed money. Learn before you invest!",
		"Learn stock basics", "Open demat account", "Start with index funds", "Research companies")
}

func gold() models.AdviceResponse {
	return reply("Gold is a traditional Indian investment for inflation protection. Options: 1) Digital gold (convenient, no storage issues), 2) Gold ETFs (traded like stocks), 3) Gold mutual funds, 4) Physical gold (jewelry, coins). Limit to 5-10% of your portfolio.",
		"Buy digital gold", "Gold ETF options", "Compare gold schemes", "Festival gold plans")
}
