package advice

import (
	"fmt"
	"strings"

	"finlight-engine/internal/finance"
	"finlight-engine/internal/models"
)

func (g *Generator) savings(req Request) models.AdviceResponse {
	ctx := req.Context
	rate := 0.0
	if ctx.Income() > 0 && ctx.Expenses() > 0 {
		rate = finance.PercentOf(ctx.CurrentSavings(), ctx.Income())
	}

	var resp models.AdviceResponse
	switch {
	case rate < 10:
		resp = reply(fmt.Sprintf("Your current savings rate is %.1f%%. I recommend aiming for at least 20%% of your income. Let's start with small steps.", rate),
			"Track expenses", "Create budget", "Find areas to cut costs")
	case rate < 20:
		resp = reply(fmt.Sprintf("Good start! Your savings rate is %.1f%%. Let's work on increasing it to 20-30%%.", rate),
			"Automate savings", "Increase SIP amount", "Review subscriptions")
	default:
		resp = reply(fmt.Sprintf("Excellent! Your savings rate of %.1f%% is great. Let's optimize your investments.", rate),
			"Diversify investments", "Consider tax-saving options", "Review portfolio")
	}

	if pattern, ok := g.tables.State(ctx.State); ok && ctx.State != "" {
		prefs := pattern.InvestmentPreferences
		if len(prefs) > 2 {
			prefs = prefs[:2]
		}
		resp.Text += fmt.Sprintf(" Based on %s financial patterns, consider %s.", ctx.State, strings.Join(prefs, ", "))
	}
	return resp
}

// createProfile answers every savings question asked before income and
// expenses are both known.
func createProfile() models.AdviceResponse {
	return prompt("Let me help you create a financial profile first to give you personalized savings advice.",
		"Create financial profile", "Set savings goals")
}

func (g *Generator) savingsAmount(req Request) models.AdviceResponse {
	income := req.Context.Income()
	if income <= 0 {
		return prompt("To determine how much you should save, I need to know your monthly income. The general rule is to save 20-30% of your income.",
			"Update income details", "Create budget plan", "Set savings goal")
	}

	recommended := income * 0.2
	return reply(fmt.Sprintf("Based on your income of %s, I recommend saving at least %s per month (20%%). Start with %s if this seems too much.",
		finance.Rupees(income), finance.Rupees(recommended), finance.Rupees(recommended/2)),
		"Set up auto-transfer", "Create SIP", "Track expenses")
}

func savingsOptions() models.AdviceResponse {
	return reply("Here are the best places to save your money in India: 1) High-yield savings accounts (3-4% interest), 2) Fixed Deposits (5-7% interest), 3) PPF for long-term (7.1% tax-free), 4) ELSS mutual funds for tax saving, 5) Gold for inflation protection.",
		"Compare bank rates", "Open PPF account", "Start SIP", "Buy digital gold")
}

func emergencyFund(req Request) models.AdviceResponse {
	suggestions := []string{"Calculate emergency fund", "Open liquid fund", "High-yield savings account", "Set monthly target"}

	if exp := req.Context.Expenses(); exp > 0 {
		return reply(fmt.Sprintf("Build an emergency fund of %s (6 months of expenses). Keep it in: 1) High-yield savings account, 2) Liquid mutual funds, 3) Fixed deposits with premature withdrawal facility. This should be your first financial priority!", finance.Rupees(exp*6)),
			suggestions...)
	}
	return reply("Emergency fund should cover 6 months of your living expenses. Keep it easily accessible in savings account or liquid funds. This protects you from unexpected job loss, medical emergencies, or major repairs.",
		suggestions...)
}

func budget(req Request) models.AdviceResponse {
	text := "Follow the 50-30-20 rule: 50% for needs (rent, food, utilities), 30% for wants (entertainment, dining out), 20% for savings and investments. Track expenses using apps like Money Manager or ET Money. Review monthly and adjust as needed."

	income, exp := req.Context.Income(), req.Context.Expenses()
	if income > 0 && exp > 0 {
		if ratio := finance.PercentOf(exp, income); ratio > 80 {
			text += fmt.Sprintf(" Your current expense ratio is %.1f%% - try to reduce it to 70-80%% maximum.", ratio)
		}
	}
	return reply(text, "Download expense tracker", "Categorize expenses", "Set spending limits", "Review subscriptions")
}
