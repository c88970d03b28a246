package advice

import (
	"testing"
	"time"

	"finlight-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(income, expenses float64) *models.UserFinancialContext {
	return &models.UserFinancialContext{
		FullName:        "Asha",
		MonthlyIncome:   models.Float(income),
		MonthlyExpenses: models.Float(expenses),
	}
}

func ask(name models.IntentName, query string, ctx *models.UserFinancialContext) Request {
	return Request{
		Intent:  models.Intent{Name: name, Language: "en"},
		Context: ctx,
		Query:   query,
		Now:     time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ==========================
// Incomplete profile contract
// ==========================

func TestGenerate_IncompleteProfileRequiresAction(t *testing.T) {
	g := NewGenerator(nil)

	tests := []struct {
		name   string
		intent models.IntentName
		query  string
		ctx    *models.UserFinancialContext
	}{
		{"savings without context", models.IntentSavings, "bachat", nil},
		{"savings with income only", models.IntentSavings, "save", &models.UserFinancialContext{MonthlyIncome: models.Float(40000)}},
		{"investment without profile", models.IntentInvestment, "invest", &models.UserFinancialContext{}},
		{"savings amount without income", models.IntentSavings, "how much should I save", nil},
		{"savings places without profile", models.IntentSavings, "where should I save", nil},
		{"savings places in hinglish without profile", models.IntentSavings, "bachat kahan karu", nil},
		{"savings places with expenses only", models.IntentSavings, "where to save", &models.UserFinancialContext{MonthlyExpenses: models.Float(20000)}},
		{"goals without any", models.IntentGoal, "goal", profile(50000, 30000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.Generate(ask(tt.intent, tt.query, tt.ctx))
			assert.True(t, resp.ActionRequired)
			assert.NotEmpty(t, resp.Text)
			assert.Equal(t, models.SourceRules, resp.Source)
		})
	}

	for _, q := range []string{"anything at all", "where should I save", "kitna bachau"} {
		resp := g.Generate(ask(models.IntentSavings, q, nil))
		assert.Equal(t, "Let me help you create a financial profile first to give you personalized savings advice.", resp.Text, q)
		assert.Equal(t, []string{"Create financial profile", "Set savings goals"}, resp.Suggestions, q)
	}
}

// ==========================
// Savings
// ==========================

func TestGenerate_SavingsBands(t *testing.T) {
	g := NewGenerator(nil)

	tests := []struct {
		name     string
		ctx      *models.UserFinancialContext
		wantText string
	}{
		{
			name:     "low rate",
			ctx:      profile(50000, 47000),
			wantText: "Your current savings rate is 6.0%. I recommend aiming for at least 20% of your income. Let's start with small steps.",
		},
		{
			name:     "middle rate",
			ctx:      profile(50000, 42500),
			wantText: "Good start! Your savings rate is 15.0%. Let's work on increasing it to 20-30%.",
		},
		{
			name:     "high rate",
			ctx:      profile(50000, 30000),
			wantText: "Excellent! Your savings rate of 40.0% is great. Let's optimize your investments.",
		},
		{
			name:     "zero expenses counts as unknown rate",
			ctx:      profile(50000, 0),
			wantText: "Your current savings rate is 0.0%. I recommend aiming for at least 20% of your income. Let's start with small steps.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.Generate(ask(models.IntentSavings, "help me save", tt.ctx))
			assert.Equal(t, tt.wantText, resp.Text)
			assert.False(t, resp.ActionRequired)
			assert.Len(t, resp.Suggestions, 3)
		})
	}
}

func TestGenerate_SavingsStatePattern(t *testing.T) {
	ctx := profile(50000, 30000)
	ctx.State = "Tamil Nadu"

	resp := NewGenerator(nil).Generate(ask(models.IntentSavings, "save", ctx))
	assert.Equal(t, "Excellent! Your savings rate of 40.0% is great. Let's optimize your investments. Based on Tamil Nadu financial patterns, consider gold, fixed_deposits.", resp.Text)
}

func TestGenerate_SavingsSubTopics(t *testing.T) {
	g := NewGenerator(nil)

	resp := g.Generate(ask(models.IntentSavings, "How much should I save?", profile(50000, 30000)))
	assert.Equal(t, "Based on your income of ₹50,000, I recommend saving at least ₹10,000 per month (20%). Start with ₹5,000 if this seems too much.", resp.Text)
	assert.False(t, resp.ActionRequired)

	resp = g.Generate(ask(models.IntentSavings, "How much should I save?", &models.UserFinancialContext{
		MonthlyIncome:   models.Float(0),
		MonthlyExpenses: models.Float(10000),
	}))
	assert.True(t, resp.ActionRequired)
	assert.Contains(t, resp.Text, "I need to know your monthly income")

	resp = g.Generate(ask(models.IntentSavings, "bachat kahan karu", profile(50000, 30000)))
	assert.Contains(t, resp.Text, "best places to save your money in India")
	assert.False(t, resp.ActionRequired)
	assert.Len(t, resp.Suggestions, 4)
}

// ==========================
// Investment
// ==========================

func TestGenerate_Investment(t *testing.T) {
	g := NewGenerator(nil)

	islamic := profile(60000, 40000)
	islamic.CulturalBackground = "Islamic"
	resp := g.Generate(ask(models.IntentInvestment, "where to invest", islamic))
	assert.Equal(t, "Based on your islamic background, I recommend sukuk, shariah_compliant_mutual_funds.", resp.Text)
	assert.Equal(t, []string{"sukuk", "shariah_compliant_mutual_funds", "gold"}, resp.Suggestions)

	hindu := profile(60000, 40000)
	hindu.CulturalBackground = "hindu"
	resp = g.Generate(ask(models.IntentInvestment, "invest", hindu))
	assert.Equal(t, []string{"Mutual funds", "Gold investment", "Fixed deposits"}, resp.Suggestions)

	resp = g.Generate(ask(models.IntentInvestment, "invest", profile(60000, 40000)))
	assert.Equal(t, "I recommend starting with a balanced portfolio based on your risk tolerance.", resp.Text)

	resp = g.Generate(ask(models.IntentInvestment, "invest via SIP", nil))
	assert.Contains(t, resp.Text, "Mutual funds are great")
	resp = g.Generate(ask(models.IntentInvestment, "share market nivesh", nil))
	assert.Contains(t, resp.Text, "Stock investing")
	resp = g.Generate(ask(models.IntentInvestment, "sona mein nivesh", nil))
	assert.Contains(t, resp.Text, "Gold is a traditional Indian investment")
}

// ==========================
// Planning intents
// ==========================

func TestGenerate_Goals(t *testing.T) {
	ctx := profile(50000, 30000)
	ctx.Goals = []models.SavingsGoal{
		{Title: "Diwali", TargetAmount: 20000, CurrentAmount: 10000},
		{Title: "Bike", TargetAmount: 80000, CurrentAmount: 8000},
		{Title: "Done", TargetAmount: 1000, CurrentAmount: 1000, IsCompleted: true},
		{Title: "Laptop", TargetAmount: 60000, CurrentAmount: 30000},
		{Title: "Trip", TargetAmount: 40000, CurrentAmount: 20000},
	}

	resp := NewGenerator(nil).Generate(ask(models.IntentGoal, "my goals", ctx))
	assert.Equal(t, "You have 4 active goals with 34.0% overall progress. Focus on 'Bike' which needs more attention.", resp.Text)
	assert.Equal(t, []string{"Add to Diwali", "Add to Bike", "Add to Laptop"}, resp.Suggestions)
}

func TestGenerate_Wedding(t *testing.T) {
	g := NewGenerator(nil)

	ctx := profile(50000, 30000)
	ctx.CulturalBackground = "Punjabi Sikh"
	resp := g.Generate(ask(models.IntentWedding, "shadi", ctx))
	assert.Equal(t, "Wedding planning requires careful budgeting. Budget for Anand Karaj ceremony and community feast.", resp.Text)

	resp = g.Generate(ask(models.IntentWedding, "shadi", nil))
	assert.Equal(t, "Wedding planning requires careful budgeting. ", resp.Text)
	assert.Len(t, resp.Suggestions, 3)
}

func TestGenerate_Festival(t *testing.T) {
	g := NewGenerator(nil)

	req := ask(models.IntentFestival, "diwali", profile(50000, 30000))
	req.Now = time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC)
	resp := g.Generate(req)
	assert.Equal(t, "Diwali is approaching! Start saving for Diwali shopping and decorations Consider setting aside ₹2,500 monthly for festival expenses.", resp.Text)
	assert.Len(t, resp.Suggestions, 3)

	req = ask(models.IntentFestival, "tyohar", nil)
	req.Now = time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)
	resp = g.Generate(req)
	assert.Equal(t, "Plan ahead for upcoming festivals to avoid financial stress.", resp.Text)
}

func TestGenerate_Education(t *testing.T) {
	g := NewGenerator(nil)

	ctx := profile(50000, 30000)
	ctx.Dependents = 2
	resp := g.Generate(ask(models.IntentEducation, "school", ctx))
	assert.Equal(t, "Education is a great investment! With 2 dependents, consider starting a Sukanya Samriddhi Yojana or education SIP.", resp.Text)

	resp = g.Generate(ask(models.IntentEducation, "college", nil))
	assert.Equal(t, []string{"Skill development fund", "Higher education loan", "Professional courses"}, resp.Suggestions)
}

func TestGenerate_Scheme(t *testing.T) {
	resp := NewGenerator(nil).Generate(ask(models.IntentScheme, "yojana", nil))
	assert.Contains(t, resp.Text, "PM Kisan Samman Nidhi and Pradhan Mantri Jan Dhan Yojana")
}

// ==========================
// Greeting, emergency, budget, general
// ==========================

func TestGenerate_GreetingLocalized(t *testing.T) {
	g := NewGenerator(nil)

	req := ask(models.IntentGreeting, "namaste", profile(1, 1))
	req.Language = "hi"
	resp := g.Generate(req)
	assert.Contains(t, resp.Text, "नमस्ते Asha!")
	assert.Equal(t, "मेरी बचत देखें", resp.Suggestions[0])

	req.Language = "fr"
	resp = g.Generate(req)
	assert.Equal(t, "Hello Asha! I'm your financial assistant. How can I help you today?", resp.Text)
}

func TestGenerate_EmergencyFund(t *testing.T) {
	g := NewGenerator(nil)

	resp := g.Generate(ask(models.IntentEmergency, "emergency", profile(50000, 35000)))
	assert.Contains(t, resp.Text, "Build an emergency fund of ₹210,000 (6 months of expenses).")

	resp = g.Generate(ask(models.IntentEmergency, "emergency", nil))
	assert.Contains(t, resp.Text, "Emergency fund should cover 6 months")
	assert.Len(t, resp.Suggestions, 4)
}

func TestGenerate_Budget(t *testing.T) {
	g := NewGenerator(nil)

	resp := g.Generate(ask(models.IntentBudget, "budget", profile(50000, 45000)))
	assert.Contains(t, resp.Text, " Your current expense ratio is 90.0% - try to reduce it to 70-80% maximum.")

	resp = g.Generate(ask(models.IntentBudget, "budget", profile(50000, 30000)))
	assert.NotContains(t, resp.Text, "expense ratio")
}

func TestGenerate_General(t *testing.T) {
	g := NewGenerator(nil)

	tests := []struct {
		query string
		want  string
	}{
		{"please madad karo", "I'm here to help you with financial planning, Asha!"},
		{"paisa kaise badhaye", "Money management is about making smart choices."},
		{"mera bhavishya", "Planning for the future is wise!"},
		{"what's up", "Hello Asha! I can help you with savings"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := g.Generate(ask(models.IntentOther, tt.query, profile(1, 1)))
			assert.Contains(t, resp.Text, tt.want)
			assert.Equal(t, []string{"Check my savings", "Investment options", "Government schemes", "Set new goal"}, resp.Suggestions)
		})
	}

	resp := g.Generate(ask(models.IntentOther, "hmm", nil))
	assert.Contains(t, resp.Text, "Hello friend!")
}

func TestGenerate_SuggestionsNeverExceedLimit(t *testing.T) {
	g := NewGenerator(nil)
	intents := []models.IntentName{
		models.IntentSavings, models.IntentInvestment, models.IntentGoal, models.IntentScheme,
		models.IntentWedding, models.IntentFestival, models.IntentEducation, models.IntentGreeting,
		models.IntentEmergency, models.IntentBudget, models.IntentOther, models.IntentName("unknown"),
	}
	for _, name := range intents {
		resp := g.Generate(ask(name, "", profile(50000, 30000)))
		require.NotEmpty(t, resp.Text, name)
		assert.LessOrEqual(t, len(resp.Suggestions), models.MaxSuggestions, name)
	}
}
