package scoring

import (
	"strings"

	"finlight-engine/internal/models"
)

const maxRecommendations = 3

func recommendations(s Score) []string {
	checks := []struct {
		low  bool
		text string
	}{
		{s.SavingsScore < 600, "Increase your savings rate to at least 20% of income"},
		{s.SpendingScore < 600, "Review and optimize your monthly expenses"},
		{s.LearningScore < 500, "Engage more with financial learning content"},
		{s.CommunityScore < 500, "Join community circles and participate in challenges"},
		{s.GoalAchievementScore < 600, "Set clear financial goals and track progress regularly"},
		{s.CulturalAwarenessScore < 600, "Explore culturally relevant financial products and festivals savings"},
	}

	out := []string{}
	for _, c := range checks {
		if c.low && len(out) < maxRecommendations {
			out = append(out, c.text)
		}
	}
	return out
}

func achievements(overall int, ctx *models.UserFinancialContext) []string {
	out := []string{}
	switch {
	case overall >= 800:
		out = append(out, "🏆 Financial Champion - Excellent overall score!")
	case overall >= 700:
		out = append(out, "🥇 Financial Expert - Great financial management!")
	case overall >= 600:
		out = append(out, "🥈 Financial Learner - Good progress on financial goals!")
	}

	if ctx != nil && strings.TrimSpace(ctx.CulturalBackground) != "" {
		out = append(out, "🎭 Cultural Awareness - Profile includes cultural preferences")
	}
	if ctx != nil && nonDefaultLanguage(ctx) {
		out = append(out, "🗣️ Multilingual User - Using native language support")
	}
	return out
}
