// Package scoring computes the financial habit score shown on a user's
// dashboard.
package scoring

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"finlight-engine/internal/culture"
	"finlight-engine/internal/models"
)

// RandomSource supplies the engagement components that are not yet backed
// by tracked activity. *rand.Rand satisfies it but is not safe for
// concurrent use; NewCalculator(nil) uses the locked global source.
type RandomSource interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// Component weights in the overall score.
const (
	savingsWeight   = 0.25
	spendingWeight  = 0.20
	learningWeight  = 0.15
	communityWeight = 0.15
	goalsWeight     = 0.15
	culturalWeight  = 0.10

	maxScore = 1000
)

type Component struct {
	Score  int    `json:"score"`
	Weight string `json:"weight"`
}

type Score struct {
	OverallScore           int                  `json:"overallScore"`
	SavingsScore           int                  `json:"savingsScore"`
	SpendingScore          int                  `json:"spendingScore"`
	LearningScore          int                  `json:"learningScore"`
	CommunityScore         int                  `json:"communityScore"`
	GoalAchievementScore   int                  `json:"goalAchievementScore"`
	CulturalAwarenessScore int                  `json:"culturalAwarenessScore"`
	CalculationDate        time.Time            `json:"calculationDate"`
	ScoreBreakdown         map[string]Component `json:"scoreBreakdown"`
	Recommendations        []string             `json:"recommendations"`
	Achievements           []string             `json:"achievements"`
}

type Calculator struct {
	rand RandomSource
}

func NewCalculator(src RandomSource) *Calculator {
	if src == nil {
		src = globalSource{}
	}
	return &Calculator{rand: src}
}

// between returns a value in [lo, hi].
func (c *Calculator) between(lo, hi int) int {
	return lo + c.rand.Intn(hi-lo+1)
}

// Calculate scores ctx, which may be nil for a user with no profile.
func (c *Calculator) Calculate(ctx *models.UserFinancialContext, now time.Time) Score {
	s := Score{
		SavingsScore:           savingsScore(ctx),
		SpendingScore:          spendingScore(ctx),
		LearningScore:          c.between(400, 800),
		CommunityScore:         c.between(300, 700),
		GoalAchievementScore:   goalScore(ctx),
		CulturalAwarenessScore: c.culturalScore(ctx),
		CalculationDate:        now,
	}

	s.OverallScore = int(float64(s.SavingsScore)*savingsWeight +
		float64(s.SpendingScore)*spendingWeight +
		float64(s.LearningScore)*learningWeight +
		float64(s.CommunityScore)*communityWeight +
		float64(s.GoalAchievementScore)*goalsWeight +
		float64(s.CulturalAwarenessScore)*culturalWeight)

	s.ScoreBreakdown = map[string]Component{
		"savings":   {s.SavingsScore, "25%"},
		"spending":  {s.SpendingScore, "20%"},
		"learning":  {s.LearningScore, "15%"},
		"community": {s.CommunityScore, "15%"},
		"goals":     {s.GoalAchievementScore, "15%"},
		"cultural":  {s.CulturalAwarenessScore, "10%"},
	}
	s.Recommendations = recommendations(s)
	s.Achievements = achievements(s.OverallScore, ctx)
	return s
}

// complete is false when income or expenses are missing or zero.
func complete(ctx *models.UserFinancialContext) bool {
	return ctx.HasProfile() && ctx.Income() > 0 && ctx.Expenses() > 0
}

func savingsScore(ctx *models.UserFinancialContext) int {
	if !complete(ctx) {
		return 300
	}
	rate := (ctx.Income() - ctx.Expenses()) / ctx.Income() * 100
	switch {
	case rate >= 30:
		return 900
	case rate >= 20:
		return 750
	case rate >= 10:
		return 600
	case rate >= 5:
		return 450
	}
	return 300
}

func spendingScore(ctx *models.UserFinancialContext) int {
	if !complete(ctx) {
		return 400
	}
	ratio := ctx.Expenses() / ctx.Income() * 100
	switch {
	case ratio <= 50:
		return 900
	case ratio <= 70:
		return 750
	case ratio <= 80:
		return 600
	case ratio <= 90:
		return 450
	}
	return 300
}

func goalScore(ctx *models.UserFinancialContext) int {
	if ctx == nil || len(ctx.Goals) == 0 {
		return 400
	}

	var progress float64
	completed := 0
	for _, g := range ctx.Goals {
		if g.IsCompleted {
			completed++
			progress += 100
			continue
		}
		progress += math.Min(g.Progress()*100, 100)
	}

	n := float64(len(ctx.Goals))
	score := int(progress/n*6 + float64(completed)/n*200)
	if score > maxScore {
		return maxScore
	}
	return score
}

// nonDefaultLanguage treats an unset preference as English.
func nonDefaultLanguage(ctx *models.UserFinancialContext) bool {
	lang := strings.TrimSpace(ctx.PreferredLanguage)
	return lang != "" && lang != culture.DefaultLanguage
}

func (c *Calculator) culturalScore(ctx *models.UserFinancialContext) int {
	score := 500
	if ctx != nil {
		if strings.TrimSpace(ctx.CulturalBackground) != "" {
			score += 100
		}
		if strings.TrimSpace(ctx.State) != "" {
			score += 100
		}
		if nonDefaultLanguage(ctx) {
			score += 100
		}
	}
	score += c.between(0, 200)
	if score > maxScore {
		return maxScore
	}
	return score
}
