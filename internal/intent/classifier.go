// Package intent maps free-text queries to a fixed set of intents by
// keyword-overlap scoring.
package intent

import (
	"strings"

	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/models"
)

type category struct {
	name     models.IntentName
	keywords []string
}

// Declaration order breaks ties.
var categories = []category{
	{models.IntentSavings, []string{"save", "saving", "savings", "bachana", "bachat"}},
	{models.IntentInvestment, []string{"invest", "investment", "nivesh", "lagana"}},
	{models.IntentGoal, []string{"goal", "target", "lakshya", "uddeshya"}},
	{models.IntentScheme, []string{"scheme", "yojana", "government", "sarkar"}},
	{models.IntentWedding, []string{"wedding", "marriage", "shadi", "vivah"}},
	{models.IntentFestival, []string{"festival", "diwali", "holi", "eid", "tyohar"}},
	{models.IntentEducation, []string{"education", "study", "school", "college", "shiksha"}},
	{models.IntentGreeting, []string{"hello", "hi", "hey", "namaste", "namaskar"}},
	{models.IntentEmergency, []string{"emergency", "urgent", "apatkal"}},
	{models.IntentBudget, []string{"budget", "expense", "kharcha", "kharch"}},
}

// Score is one category's keyword overlap with a query.
type Score struct {
	Intent     models.IntentName `json:"intent"`
	Matches    int               `json:"matches"`
	Confidence float64           `json:"confidence"`
}

// Classifier is safe for concurrent use.
type Classifier struct {
	detector LanguageDetector
	logger   logger.Logger
}

// NewClassifier returns a classifier. A nil detector means ScriptDetector.
func NewClassifier(detector LanguageDetector, log logger.Logger) *Classifier {
	if detector == nil {
		detector = ScriptDetector{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Classifier{
		detector: detector,
		logger:   log.WithFields(map[string]interface{}{"component": "intent-classifier"}),
	}
}

// Scores returns every category's score in declared order.
func Scores(query string) []Score {
	q := strings.ToLower(query)
	out := make([]Score, len(categories))
	for i, c := range categories {
		n := 0
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				n++
			}
		}
		out[i] = Score{
			Intent:     c.name,
			Matches:    n,
			Confidence: float64(n) / float64(len(c.keywords)),
		}
	}
	return out
}

// Best picks the highest-confidence score, keeping the earliest on ties.
// When nothing matched it returns IntentOther with zero confidence.
func Best(scores []Score) Score {
	best := Score{Intent: models.IntentOther}
	for _, s := range scores {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	return best
}

// Classify never fails. An empty or unmatched query is IntentOther.
func (c *Classifier) Classify(query, lang string) models.Intent {
	best := Best(Scores(query))
	return models.Intent{
		Name:       best.Intent,
		Confidence: best.Confidence,
		Language:   c.ResolveLanguage(query, lang),
	}
}

// ResolveLanguage normalizes an explicit language or detects one when lang
// is empty or "auto". Anything unresolvable becomes English.
func (c *Classifier) ResolveLanguage(query, lang string) string {
	if lang != "" && !strings.EqualFold(lang, AutoLanguage) {
		if code := NormalizeLanguage(lang); code != "" {
			return code
		}
		c.logger.Warn("Unrecognised language code, using default", map[string]interface{}{
			"language": lang,
		})
		return "en"
	}

	code, err := c.detector.Detect(query)
	if err != nil || code == "" {
		c.logger.Warn("Language detection failed, using default", map[string]interface{}{
			"error": err,
		})
		return "en"
	}
	if n := NormalizeLanguage(code); n != "" {
		return n
	}
	return "en"
}
