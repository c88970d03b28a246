// Package genai holds the generative-text collaborators used when the rule
// engine has nothing specific to say.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finlight-engine/internal/common/config"
	"finlight-engine/internal/common/logger"
)

// ErrEmptyResponse is returned when a provider answers with blank text.
var ErrEmptyResponse = errors.New("generative provider returned empty text")

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// New builds the configured generator. It returns nil, nil when generation
// is disabled or the provider is "none".
func New(ctx context.Context, cfg config.GenAIConfig, log logger.Logger) (Generator, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	switch cfg.Provider {
	case config.GenAIProviderHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("apis.genai.base_url is required for provider %q", cfg.Provider)
		}
		return NewHTTPClient(cfg.BaseURL, cfg.APIKey, timeout, cfg.MaxRetries), nil
	case config.GenAIProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case config.GenAIProviderNone, "":
		log.Info("Generative enhancement disabled", map[string]interface{}{"provider": cfg.Provider})
		return nil, nil
	}
	return nil, fmt.Errorf("unknown generative provider %q", cfg.Provider)
}

// Context is what a prompt may say about the user.
type Context struct {
	Name            string
	Language        string
	Query           string
	MonthlyIncome   *float64
	MonthlyExpenses *float64
	State           string
}

// BuildPrompt asks for a short, practical answer in the user's language.
func BuildPrompt(c Context) string {
	var b strings.Builder
	b.WriteString("You are a friendly financial assistant for Indian households. ")
	b.WriteString("Answer in 3 to 5 short sentences with practical, culturally aware advice. ")
	b.WriteString("Use rupee amounts and avoid recommending specific stocks.\n")

	lang := c.Language
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(&b, "Reply in language code: %s\n", lang)
	if c.Name != "" {
		fmt.Fprintf(&b, "User name: %s\n", c.Name)
	}
	if c.State != "" {
		fmt.Fprintf(&b, "State: %s\n", c.State)
	}
	if c.MonthlyIncome != nil {
		fmt.Fprintf(&b, "Monthly income: ₹%.0f\n", *c.MonthlyIncome)
	}
	if c.MonthlyExpenses != nil {
		fmt.Fprintf(&b, "Monthly expenses: ₹%.0f\n", *c.MonthlyExpenses)
	}
	fmt.Fprintf(&b, "Question: %s", strings.TrimSpace(c.Query))
	return b.String()
}
