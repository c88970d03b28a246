package engine

import (
	"context"
	"strings"
	"time"

	"finlight-engine/internal/models"
	"finlight-engine/internal/profile"
)

type Query struct {
	UserID   string
	Text     string
	Language string
	// Context overrides the stored profile when set.
	Context *models.UserFinancialContext
	Now     time.Time
}

type Response struct {
	Intent models.Intent         `json:"intent"`
	Advice models.AdviceResponse `json:"advice"`
}

// Respond looks up the profile, classifies the query and answers it. An
// unknown user is answered without a profile; a failed lookup is returned
// so the caller can retry.
func (e *Engine) Respond(ctx context.Context, q Query) (*Response, error) {
	userCtx, err := profile.Resolve(ctx, e.profiles, q.UserID, q.Context)
	if err != nil {
		return nil, err
	}
	if userCtx == nil && q.Context == nil && e.profiles != nil && strings.TrimSpace(q.UserID) != "" {
		e.logger.Info("No profile for user, answering without one", map[string]interface{}{
			"userId": q.UserID,
		})
	}

	lang := q.Language
	if lang == "" && userCtx != nil {
		lang = userCtx.PreferredLanguage
	}

	in := e.ClassifyIntent(q.Text, lang)
	resp, err := e.GenerateAdvice(ctx, AdviceRequest{
		Intent:  in,
		Context: userCtx,
		Query:   q.Text,
		Now:     q.Now,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Intent: in, Advice: resp}, nil
}
