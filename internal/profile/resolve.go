package profile

import (
	"context"
	"strings"

	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/models"
)

// Provider loads a user's financial context. Store implements it.
type Provider interface {
	Get(ctx context.Context, userID string) (*models.UserFinancialContext, error)
}

// Resolve picks the context a job runs against: explicit when the caller
// sent one, otherwise the stored profile for userID. An unknown user
// resolves to nil so callers fall back to their no-profile behavior.
func Resolve(ctx context.Context, p Provider, userID string, explicit *models.UserFinancialContext) (*models.UserFinancialContext, error) {
	if explicit != nil || p == nil || strings.TrimSpace(userID) == "" {
		return explicit, nil
	}

	userCtx, err := p.Get(ctx, userID)
	if apperrors.HasCode(err, apperrors.ErrCodeProfileNotFound) {
		return nil, nil
	}
	return userCtx, err
}
