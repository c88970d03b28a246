// internal/profile/store.go
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finlight-engine/internal/common/database"
	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/common/metrics"
	"finlight-engine/internal/models"
)

const cacheKeyPrefix = "finlight:profile:"

// CacheKey returns the Redis key a user's profile is cached under.
func CacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

const profileQuery = `SELECT u.id, u.full_name, u.state, u.cultural_background, u.preferred_language,
	fp.monthly_income, fp.monthly_expenses, fp.existing_liabilities, fp.family_size,
	fp.dependents, fp.income_type, fp.location
FROM users u
LEFT JOIN financial_profiles fp ON fp.user_id = u.id
WHERE u.id = $1`

const goalsQuery = `SELECT id, title, category, target_amount, current_amount, target_date, is_completed
FROM savings_goals
WHERE user_id = $1
ORDER BY id`

const contactQuery = `SELECT email, phone, full_name, preferred_language FROM users WHERE id = $1`

// Contact is where nudges for a user are delivered.
type Contact struct {
	Email    string
	Phone    string
	FullName string
	Language string
}

// Store reads financial profiles from Postgres through a Redis JSON cache.
// A nil cache disables caching.
type Store struct {
	db     *sql.DB
	cache  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(db *sql.DB, cache *database.RedisClient, ttl time.Duration, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Store{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

// Get returns PROFILE_NOT_FOUND when the user does not exist. A user
// without a financial profile row comes back with nil income and expenses.
// Cache failures are logged and fall through to the database.
func (s *Store) Get(ctx context.Context, userID string) (*models.UserFinancialContext, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewInvalidInputError("userId is required")
	}

	if p, ok := s.fromCache(ctx, userID); ok {
		return p, nil
	}

	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, CacheKey(userID), p, s.ttl); err != nil {
			s.logger.Warn("Failed to cache profile", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}
	return p, nil
}

func (s *Store) fromCache(ctx context.Context, userID string) (*models.UserFinancialContext, bool) {
	if s.cache == nil {
		return nil, false
	}

	var p models.UserFinancialContext
	err := s.cache.GetJSON(ctx, CacheKey(userID), &p)
	switch {
	case err == nil:
		metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
		return &p, true
	case errors.Is(err, database.ErrCacheMiss):
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("Profile cache read failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
	return nil, false
}

func (s *Store) load(ctx context.Context, userID string) (*models.UserFinancialContext, error) {
	var (
		id, fullName                                 string
		state, background, language, incomeType, loc sql.NullString
		income, expenses, liabilities                sql.NullFloat64
		familySize, dependents                       sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, profileQuery, userID).Scan(
		&id, &fullName, &state, &background, &language,
		&income, &expenses, &liabilities, &familySize,
		&dependents, &incomeType, &loc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(userID, err)
	}

	p := &models.UserFinancialContext{
		UserID:              id,
		FullName:            fullName,
		State:               state.String,
		CulturalBackground:  background.String,
		PreferredLanguage:   language.String,
		ExistingLiabilities: liabilities.Float64,
		FamilySize:          int(familySize.Int64),
		Dependents:          int(dependents.Int64),
		IncomeType:          models.IncomeType(incomeType.String),
		Location:            loc.String,
	}
	if income.Valid {
		p.MonthlyIncome = models.Float(income.Float64)
	}
	if expenses.Valid {
		p.MonthlyExpenses = models.Float(expenses.Float64)
	}

	goals, err := s.goals(ctx, userID)
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(userID, err)
	}
	p.Goals = goals
	return p, nil
}

func (s *Store) goals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx, goalsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query savings goals: %w", err)
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var (
			g        models.SavingsGoal
			category sql.NullString
			current  sql.NullFloat64
			due      sql.NullTime
		)
		if err := rows.Scan(&g.ID, &g.Title, &category, &g.TargetAmount, &current, &due, &g.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		g.Category = category.String
		g.CurrentAmount = current.Float64
		if due.Valid {
			g.TargetDate = due.Time.Format("2006-01-02")
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings goals: %w", err)
	}
	return goals, nil
}

// Contact is never cached; it is read once per delivery.
func (s *Store) Contact(ctx context.Context, userID string) (*Contact, error) {
	var (
		c               Contact
		phone, language sql.NullString
	)
	err := s.db.QueryRowContext(ctx, contactQuery, userID).Scan(&c.Email, &phone, &c.FullName, &language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(userID, err)
	}
	c.Phone = phone.String
	c.Language = language.String
	return &c, nil
}

// Invalidate drops the cached profile so the next Get reloads it.
func (s *Store) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, CacheKey(userID))
}
