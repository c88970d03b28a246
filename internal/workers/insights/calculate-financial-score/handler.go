// internal/workers/insights/calculate-financial-score/handler.go
package calculatefinancialscore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/profile"
	"finlight-engine/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "calculate-financial-score"

type Handler struct {
	config       *Config
	calculator   *scoring.Calculator
	profiles     profile.Provider
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

func NewHandler(config *Config, calculator *scoring.Calculator, profiles profile.Provider, log logger.Logger) *Handler {
	if calculator == nil {
		calculator = scoring.NewCalculator(nil)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		calculator:   calculator,
		profiles:     profiles,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	if err := camunda.CompleteJob(context.Background(), client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

// execute scores users without a stored profile on the default bands
// instead of failing.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	now, err := camunda.JobDate(input.CurrentDate, h.now)
	if err != nil {
		return nil, err
	}

	userCtx, err := profile.Resolve(ctx, h.profiles, input.UserID, input.UserContext)
	if err != nil {
		return nil, err
	}
	if err := userCtx.Validate(); err != nil {
		return nil, err
	}

	complete := userCtx.Income() > 0 && userCtx.Expenses() > 0
	if !complete {
		h.logger.Info("scoring incomplete profile with default bands", map[string]interface{}{
			"userId": input.UserID,
		})
	}

	return &Output{
		UserID:          input.UserID,
		ProfileComplete: complete,
		Score:           h.calculator.Calculate(userCtx, now),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
