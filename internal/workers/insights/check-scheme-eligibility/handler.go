// internal/workers/insights/check-scheme-eligibility/handler.go
package checkschemeeligibility

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/eligibility"
	"finlight-engine/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "check-scheme-eligibility"

type Handler struct {
	config       *Config
	checker      *eligibility.Checker
	profiles     profile.Provider
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, checker *eligibility.Checker, profiles profile.Provider, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		checker:      checker,
		profiles:     profiles,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.SchemeName) == "" {
		return nil, errors.NewInvalidInputError("schemeName is required")
	}
	if input.Age != nil && *input.Age < 0 {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("age must be >= 0, got %d", *input.Age))
	}

	userCtx, err := profile.Resolve(ctx, h.profiles, input.UserID, input.UserContext)
	if err != nil {
		return nil, err
	}
	if err := userCtx.Validate(); err != nil {
		return nil, err
	}

	res, err := h.checker.Check(eligibility.Request{
		SchemeName: input.SchemeName,
		Age:        input.Age,
		Context:    userCtx,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("eligibility checked", map[string]interface{}{
		"scheme":     res.Scheme.Name,
		"eligible":   res.Eligible,
		"confidence": res.Confidence,
	})

	return &Output{UserID: input.UserID, Result: *res}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
