// internal/workers/simulation/run-simulation/handler.go
package runsimulation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/engine"
	"finlight-engine/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "run-simulation"

type Handler struct {
	config       *Config
	engine       *engine.Engine
	profiles     profile.Provider
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler accepts a nil profiles provider; jobs then run against the
// userProfile variable only.
func NewHandler(config *Config, eng *engine.Engine, profiles profile.Provider, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       eng,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	now, err := camunda.JobDate(input.CurrentDate, h.now)
	if err != nil {
		return nil, err
	}

	userCtx, err := profile.Resolve(ctx, h.profiles, input.UserID, input.UserProfile)
	if err != nil {
		return nil, err
	}

	result, err := h.engine.RunSimulation(input.SimulationType, input.Inputs, userCtx, now)
	if err != nil {
		return nil, err
	}

	return &Output{
		Success:        true,
		SimulationType: input.SimulationType,
		Result:         result,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
