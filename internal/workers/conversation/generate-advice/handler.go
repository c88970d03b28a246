// internal/workers/conversation/generate-advice/handler.go
package generateadvice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "generate-advice"

type Handler struct {
	config       *Config
	engine       *engine.Engine
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

func NewHandler(config *Config, eng *engine.Engine, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       eng,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

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
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidInputError("query is required")
	}

	now, err := camunda.JobDate(input.CurrentDate, h.now)
	if err != nil {
		return nil, err
	}

	resp, err := h.engine.Respond(ctx, engine.Query{
		UserID:   input.UserID,
		Text:     input.Query,
		Language: input.Language,
		Context:  input.UserContext,
		Now:      now,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("advice generated", map[string]interface{}{
		"intent": resp.Intent.Name,
		"source": resp.Advice.Source,
	})

	return &Output{
		Text:           resp.Advice.Text,
		Suggestions:    resp.Advice.Suggestions,
		ActionRequired: resp.Advice.ActionRequired,
		Intent:         string(resp.Intent.Name),
		Confidence:     resp.Intent.Confidence,
		Source:         resp.Advice.Source,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
