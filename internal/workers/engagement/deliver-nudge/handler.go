// internal/workers/engagement/deliver-nudge/handler.go
package delivernudge

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	awsclients "finlight-engine/internal/common/aws"
	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/common/validation"
	"finlight-engine/internal/nudge"
	"finlight-engine/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "deliver-nudge"

// ProfileStore is the part of profile.Store the worker reads.
type ProfileStore interface {
	profile.Provider
	Contact(ctx context.Context, userID string) (*profile.Contact, error)
}

type Handler struct {
	config       *Config
	generator    *nudge.Generator
	store        ProfileStore
	sesClient    awsclients.EmailSender
	snsClient    awsclients.SMSPublisher
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler accepts nil senders; the matching channel is then treated as
// disabled.
func NewHandler(
	config *Config,
	generator *nudge.Generator,
	store ProfileStore,
	sesClient awsclients.EmailSender,
	snsClient awsclients.SMSPublisher,
	log logger.Logger,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    generator,
		store:        store,
		sesClient:    sesClient,
		snsClient:    snsClient,
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
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	channels, err := h.channels(input.Channels)
	if err != nil {
		return nil, err
	}
	today, err := camunda.JobDate(input.CurrentDate, h.now)
	if err != nil {
		return nil, err
	}

	contact, err := h.store.Contact(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	userCtx, err := profile.Resolve(ctx, h.store, input.UserID, nil)
	if err != nil {
		return nil, err
	}

	state := ""
	if userCtx != nil {
		state = userCtx.State
	}

	out := &Output{
		NotificationID: uuid.NewString(),
		Status:         StatusSkipped,
		Nudges:         h.generator.Generate(state, today),
		Channels:       []string{},
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}
	if len(out.Nudges) == 0 {
		h.logger.Info("no nudges due", map[string]interface{}{"userId": input.UserID})
		return out, nil
	}

	top := out.Nudges[0]
	for _, ch := range channels {
		sent, err := h.deliver(ctx, ch, contact, top)
		if err != nil {
			return nil, err
		}
		if sent {
			out.Channels = append(out.Channels, ch)
		}
	}
	if len(out.Channels) > 0 {
		out.Status = StatusSent
	}

	h.logger.Info("nudge delivery finished", map[string]interface{}{
		"notificationId": out.NotificationID,
		"userId":         input.UserID,
		"nudgeType":      top.Type,
		"status":         out.Status,
		"channels":       out.Channels,
	})
	return out, nil
}

// channels keeps the requested channels that are enabled. An unknown
// channel name is an input error.
func (h *Handler) channels(requested []string) ([]string, error) {
	if len(requested) == 0 {
		requested = []string{ChannelEmail, ChannelSMS}
	}

	enabled := make([]string, 0, len(requested))
	for _, ch := range requested {
		switch ch = strings.ToLower(strings.TrimSpace(ch)); ch {
		case ChannelEmail:
			if h.config.EmailEnabled && h.sesClient != nil {
				enabled = append(enabled, ch)
			}
		case ChannelSMS:
			if h.config.SMSEnabled && h.snsClient != nil {
				enabled = append(enabled, ch)
			}
		default:
			return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown channel %q", ch))
		}
	}
	return enabled, nil
}

// deliver reports false when the contact has no usable address for ch.
func (h *Handler) deliver(ctx context.Context, ch string, contact *profile.Contact, n nudge.Nudge) (bool, error) {
	text := messageText(contact, n)

	switch ch {
	case ChannelEmail:
		if !validation.ValidateEmail(contact.Email) {
			h.logger.Debug("skipping email, no valid address", nil)
			return false, nil
		}
		htmlBody := "<p>" + html.EscapeString(text) + "</p>"
		if _, err := h.sesClient.SendEmail(ctx, awsclients.EmailInput(h.config.FromEmail, contact.Email, n.Title, text, htmlBody)); err != nil {
			return false, errors.NewNudgeDeliveryFailedError(ch, err)
		}
	case ChannelSMS:
		if !validation.ValidatePhone(contact.Phone) {
			h.logger.Debug("skipping sms, no E.164 phone", nil)
			return false, nil
		}
		if _, err := h.snsClient.Publish(ctx, awsclients.SMSInput(contact.Phone, n.Title+": "+text)); err != nil {
			return false, errors.NewNudgeDeliveryFailedError(ch, err)
		}
	}
	return true, nil
}

func messageText(contact *profile.Contact, n nudge.Nudge) string {
	name := strings.TrimSpace(contact.FullName)
	if name == "" {
		return n.Message
	}
	return fmt.Sprintf("Hi %s, %s", name, n.Message)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
