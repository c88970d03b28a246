// internal/workers/engagement/deliver-nudge/handler_test.go
package delivernudge

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/models"
	"finlight-engine/internal/nudge"
	"finlight-engine/internal/profile"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Services
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

type fakeStore struct {
	contacts map[string]*profile.Contact
	profiles map[string]*models.UserFinancialContext
}

func (f fakeStore) Get(_ context.Context, userID string) (*models.UserFinancialContext, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, errors.NewProfileNotFoundError(userID)
}

func (f fakeStore) Contact(_ context.Context, userID string) (*profile.Contact, error) {
	if c, ok := f.contacts[userID]; ok {
		return c, nil
	}
	return nil, errors.NewProfileNotFoundError(userID)
}

// ==========================
// Test Helper Functions
// ==========================

var sentAt = time.Date(2024, time.October, 5, 9, 30, 0, 0, time.UTC)

func testStore() fakeStore {
	return fakeStore{
		contacts: map[string]*profile.Contact{
			"asha":   {Email: "asha@example.in", Phone: "+919876543210", FullName: "Asha"},
			"ravi":   {Email: "ravi@example.in", Phone: "98765 43210"},
			"nobody": {},
		},
		profiles: map[string]*models.UserFinancialContext{
			"asha": {UserID: "asha", State: "Kerala"},
		},
	}
}

func createTestHandler(t *testing.T, config *Config, sesMock *MockSESService, snsMock *MockSNSService) *Handler {
	if config == nil {
		config = &Config{Timeout: time.Second, EmailEnabled: true, SMSEnabled: true, FromEmail: "nudges@finlight.in"}
	}
	h := NewHandler(config, nudge.NewGenerator(nil), testStore(), sesMock, snsMock, logger.NewTestLogger(t))
	h.now = func() time.Time { return sentAt }
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SendsTopNudgeOnAllChannels(t *testing.T) {
	sesMock, snsMock := &MockSESService{}, &MockSNSService{}
	h := createTestHandler(t, nil, sesMock, snsMock)

	out, err := h.Execute(context.Background(), &Input{UserID: "asha"})
	require.NoError(t, err)

	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, out.Channels)
	assert.Equal(t, "2024-10-05T09:30:00Z", out.SentAt)
	_, err = uuid.Parse(out.NotificationID)
	assert.NoError(t, err)

	require.Len(t, out.Nudges, 3)
	assert.Equal(t, "Diwali Planning", out.Nudges[0].Title)
	assert.Equal(t, "Kerala Financial Tip", out.Nudges[2].Title)

	require.Len(t, sesMock.calls, 1)
	email := sesMock.calls[0]
	assert.Equal(t, []string{"asha@example.in"}, email.Destination.ToAddresses)
	assert.Equal(t, "nudges@finlight.in", aws.ToString(email.Source))
	assert.Equal(t, "Diwali Planning", aws.ToString(email.Message.Subject.Data))
	assert.Equal(t, "Hi Asha, Start saving for Diwali shopping and decorations", aws.ToString(email.Message.Body.Text.Data))

	require.Len(t, snsMock.calls, 1)
	assert.Equal(t, "+919876543210", aws.ToString(snsMock.calls[0].PhoneNumber))
	assert.Equal(t, "Diwali Planning: Hi Asha, Start saving for Diwali shopping and decorations", aws.ToString(snsMock.calls[0].Message))
}

func TestHandler_Execute_ChannelSelection(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		input        *Input
		wantStatus   string
		wantChannels []string
		wantEmails   int
		wantSMS      int
	}{
		{
			name:         "sms only requested",
			input:        &Input{UserID: "asha", Channels: []string{"SMS"}},
			wantStatus:   StatusSent,
			wantChannels: []string{ChannelSMS},
			wantSMS:      1,
		},
		{
			name:         "email disabled in config",
			config:       &Config{Timeout: time.Second, SMSEnabled: true},
			input:        &Input{UserID: "asha"},
			wantStatus:   StatusSent,
			wantChannels: []string{ChannelSMS},
			wantSMS:      1,
		},
		{
			name:         "phone not in E.164 is skipped",
			input:        &Input{UserID: "ravi", Channels: []string{"sms"}},
			wantStatus:   StatusSkipped,
			wantChannels: []string{},
		},
		{
			name:         "contact without addresses",
			input:        &Input{UserID: "nobody"},
			wantStatus:   StatusSkipped,
			wantChannels: []string{},
		},
		{
			name:         "quiet month without state sends nothing",
			input:        &Input{UserID: "ravi", CurrentDate: "2024-01-15"},
			wantStatus:   StatusSkipped,
			wantChannels: []string{},
		},
		{
			name:         "festival month for user without profile",
			input:        &Input{UserID: "ravi", CurrentDate: "2024-03-10", Channels: []string{"email"}},
			wantStatus:   StatusSent,
			wantChannels: []string{ChannelEmail},
			wantEmails:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesMock, snsMock := &MockSESService{}, &MockSNSService{}
			h := createTestHandler(t, tt.config, sesMock, snsMock)

			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantChannels, out.Channels)
			assert.Len(t, sesMock.calls, tt.wantEmails)
			assert.Len(t, snsMock.calls, tt.wantSMS)
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	sesDown := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("throttled")
		},
	}

	tests := []struct {
		name          string
		ses           *MockSESService
		input         *Input
		wantCode      errors.ErrorCode
		wantRetryable bool
	}{
		{name: "missing user id", input: &Input{}, wantCode: errors.ErrCodeInvalidInput},
		{name: "unknown channel", input: &Input{UserID: "asha", Channels: []string{"pigeon"}}, wantCode: errors.ErrCodeInvalidInput},
		{name: "bad date", input: &Input{UserID: "asha", CurrentDate: "soon"}, wantCode: errors.ErrCodeInvalidInput},
		{name: "unknown user", input: &Input{UserID: "ghost"}, wantCode: errors.ErrCodeProfileNotFound},
		{
			name:          "ses failure is retryable",
			ses:           sesDown,
			input:         &Input{UserID: "asha"},
			wantCode:      errors.ErrCodeNudgeDeliveryFailed,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesMock := tt.ses
			if sesMock == nil {
				sesMock = &MockSESService{}
			}
			h := createTestHandler(t, nil, sesMock, &MockSNSService{})

			out, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, out)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.wantRetryable, stdErr.Retryable)
		})
	}
}
