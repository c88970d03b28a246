// internal/workers/conversation/classify-intent/handler_test.go
package classifyintent

import (
	"context"
	"testing"
	"time"

	"finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	log := logger.NewTestLogger(t)
	eng := engine.New(engine.Options{Logger: log})
	return NewHandler(&Config{Timeout: time.Second}, eng, log)
}

func createJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: TaskType, Variables: variables}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		wantIntent     string
		wantConfidence float64
		wantLanguage   string
	}{
		{
			name:           "investment query",
			input:          &Input{Query: "I want to invest in gold"},
			wantIntent:     "investment_query",
			wantConfidence: 0.25,
			wantLanguage:   "en",
		},
		{
			name:           "savings query with explicit language",
			input:          &Input{Query: "How should I save money?", Language: "hi-IN"},
			wantIntent:     "savings_query",
			wantConfidence: 0.2,
			wantLanguage:   "hi",
		},
		{
			name:         "devanagari query auto-detects hindi",
			input:        &Input{Query: "मेरी बचत", Language: "auto"},
			wantIntent:   "other",
			wantLanguage: "hi",
		},
		{
			name:         "blank query is other",
			input:        &Input{Query: "   "},
			wantIntent:   "other",
			wantLanguage: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, out.Intent)
			assert.InDelta(t, tt.wantConfidence, out.Confidence, 1e-9)
			assert.Equal(t, tt.wantLanguage, out.Language)
		})
	}
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	in, err := parseInput(createJob(`{"query":"budget help","language":"ta"}`))
	require.NoError(t, err)
	assert.Equal(t, "budget help", in.Query)
	assert.Equal(t, "ta", in.Language)

	_, err = parseInput(createJob(`{"query":`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestHandler_Run(t *testing.T) {
	h := createTestHandler(t)
	out, err := h.run(context.Background(), createJob(`{"query":"plan my budget"}`))
	require.NoError(t, err)
	assert.Equal(t, "budget", out.Intent)
}
