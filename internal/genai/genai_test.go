package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finlight-engine/internal/common/config"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// HTTP gateway
// ==========================

func TestHTTPClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer k-123", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what is a budget?", req["prompt"])

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  A budget is a plan.  "})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "k-123", time.Second, 0)
	text, err := c.Generate(context.Background(), "what is a budget?")
	require.NoError(t, err)
	assert.Equal(t, "A budget is a plan.", text)
	assert.Equal(t, "http", c.Name())
}

func TestHTTPClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "blank text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"text": " "})
			},
			wantErr: ErrEmptyResponse,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, "", time.Second, 0).Generate(context.Background(), "q")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// ==========================
// Provider selection
// ==========================

func TestNew(t *testing.T) {
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	g, err := New(ctx, config.GenAIConfig{Enabled: false, Provider: "http", BaseURL: "http://x"}, log)
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = New(ctx, config.GenAIConfig{Enabled: true, Provider: config.GenAIProviderNone}, log)
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = New(ctx, config.GenAIConfig{Enabled: true, Provider: config.GenAIProviderHTTP, BaseURL: "http://genai:8080"}, log)
	require.NoError(t, err)
	assert.Equal(t, "http", g.Name())

	_, err = New(ctx, config.GenAIConfig{Enabled: true, Provider: config.GenAIProviderHTTP}, log)
	assert.Error(t, err)

	_, err = New(ctx, config.GenAIConfig{Enabled: true, Provider: config.GenAIProviderGemini}, log)
	assert.Error(t, err)

	_, err = New(ctx, config.GenAIConfig{Enabled: true, Provider: "openai"}, nil)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Context{
		Name:          "Asha",
		Language:      "hi",
		Query:         "  should I buy gold?  ",
		MonthlyIncome: models.Float(42000),
		State:         "Punjab",
	})

	assert.Contains(t, p, "Reply in language code: hi")
	assert.Contains(t, p, "User name: Asha")
	assert.Contains(t, p, "State: Punjab")
	assert.Contains(t, p, "Monthly income: ₹42000")
	assert.NotContains(t, p, "Monthly expenses")
	assert.Contains(t, p, "Question: should I buy gold?")

	assert.Contains(t, BuildPrompt(Context{Query: "hi"}), "Reply in language code: en")
}
