package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	httpclient "finlight-engine/internal/common/http"
)

const generatePath = "/api/ai/generate"

// HTTPClient calls a GenAI gateway that accepts {prompt} and answers {text}.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpclient.NewClient(timeout, maxRetries),
	}
}

func (c *HTTPClient) Name() string { return "http" }

func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	var resp struct {
		Text string `json:"text"`
	}
	req := map[string]interface{}{"prompt": prompt}
	if err := c.client.PostJSON(ctx, c.baseURL+generatePath, headers, req, &resp); err != nil {
		return "", fmt.Errorf("genai gateway: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
