// Package live implements the generic HTTP gateway used in live mode: the
// input is forwarded to an external agent endpoint and its JSON response is
// returned verbatim.
package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// Client posts input text to a configured agent endpoint with bearer auth.
// It performs exactly one outbound call per invocation, with no retries.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

type analyzeRequest struct {
	Input     string `json:"input"`
	Timestamp string `json:"timestamp"`
}

// NewClient creates a live gateway client.
func NewClient(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Analyze implements core.Analyzer against the external endpoint.
func (c *Client) Analyze(ctx context.Context, input string) (*core.AgentResponse, error) {
	if c.endpoint == "" || c.apiKey == "" {
		return nil, &core.ConfigurationError{Reason: "agent endpoint and API key are required for live mode"}
	}

	payload, err := json.Marshal(analyzeRequest{
		Input:     input,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The cause goes to the log only; callers get a stable message.
		c.logger.Error("Agent endpoint call failed", zap.Error(err))
		return nil, &core.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	var out core.AgentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	out.EnsureDefaults()
	return &out, nil
}
