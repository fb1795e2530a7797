package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

func TestAnalyzeSuccess(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "Pricing Inquiry",
			"routing":    "Sales > Quotes",
			"confidence": 0.9,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, zap.NewNop())

	resp, err := client.Analyze(context.Background(), "how much does it cost")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "how much does it cost", gotBody["input"])
	assert.NotEmpty(t, gotBody["timestamp"])

	assert.Equal(t, "Pricing Inquiry", resp.Intent)
	assert.Equal(t, "Sales > Quotes", resp.Routing)
	// Defaults are applied to the decoded response
	assert.NotNil(t, resp.Items)
	assert.NotNil(t, resp.KBMatches)
}

func TestAnalyzeMissingConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		apiKey   string
	}{
		{"no endpoint", "", "key"},
		{"no api key", "http://localhost:9", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.endpoint, tt.apiKey, time.Second, zap.NewNop())

			_, err := client.Analyze(context.Background(), "input")
			require.Error(t, err)

			var cfgErr *core.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestAnalyzeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "input")
	require.Error(t, err)

	var upErr *core.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, "Internal Server Error", upErr.Status)
}

func TestAnalyzeNetworkError(t *testing.T) {
	// Closed server to force a connection failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewClient(endpoint, "test-key", time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "input")
	require.Error(t, err)

	var netErr *core.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "failed to connect to the agent endpoint, check your endpoint and API key", netErr.Error())
	assert.Error(t, netErr.Cause)
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "input")
	assert.Error(t, err)
}
