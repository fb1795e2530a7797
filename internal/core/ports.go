package core

import (
	"context"
	"time"
)

// Analyzer turns raw email-like text into a structured response. The
// simulated engine and every live backend implement this interface.
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*AgentResponse, error)
}

// CacheRepository stores analysis results keyed by an input digest.
type CacheRepository interface {
	// Get retrieves a cached response, reporting whether a live entry exists.
	Get(ctx context.Context, inputHash string) (*AgentResponse, bool)

	// Set stores a response under the given digest with a TTL.
	Set(ctx context.Context, inputHash string, resp *AgentResponse, ttl time.Duration) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
