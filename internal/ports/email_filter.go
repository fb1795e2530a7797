// Package ports declares the interfaces the composition roots wire the
// front-end adapters through.
package ports

import (
	"context"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// EmailFilter is a front end that accepts messages, runs them through the
// triage service and presents or forwards the result.
type EmailFilter interface {
	// ProcessEmail analyzes a single message.
	ProcessEmail(ctx context.Context, email *core.InboundEmail) (*core.AgentResponse, error)

	// Start begins accepting messages. Non-blocking for server filters,
	// a no-op for one-shot filters.
	Start() error

	// Stop shuts the filter down.
	Stop() error
}
