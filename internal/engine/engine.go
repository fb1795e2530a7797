// Package engine implements the deterministic classification cascade used in
// simulated mode: format detection, attribute extraction, an ordered scenario
// rule table and a generic fallback.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/scenarios"
)

// Engine is the simulated-mode analyzer. Classification itself is pure; an
// optional randomized delay emulates network latency for demo purposes only.
type Engine struct {
	library  *scenarios.Library
	logger   *zap.Logger
	minDelay time.Duration
	maxDelay time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLatency adds an artificial delay, uniformly random in [min, max], to
// every Analyze call. Classify is never delayed.
func WithLatency(min, max time.Duration) Option {
	return func(e *Engine) {
		e.minDelay = min
		e.maxDelay = max
	}
}

// New creates an engine over the given scenario library. It fails with a
// DataError if any cascade rule targets a scenario the library lacks.
func New(library *scenarios.Library, logger *zap.Logger, opts ...Option) (*Engine, error) {
	for _, id := range ruleScenarioIDs() {
		if _, ok := library.Get(id); !ok {
			return nil, &core.DataError{ScenarioID: id, Reason: "rule cascade targets a scenario missing from the library"}
		}
	}

	e := &Engine{library: library, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Analyze implements core.Analyzer. The only error path is context
// cancellation while the demo delay elapses.
func (e *Engine) Analyze(ctx context.Context, input string) (*core.AgentResponse, error) {
	if e.maxDelay > 0 {
		delay := e.minDelay
		if e.maxDelay > e.minDelay {
			delay += time.Duration(rand.Int63n(int64(e.maxDelay - e.minDelay)))
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return e.Classify(input), nil
}

// Classify runs the full simulated cascade. It is pure, total and
// deterministic up to the fallback metadata timestamp.
func (e *Engine) Classify(input string) *core.AgentResponse {
	lower := strings.ToLower(input)

	if IsEmailShaped(input) {
		analysis := AnalyzeEmail(input)
		if id, ok := matchRules(emailRules, lower); ok {
			e.logger.Debug("Email cascade matched scenario",
				zap.String("scenario_id", id),
				zap.String("sentiment", analysis.Sentiment),
				zap.String("urgency", analysis.Urgency))

			scenario, _ := e.library.Get(id)
			resp := scenario.Response.Clone()
			resp.EmailAnalysis = analysis
			resp.EnsureDefaults()
			return resp
		}
	}

	if id, ok := matchRules(generalRules, lower); ok {
		e.logger.Debug("General cascade matched scenario", zap.String("scenario_id", id))

		scenario, _ := e.library.Get(id)
		resp := scenario.Response.Clone()
		resp.EnsureDefaults()
		return resp
	}

	e.logger.Debug("No scenario rule fired, using fallback extractor")
	return Fallback(input, time.Now())
}
