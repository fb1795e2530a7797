package filter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/templates"
)

// CliFilter implements a command-line interface for email triage
type CliFilter struct {
	service      *core.TriageService
	logger       *zap.Logger
	verbose      bool
	templateKind templates.Kind
}

// NewCliFilter creates a new CLI filter. templateKind may be empty, in which
// case all four documents are rendered.
func NewCliFilter(service *core.TriageService, logger *zap.Logger, verbose bool, templateKind templates.Kind) (*CliFilter, error) {
	return &CliFilter{
		service:      service,
		logger:       logger,
		verbose:      verbose,
		templateKind: templateKind,
	}, nil
}

// ProcessEmail analyzes a message and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.InboundEmail) (*core.AgentResponse, error) {
	f.logger.Debug("Processing message", zap.String("sender", email.From))

	input := email.Text()

	fmt.Printf("\n=== Message Summary ===\n")
	if email.From != "" {
		fmt.Printf("From: %s\n", email.From)
	}
	if email.Subject != "" {
		fmt.Printf("Subject: %s\n", email.Subject)
	}
	fmt.Printf("Body length: %d bytes\n", len(email.Body))

	if f.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	resp, err := f.service.Analyze(ctx, input)
	if err != nil {
		f.logger.Error("Failed to analyze message", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Intent: %s\n", resp.Intent)
	fmt.Printf("Routing: %s\n", resp.Routing)
	fmt.Printf("Confidence: %.4f\n", resp.Confidence)
	if resp.EmailAnalysis != nil {
		fmt.Printf("Sentiment: %s\n", resp.EmailAnalysis.Sentiment)
		fmt.Printf("Urgency: %s\n", resp.EmailAnalysis.Urgency)
		fmt.Printf("Category: %s\n", resp.EmailAnalysis.Category)
	}
	fmt.Printf("Processing time: %v\n", duration)

	kinds := templates.Kinds()
	if f.templateKind != "" {
		kinds = []templates.Kind{f.templateKind}
	}
	for _, kind := range kinds {
		doc, err := templates.Render(resp, nil, kind)
		if err != nil {
			return nil, err
		}
		fmt.Printf("\n=== Template: %s ===\n%s\n", kind, doc)
	}

	return resp, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
