package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/scenarios"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	library, err := scenarios.LoadEmbedded()
	require.NoError(t, err)

	e, err := New(library, zap.NewNop(), opts...)
	require.NoError(t, err)
	return e
}

func TestClassifyGeneralCascade(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Classify("We need a quote from Penn Stainless for 316L plates")

	library, _ := scenarios.LoadEmbedded()
	scenario, ok := library.Get("manufacturing-custom-fabrication")
	require.True(t, ok)

	assert.Equal(t, scenario.Response.Intent, resp.Intent)
	assert.Equal(t, scenario.Response.Routing, resp.Routing)
	assert.Equal(t, scenario.Response.Confidence, resp.Confidence)
}

func TestClassifyEmailCascadeOverwritesAnalysis(t *testing.T) {
	e := newTestEngine(t)

	input := "From: jane@acme.com\nSubject: Billing question\n\nI was charged twice on my invoice."
	resp := e.Classify(input)

	library, _ := scenarios.LoadEmbedded()
	scenario, ok := library.Get("support-billing")
	require.True(t, ok)

	assert.Equal(t, scenario.Response.Intent, resp.Intent)

	// The canned email analysis is replaced with one derived from the input
	require.NotNil(t, resp.EmailAnalysis)
	assert.Equal(t, "jane@acme.com", resp.EmailAnalysis.Sender)
	assert.Equal(t, "Billing question", resp.EmailAnalysis.Subject)
	assert.Equal(t, "Billing", resp.EmailAnalysis.Category)
}

func TestClassifyFallback(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Classify("What is the meaning of life?")

	assert.Equal(t, "General Inquiry", resp.Intent)
	assert.Equal(t, "Customer Support > General Team", resp.Routing)
	assert.Len(t, resp.KBMatches, 1)
	assert.Len(t, resp.KnowledgeGaps, 2)
}

func TestClassifyDeterministic(t *testing.T) {
	e := newTestEngine(t)
	input := "penn stainless pressure vessel quote"

	first := e.Classify(input)
	second := e.Classify(input)

	assert.Equal(t, first, second)
}

func TestClassifyReturnsIndependentCopies(t *testing.T) {
	e := newTestEngine(t)
	input := "penn stainless pressure vessel quote"

	first := e.Classify(input)
	first.Intent = "mutated"
	if len(first.Items) > 0 {
		first.Items[0].SKU = "mutated"
	}

	second := e.Classify(input)
	assert.NotEqual(t, "mutated", second.Intent)
	if len(second.Items) > 0 {
		assert.NotEqual(t, "mutated", second.Items[0].SKU)
	}
}

func TestAnalyzeWithoutLatencyIgnoresContext(t *testing.T) {
	e := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := e.Analyze(ctx, "penn stainless")
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestAnalyzeLatencyHonoursCancellation(t *testing.T) {
	e := newTestEngine(t, WithLatency(time.Second, 2*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, "penn stainless")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsLibraryMissingRuleTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	data := `{"scenarios":[{"id":"only-one","input":"x","response":{"intent":"A","routing":"B > C","confidence":0.9}}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	library, err := scenarios.LoadFile(path)
	require.NoError(t, err)

	_, err = New(library, zap.NewNop())
	require.Error(t, err)

	var dataErr *core.DataError
	assert.ErrorAs(t, err, &dataErr)
}
