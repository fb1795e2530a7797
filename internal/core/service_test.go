package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAnalyzer struct {
	resp  *AgentResponse
	err   error
	calls int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, input string) (*AgentResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp.Clone(), nil
}

type stubCache struct {
	entries map[string]*AgentResponse
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*AgentResponse)}
}

func (s *stubCache) Get(ctx context.Context, inputHash string) (*AgentResponse, bool) {
	resp, ok := s.entries[inputHash]
	if !ok {
		return nil, false
	}
	return resp.Clone(), true
}

func (s *stubCache) Set(ctx context.Context, inputHash string, resp *AgentResponse, ttl time.Duration) error {
	s.sets++
	s.entries[inputHash] = resp.Clone()
	return nil
}

func (s *stubCache) Cleanup(ctx context.Context) error { return nil }

func TestAnalyzeCachesResults(t *testing.T) {
	analyzer := &stubAnalyzer{resp: &AgentResponse{Intent: "Test", Routing: "A > B", Confidence: 0.9}}
	cache := newStubCache()
	svc := NewTriageService(analyzer, cache, zap.NewNop(), true, time.Hour)

	first, err := svc.Analyze(context.Background(), "some input")
	require.NoError(t, err)
	assert.Equal(t, "Test", first.Intent)
	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Analyze(context.Background(), "some input")
	require.NoError(t, err)
	assert.Equal(t, "Test", second.Intent)
	// Second call is served from the cache
	assert.Equal(t, 1, analyzer.calls)
}

func TestAnalyzeCacheDisabled(t *testing.T) {
	analyzer := &stubAnalyzer{resp: &AgentResponse{Intent: "Test", Routing: "A > B", Confidence: 0.9}}
	cache := newStubCache()
	svc := NewTriageService(analyzer, cache, zap.NewNop(), false, time.Hour)

	_, err := svc.Analyze(context.Background(), "some input")
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), "some input")
	require.NoError(t, err)

	assert.Equal(t, 2, analyzer.calls)
	assert.Equal(t, 0, cache.sets)
}

func TestAnalyzeNilCache(t *testing.T) {
	analyzer := &stubAnalyzer{resp: &AgentResponse{Intent: "Test", Routing: "A > B", Confidence: 0.9}}
	svc := NewTriageService(analyzer, nil, zap.NewNop(), true, time.Hour)

	resp, err := svc.Analyze(context.Background(), "some input")
	require.NoError(t, err)
	assert.Equal(t, "Test", resp.Intent)
}

func TestAnalyzePropagatesErrors(t *testing.T) {
	wantErr := errors.New("backend down")
	analyzer := &stubAnalyzer{err: wantErr}
	svc := NewTriageService(analyzer, newStubCache(), zap.NewNop(), true, time.Hour)

	_, err := svc.Analyze(context.Background(), "some input")
	assert.ErrorIs(t, err, wantErr)
}

func TestAnalyzeAppliesDefaults(t *testing.T) {
	analyzer := &stubAnalyzer{resp: &AgentResponse{Intent: "Test", Routing: "A > B", Confidence: 1.5}}
	svc := NewTriageService(analyzer, nil, zap.NewNop(), false, 0)

	resp, err := svc.Analyze(context.Background(), "x")
	require.NoError(t, err)

	assert.NotNil(t, resp.Items)
	assert.NotNil(t, resp.KBMatches)
	assert.NotNil(t, resp.ExtractedMetadata)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestHashInputStable(t *testing.T) {
	a := HashInput("hello")
	b := HashInput("hello")
	c := HashInput("world")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
