package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TriageService is the orchestration layer in front of the analyzer: it
// consults the result cache, delegates to the configured analyzer and stores
// the outcome. It holds no per-call state and is safe for concurrent use.
type TriageService struct {
	analyzer     Analyzer
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewTriageService creates a new triage service.
func NewTriageService(
	analyzer Analyzer,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *TriageService {
	return &TriageService{
		analyzer:     analyzer,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

// Analyze classifies the given text and returns the structured response.
func (s *TriageService) Analyze(ctx context.Context, input string) (*AgentResponse, error) {
	requestID := uuid.NewString()
	inputHash := HashInput(input)

	if s.cacheEnabled && s.cache != nil {
		if resp, ok := s.cache.Get(ctx, inputHash); ok {
			s.logger.Debug("Cache hit for input",
				zap.String("request_id", requestID),
				zap.String("input_hash", inputHash))
			return resp.Clone(), nil
		}
	}

	start := time.Now()
	resp, err := s.analyzer.Analyze(ctx, input)
	if err != nil {
		s.logger.Error("Analysis failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}
	resp.EnsureDefaults()

	s.logger.Info("Analyzed input",
		zap.String("request_id", requestID),
		zap.String("intent", resp.Intent),
		zap.String("routing", resp.Routing),
		zap.Float64("confidence", resp.Confidence),
		zap.Duration("duration", time.Since(start)))

	if s.cacheEnabled && s.cache != nil {
		if err := s.cache.Set(ctx, inputHash, resp, s.cacheTTL); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return resp, nil
}

// HashInput derives the cache key for a piece of input text.
func HashInput(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
