// Package utils holds small text helpers shared by the LLM-backed analyzers.
package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const truncationMarker = "\n[... Content truncated due to size limits ...]"

// TextProcessor bounds and sanitizes raw message text before it is embedded
// in an upstream prompt.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a text processor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{logger: logger}
}

// TruncateText caps text at maxBytes, cutting on a rune boundary and
// appending a visible marker. maxBytes <= 0 disables the cap.
func (p *TextProcessor) TruncateText(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}

	kept := text[:maxBytes]
	for len(kept) > 0 && !utf8.ValidString(kept) {
		kept = kept[:len(kept)-1]
	}

	p.logger.Debug("Truncated oversized input",
		zap.Int("input_bytes", len(text)),
		zap.Int("kept_bytes", len(kept)),
		zap.Int("max_bytes", maxBytes))

	return kept + truncationMarker
}

// SanitizeUTF8 drops invalid byte sequences so the result always marshals
// cleanly as JSON.
func (p *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	cleaned := strings.ToValidUTF8(text, "")
	p.logger.Debug("Dropped invalid UTF-8 from input",
		zap.Int("input_bytes", len(text)),
		zap.Int("kept_bytes", len(cleaned)))

	return cleaned
}

// ProcessText applies truncation then sanitization.
func (p *TextProcessor) ProcessText(text string, maxBytes int) string {
	return p.SanitizeUTF8(p.TruncateText(text, maxBytes))
}
