// Package llmjson decodes AgentResponse JSON out of LLM completions, which
// frequently wrap the object in prose or code fences.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// Decode parses an AgentResponse from raw completion text. If the text is
// not pure JSON, it salvages the outermost brace-delimited object.
func Decode(text string) (*core.AgentResponse, error) {
	var resp core.AgentResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		start := strings.IndexByte(text, '{')
		end := strings.LastIndexByte(text, '}')
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in model response: %w", err)
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
		}
	}

	resp.EnsureDefaults()
	return &resp, nil
}

// PromptFormat is the shared instruction block for LLM-backed analyzers. It
// takes one %s verb: the input text.
const PromptFormat = `You are an email triage assistant. Analyze the following message and respond with a JSON object containing:
- intent: string (the customer's intent)
- intent_confidence: number between 0 and 1
- routing: string in the form "Department > Team"
- routing_confidence: number between 0 and 1
- confidence: number between 0 and 1 (overall confidence)
- email_analysis: object with sender, subject, sentiment (positive|neutral|negative|urgent), urgency (low|medium|high|critical), category, key_points (array of up to 3 strings), required_actions (array of strings, at least one)
- items: array of {sku, description, quantity, category, confidence, extraction_source}
- kb_matches: array of {title, confidence, relevance, section, match_reason}
- knowledge_gaps: array of {description, confidence, gap_reason}
- extracted_metadata: object of string keys

Message:
%s

Respond only with the JSON object and nothing else.`
