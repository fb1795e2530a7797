package core

import (
	"encoding/json"
	"time"
)

// Sentiment values produced by the attribute extractor.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentUrgent   = "urgent"
)

// Urgency levels produced by the attribute extractor.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// EmailAnalysis describes sender, subject, sentiment, urgency, category,
// key points and required actions for an email-shaped input.
type EmailAnalysis struct {
	Sender          string   `json:"sender"`
	Subject         string   `json:"subject"`
	Sentiment       string   `json:"sentiment"`
	Urgency         string   `json:"urgency"`
	Category        string   `json:"category"`
	KeyPoints       []string `json:"key_points"`
	RequiredActions []string `json:"required_actions"`
}

// LineItem is a single extracted item (contact, quantity, amount).
type LineItem struct {
	SKU              string  `json:"sku"`
	Description      string  `json:"description"`
	Quantity         int     `json:"quantity"`
	Category         string  `json:"category"`
	Confidence       float64 `json:"confidence,omitempty"`
	ExtractionSource string  `json:"extraction_source,omitempty"`
}

// KBMatch is a knowledge-base hit with its confidence and location.
type KBMatch struct {
	Title       string  `json:"title"`
	Confidence  float64 `json:"confidence"`
	Relevance   string  `json:"relevance"`
	Section     string  `json:"section"`
	RowStart    int     `json:"row_start,omitempty"`
	RowEnd      int     `json:"row_end,omitempty"`
	MatchReason string  `json:"match_reason,omitempty"`
}

// KnowledgeGap flags an area the knowledge base does not cover.
type KnowledgeGap struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence,omitempty"`
	GapReason   string  `json:"gap_reason,omitempty"`
}

// KnowledgeGaps accepts both the legacy plain-string wire form and the
// object form; both normalize to KnowledgeGap values at the boundary.
type KnowledgeGaps []KnowledgeGap

func (g *KnowledgeGaps) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(KnowledgeGaps, 0, len(raw))
	for _, elem := range raw {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			out = append(out, KnowledgeGap{Description: s})
			continue
		}
		var gap KnowledgeGap
		if err := json.Unmarshal(elem, &gap); err != nil {
			return err
		}
		out = append(out, gap)
	}

	*g = out
	return nil
}

// AgentResponse is the structured output of one analysis.
type AgentResponse struct {
	Intent            string                 `json:"intent"`
	IntentConfidence  float64                `json:"intent_confidence,omitempty"`
	Routing           string                 `json:"routing"`
	RoutingConfidence float64                `json:"routing_confidence,omitempty"`
	Confidence        float64                `json:"confidence"`
	EmailAnalysis     *EmailAnalysis         `json:"email_analysis,omitempty"`
	Items             []LineItem             `json:"items"`
	KBMatches         []KBMatch              `json:"kb_matches"`
	KnowledgeGaps     KnowledgeGaps          `json:"knowledge_gaps"`
	ExtractedMetadata map[string]interface{} `json:"extracted_metadata"`
}

// EnsureDefaults enforces the response invariants: the collection fields are
// always present (possibly empty) and confidence values stay within [0,1].
func (r *AgentResponse) EnsureDefaults() {
	if r.Items == nil {
		r.Items = []LineItem{}
	}
	if r.KBMatches == nil {
		r.KBMatches = []KBMatch{}
	}
	if r.KnowledgeGaps == nil {
		r.KnowledgeGaps = KnowledgeGaps{}
	}
	if r.ExtractedMetadata == nil {
		r.ExtractedMetadata = map[string]interface{}{}
	}

	r.Confidence = clampConfidence(r.Confidence)
	r.IntentConfidence = clampConfidence(r.IntentConfidence)
	r.RoutingConfidence = clampConfidence(r.RoutingConfidence)
	for i := range r.Items {
		r.Items[i].Confidence = clampConfidence(r.Items[i].Confidence)
	}
	for i := range r.KBMatches {
		r.KBMatches[i].Confidence = clampConfidence(r.KBMatches[i].Confidence)
	}
	for i := range r.KnowledgeGaps {
		r.KnowledgeGaps[i].Confidence = clampConfidence(r.KnowledgeGaps[i].Confidence)
	}
}

// Clone returns a deep copy. Scenario responses are shared library state, so
// callers always receive a copy they are free to mutate.
func (r *AgentResponse) Clone() *AgentResponse {
	out := *r

	if r.EmailAnalysis != nil {
		analysis := *r.EmailAnalysis
		analysis.KeyPoints = append([]string(nil), r.EmailAnalysis.KeyPoints...)
		analysis.RequiredActions = append([]string(nil), r.EmailAnalysis.RequiredActions...)
		out.EmailAnalysis = &analysis
	}

	out.Items = append([]LineItem(nil), r.Items...)
	out.KBMatches = append([]KBMatch(nil), r.KBMatches...)
	out.KnowledgeGaps = append(KnowledgeGaps(nil), r.KnowledgeGaps...)

	if r.ExtractedMetadata != nil {
		out.ExtractedMetadata = make(map[string]interface{}, len(r.ExtractedMetadata))
		for k, v := range r.ExtractedMetadata {
			out.ExtractedMetadata[k] = v
		}
	}

	return &out
}

// Scenario pairs a canned example input with a pre-built response. Scenarios
// are immutable once loaded from the library.
type Scenario struct {
	ID       string        `json:"id"`
	Input    string        `json:"input"`
	Response AgentResponse `json:"response"`
}

// InboundEmail is a message received by one of the front-end filters.
type InboundEmail struct {
	From    string
	To      []string
	Subject string
	Body    string
	Headers map[string][]string
	Raw     []byte
}

// Text returns the content handed to the analyzer: headers the engine cares
// about plus the body, in the same shape a pasted email would have.
func (e *InboundEmail) Text() string {
	text := ""
	if e.From != "" {
		text += "From: " + e.From + "\n"
	}
	if e.Subject != "" {
		text += "Subject: " + e.Subject + "\n"
	}
	return text + "\n" + e.Body
}

// CacheEntry is a stored analysis result keyed by input digest.
type CacheEntry struct {
	InputHash string
	Response  *AgentResponse
	CachedAt  time.Time
	ExpiresAt time.Time
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
