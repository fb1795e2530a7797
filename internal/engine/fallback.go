package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// Fixed confidence values for the generic path.
const (
	fallbackIntentConfidence  = 0.75
	fallbackRoutingConfidence = 0.68
	fallbackRouting           = "Customer Support > General Team"
)

var quantityRe = regexp.MustCompile(`(?i)\$[\d,]+|\d+\s*(units|pieces|items|employees|users)`)

// intentRules map keyword groups to generic intents, checked in order.
var intentRules = []struct {
	keywords []string
	intent   string
}{
	{[]string{"quote", "pricing", "cost"}, "Pricing Inquiry"},
	{[]string{"support", "help", "issue"}, "Support Request"},
	{[]string{"information", "details", "specifications"}, "Information Request"},
	{[]string{"order", "purchase", "buy"}, "Purchase Intent"},
	{[]string{"meeting", "consultation", "discuss"}, "Consultation Request"},
}

// Fallback builds a best-effort generic response when no scenario rule
// fires. It never fails: missing patterns degrade to defaults.
func Fallback(input string, now time.Time) *core.AgentResponse {
	resp := &core.AgentResponse{
		Intent:            detectIntent(input),
		IntentConfidence:  fallbackIntentConfidence,
		Routing:           fallbackRouting,
		RoutingConfidence: fallbackRoutingConfidence,
		Confidence:        fallbackIntentConfidence,
		Items:             extractGenericItems(input),
		KBMatches: []core.KBMatch{
			{
				Title:       "General FAQ",
				Confidence:  0.65,
				Relevance:   "Medium",
				Section:     "Common Questions",
				RowStart:    1,
				RowEnd:      15,
				MatchReason: "No specific knowledge base matches found for this input type",
			},
		},
		KnowledgeGaps: core.KnowledgeGaps{
			{
				Description: "Input content requires manual review for proper classification",
				Confidence:  0.88,
				GapReason:   "Content doesn't match any known scenario patterns",
			},
			{
				Description: "No specific routing rules defined for this type of inquiry",
				Confidence:  0.72,
				GapReason:   "Routing logic needs expansion for this content type",
			},
		},
		ExtractedMetadata: map[string]interface{}{
			"input_length":    len(input),
			"detected_type":   "general",
			"processing_time": now.UTC().Format(time.RFC3339),
			"word_count":      len(strings.Fields(input)),
		},
	}

	resp.EnsureDefaults()
	return resp
}

func detectIntent(input string) string {
	lower := strings.ToLower(input)
	for _, rule := range intentRules {
		if containsAny(lower, rule.keywords) {
			return rule.intent
		}
	}
	return "General Inquiry"
}

// extractGenericItems pulls a contact item plus up to three currency or
// quantity values out of otherwise unclassifiable input.
func extractGenericItems(input string) []core.LineItem {
	items := []core.LineItem{}

	if addr := addressRe.FindString(input); addr != "" {
		items = append(items, core.LineItem{
			SKU:              "EMAIL-CONTACT",
			Description:      addr,
			Quantity:         1,
			Category:         "Contact Information",
			Confidence:       0.95,
			ExtractionSource: fmt.Sprintf("Email address found: %s", addr),
		})
	}

	for i, match := range quantityRe.FindAllString(input, 3) {
		items = append(items, core.LineItem{
			SKU:              fmt.Sprintf("ITEM-%d", i+1),
			Description:      match,
			Quantity:         1,
			Category:         "Extracted Value",
			Confidence:       0.7,
			ExtractionSource: fmt.Sprintf("Numerical value detected: %s", match),
		})
	}

	return items
}
