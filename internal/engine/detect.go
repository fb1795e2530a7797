package engine

import (
	"regexp"
	"strings"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

var (
	fromLineRe    = regexp.MustCompile(`(?im)^from:`)
	subjectLineRe = regexp.MustCompile(`(?im)^subject:`)
	addressRe     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// IsEmailShaped reports whether the input looks like a pasted email: a From:
// or Subject: line, or an embedded address token.
func IsEmailShaped(input string) bool {
	return fromLineRe.MatchString(input) ||
		subjectLineRe.MatchString(input) ||
		addressRe.MatchString(input)
}

var (
	urgentWords   = []string{"urgent", "asap", "immediately", "critical", "emergency"}
	negativeWords = []string{"issue", "problem", "complaint", "disappointed", "frustrated", "angry", "unhappy"}
	positiveWords = []string{"thank", "appreciate", "great", "excellent", "happy", "satisfied"}
)

// detectSentiment checks marker words in fixed precedence: urgent beats
// negative beats positive.
func detectSentiment(text string) string {
	lower := strings.ToLower(text)
	if containsAny(lower, urgentWords) {
		return core.SentimentUrgent
	}
	if containsAny(lower, negativeWords) {
		return core.SentimentNegative
	}
	if containsAny(lower, positiveWords) {
		return core.SentimentPositive
	}
	return core.SentimentNeutral
}

func detectUrgency(text string) string {
	lower := strings.ToLower(text)
	if containsAny(lower, []string{"urgent", "asap", "emergency"}) {
		return core.UrgencyCritical
	}
	if containsAny(lower, []string{"soon", "quickly", "important"}) {
		return core.UrgencyHigh
	}
	if containsAny(lower, []string{"when you can", "at your convenience"}) {
		return core.UrgencyLow
	}
	return core.UrgencyMedium
}

// categoryRules map keyword groups to category labels, checked in order.
var categoryRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"billing", "invoice", "payment"}, "Billing"},
	{[]string{"technical", "bug", "error"}, "Technical Support"},
	{[]string{"feature", "request", "suggestion"}, "Feature Request"},
	{[]string{"account", "password", "login"}, "Account Management"},
}

func detectCategory(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return "General Inquiry"
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
