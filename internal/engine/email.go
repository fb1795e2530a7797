package engine

import (
	"regexp"
	"strings"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

var (
	fromHeaderRe    = regexp.MustCompile(`(?i)from:[ \t]*(.+)`)
	subjectHeaderRe = regexp.MustCompile(`(?i)subject:[ \t]*(.+)`)
	sentenceEndRe   = regexp.MustCompile(`[.!?]+`)
)

// AnalyzeEmail derives the structured attributes of an email-shaped input.
// It is total: absent headers and empty bodies degrade to defaults.
func AnalyzeEmail(input string) *core.EmailAnalysis {
	sender := ""
	subject := ""
	bodyStart := 0

	if loc := fromHeaderRe.FindStringSubmatchIndex(input); loc != nil {
		sender = strings.TrimSpace(input[loc[2]:loc[3]])
		if loc[1] > bodyStart {
			bodyStart = loc[1]
		}
	} else if addr := addressRe.FindString(input); addr != "" {
		sender = addr
	}

	if loc := subjectHeaderRe.FindStringSubmatchIndex(input); loc != nil {
		subject = strings.TrimSpace(input[loc[2]:loc[3]])
		if loc[1] > bodyStart {
			bodyStart = loc[1]
		}
	}

	// The body starts after whichever header line appears later; header
	// lines themselves are excluded from key-point and action extraction.
	body := strings.TrimSpace(input[bodyStart:])

	return &core.EmailAnalysis{
		Sender:          sender,
		Subject:         subject,
		Sentiment:       detectSentiment(input),
		Urgency:         detectUrgency(input),
		Category:        detectCategory(input),
		KeyPoints:       extractKeyPoints(body),
		RequiredActions: extractRequiredActions(body),
	}
}

// extractKeyPoints splits the body into sentences and keeps the first three
// that carry more than a fragment of text.
func extractKeyPoints(body string) []string {
	points := []string{}
	for _, sentence := range sentenceEndRe.Split(body, -1) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= 10 {
			continue
		}
		points = append(points, trimmed)
		if len(points) == 3 {
			break
		}
	}
	return points
}

// actionRules append one action per matched keyword group, in fixed order.
var actionRules = []struct {
	keywords []string
	action   string
}{
	{[]string{"refund"}, "Process refund request"},
	{[]string{"cancel"}, "Handle cancellation"},
	{[]string{"change", "update"}, "Update account details"},
	{[]string{"help", "support"}, "Provide customer support"},
	{[]string{"question"}, "Answer customer questions"},
}

func extractRequiredActions(body string) []string {
	lower := strings.ToLower(body)
	actions := []string{}
	for _, rule := range actionRules {
		if containsAny(lower, rule.keywords) {
			actions = append(actions, rule.action)
		}
	}
	if len(actions) == 0 {
		actions = append(actions, "Review customer inquiry", "Provide appropriate response")
	}
	return actions
}
