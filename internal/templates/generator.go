// Package templates renders an AgentResponse into the four human-readable
// documents offered by the triage UI. Rendering is total: every missing
// field falls back to a fixed default, so a renderer never fails on data.
package templates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// Kind selects one of the four response documents.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindManager  Kind = "manager"
	KindTeam     Kind = "team"
	KindCRM      Kind = "crm"
)

// Defaults used when the response carries no email analysis.
const (
	defaultSender    = "valued customer"
	defaultSubject   = "No subject"
	defaultSentiment = core.SentimentNeutral
	defaultUrgency   = core.UrgencyMedium
	defaultCategory  = "General Inquiry"
)

var titleCaser = cases.Title(language.English)

// ParseKind maps a user-supplied name to a template kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(name)) {
	case KindCustomer:
		return KindCustomer, nil
	case KindManager:
		return KindManager, nil
	case KindTeam:
		return KindTeam, nil
	case KindCRM:
		return KindCRM, nil
	default:
		return "", fmt.Errorf("unknown template kind: %q", name)
	}
}

// Kinds lists the template kinds in presentation order.
func Kinds() []Kind {
	return []Kind{KindCustomer, KindManager, KindTeam, KindCRM}
}

// Render produces the requested document for the response. The analysis
// argument overrides resp.EmailAnalysis when non-nil; both may be nil.
func Render(resp *core.AgentResponse, analysis *core.EmailAnalysis, kind Kind) (string, error) {
	if resp == nil {
		resp = &core.AgentResponse{}
	}
	if analysis == nil {
		analysis = resp.EmailAnalysis
	}

	switch kind {
	case KindCustomer:
		return customerReply(resp, analysis), nil
	case KindManager:
		return managerSummary(resp, analysis), nil
	case KindTeam:
		return teamUpdate(resp, analysis), nil
	case KindCRM:
		return crmEntry(resp, analysis, time.Now()), nil
	default:
		return "", fmt.Errorf("unknown template kind: %q", kind)
	}
}

func customerReply(resp *core.AgentResponse, analysis *core.EmailAnalysis) string {
	var b strings.Builder

	subject := "Your Inquiry"
	if analysis != nil && analysis.Subject != "" {
		subject = analysis.Subject
	}
	f := sender(analysis)

	fmt.Fprintf(&b, "Subject: Re: %s\n\n", subject)
	fmt.Fprintf(&b, "Dear %s,\n\n", greetingName(analysis))

	if isRush(f.urgency) {
		b.WriteString("Thank you for reaching out urgently. ")
	} else {
		b.WriteString("Thank you for your email. ")
	}

	if analysis != nil && len(analysis.KeyPoints) > 0 {
		b.WriteString("I understand you're writing about:\n")
		for _, point := range analysis.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
		b.WriteString("\n")
	}

	if len(resp.KBMatches) > 0 {
		b.WriteString("I've found relevant information in our records:\n")
		for _, match := range firstN(resp.KBMatches, 2) {
			fmt.Fprintf(&b, "- %s\n", match.Title)
		}
		b.WriteString("\n")
	}

	if analysis != nil && len(analysis.RequiredActions) > 0 {
		b.WriteString("I'm working on the following items for you:\n")
		for _, action := range analysis.RequiredActions {
			fmt.Fprintf(&b, "- %s\n", action)
		}
		b.WriteString("\n")
	}

	if isRush(f.urgency) {
		b.WriteString("Given the urgency of your request, I'm prioritizing this and will have an update for you within 24 hours.\n\n")
	} else {
		b.WriteString("I'll review this carefully and get back to you with a detailed response within 2-3 business days.\n\n")
	}

	b.WriteString("Please don't hesitate to reach out if you have any additional questions.\n\n")
	b.WriteString("Best regards,\n[Your Name]\n[Your Title]")

	return b.String()
}

func managerSummary(resp *core.AgentResponse, analysis *core.EmailAnalysis) string {
	f := sender(analysis)
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: Customer Communication Summary - %s\n\n", f.category)
	b.WriteString("Executive Summary\n")
	b.WriteString(strings.Repeat("━", 23) + "\n\n")

	fmt.Fprintf(&b, "**Priority Level:** %s | **Sentiment:** %s\n", f.urgency, f.sentiment)
	fmt.Fprintf(&b, "**Customer:** %s\n", f.name)
	fmt.Fprintf(&b, "**Subject:** %s\n\n", f.subject)

	fmt.Fprintf(&b, "**Intent:** %s\n", orDefault(resp.Intent, defaultCategory))
	fmt.Fprintf(&b, "**Confidence:** %d%%\n\n", intentPercent(resp))

	if analysis != nil && len(analysis.KeyPoints) > 0 {
		b.WriteString("**Key Issues Identified:**\n")
		for i, point := range analysis.KeyPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, point)
		}
		b.WriteString("\n")
	}

	if len(resp.KBMatches) > 0 {
		b.WriteString("**Knowledge Base Matches:**\n")
		for _, match := range firstN(resp.KBMatches, 3) {
			fmt.Fprintf(&b, "• %s (%d%%)\n", match.Title, percent(match.Confidence))
		}
		b.WriteString("\n")
	}

	if len(resp.KnowledgeGaps) > 0 {
		b.WriteString("**Knowledge Gaps:**\n")
		for _, gap := range resp.KnowledgeGaps[:min(2, len(resp.KnowledgeGaps))] {
			fmt.Fprintf(&b, "• %s\n", gap.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Recommended Routing:** %s\n", orDefault(resp.Routing, "Customer Support > General Team"))
	fmt.Fprintf(&b, "**Recommended Action:** %s\n", recommendedAction(analysis))

	return b.String()
}

func teamUpdate(resp *core.AgentResponse, analysis *core.EmailAnalysis) string {
	f := sender(analysis)
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: [%s] New %s Email\n\n", strings.ToUpper(f.urgency), f.category)
	b.WriteString("Team,\n\n")
	fmt.Fprintf(&b, "We received a %s priority email that requires attention.\n\n", f.urgency)

	fmt.Fprintf(&b, "**Sender:** %s\n", f.name)
	fmt.Fprintf(&b, "**Subject:** %s\n", f.subject)
	fmt.Fprintf(&b, "**Sentiment:** %s\n", f.sentiment)
	fmt.Fprintf(&b, "**Urgency:** %s\n\n", f.urgency)

	if analysis != nil && len(analysis.KeyPoints) > 0 {
		b.WriteString("**Key Points:**\n")
		for _, point := range analysis.KeyPoints {
			fmt.Fprintf(&b, "• %s\n", point)
		}
		b.WriteString("\n")
	}

	if analysis != nil && len(analysis.RequiredActions) > 0 {
		b.WriteString("**Required Actions:**\n")
		for _, action := range analysis.RequiredActions {
			fmt.Fprintf(&b, "• %s\n", action)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Routing:** %s\n", orDefault(resp.Routing, "Customer Support > General Team"))
	fmt.Fprintf(&b, "**Confidence:** %d%%\n\n", percent(resp.Confidence))

	if len(resp.KBMatches) > 0 {
		b.WriteString("**Related Knowledge Base Entries:**\n")
		for _, match := range firstN(resp.KBMatches, 2) {
			fmt.Fprintf(&b, "• %s\n", match.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("Please review and assign to the appropriate team member.\n\n")
	b.WriteString("[Automated Team Update]")

	return b.String()
}

func crmEntry(resp *core.AgentResponse, analysis *core.EmailAnalysis, now time.Time) string {
	f := sender(analysis)
	var b strings.Builder

	b.WriteString("Contact Activity Log\n")
	b.WriteString(strings.Repeat("═", 20) + "\n\n")

	b.WriteString("**Activity Type:** Email Received\n")
	fmt.Fprintf(&b, "**Date:** %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Contact:** %s\n", f.name)
	fmt.Fprintf(&b, "**Subject:** %s\n\n", f.subject)

	fmt.Fprintf(&b, "**Category:** %s\n", f.category)
	fmt.Fprintf(&b, "**Sentiment:** %s\n", f.sentiment)
	fmt.Fprintf(&b, "**Priority:** %s\n\n", f.urgency)

	b.WriteString("**Summary:**\n")
	if analysis != nil && len(analysis.KeyPoints) > 0 {
		for _, point := range analysis.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	} else {
		fmt.Fprintf(&b, "Customer inquiry regarding %s.\n", f.category)
	}
	b.WriteString("\n")

	b.WriteString("**Next Actions:**\n")
	if analysis != nil && len(analysis.RequiredActions) > 0 {
		for _, action := range analysis.RequiredActions {
			fmt.Fprintf(&b, "- %s\n", action)
		}
	} else {
		b.WriteString("- Follow up with customer\n- Route to appropriate team\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Deal Stage Impact:** %s\n", DealStageImpact(f.sentiment, f.urgency))
	fmt.Fprintf(&b, "**Engagement Score:** %d/10\n\n", EngagementScore(f.sentiment, f.urgency))

	fmt.Fprintf(&b, "**Tags:** #%s #%sPriority #EmailInbound\n\n",
		strings.ReplaceAll(f.category, " ", ""), f.urgency)

	b.WriteString("**Internal Notes:**\n")
	fmt.Fprintf(&b, "Confidence: %d%%\n", percent(resp.Confidence))
	fmt.Fprintf(&b, "Routing: %s\n", orDefault(resp.Routing, "Customer Support > General Team"))

	return b.String()
}

// EngagementScore derives a 1-10 engagement value from sentiment and urgency.
func EngagementScore(sentiment, urgency string) int {
	score := 5
	if sentiment == core.SentimentPositive {
		score += 2
	}
	if sentiment == core.SentimentNegative {
		score--
	}
	if urgency == core.UrgencyHigh || urgency == core.UrgencyCritical {
		score += 2
	}
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// DealStageImpact maps sentiment and urgency to a CRM risk label.
func DealStageImpact(sentiment, urgency string) string {
	if urgency == core.UrgencyCritical && sentiment == core.SentimentNegative {
		return "High Risk - Immediate Attention Required"
	}
	if urgency == core.UrgencyHigh {
		return "Moderate Risk - Active Engagement Needed"
	}
	if sentiment == core.SentimentPositive {
		return "Positive - Upsell Opportunity"
	}
	return "Neutral - Standard Follow-up"
}

// fields is the defaulted view of an EmailAnalysis used by the renderers.
type fields struct {
	name      string
	subject   string
	sentiment string
	urgency   string
	category  string
}

func sender(analysis *core.EmailAnalysis) fields {
	f := fields{
		name:      defaultSender,
		subject:   defaultSubject,
		sentiment: defaultSentiment,
		urgency:   defaultUrgency,
		category:  defaultCategory,
	}
	if analysis == nil {
		return f
	}
	f.name = orDefault(analysis.Sender, f.name)
	f.subject = orDefault(analysis.Subject, f.subject)
	f.sentiment = orDefault(analysis.Sentiment, f.sentiment)
	f.urgency = orDefault(analysis.Urgency, f.urgency)
	f.category = orDefault(analysis.Category, f.category)
	return f
}

// greetingName extracts and capitalizes the local part of the sender address
// for the customer reply salutation.
func greetingName(analysis *core.EmailAnalysis) string {
	if analysis == nil || analysis.Sender == "" {
		return "Valued Customer"
	}
	local := analysis.Sender
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	if sp := strings.IndexAny(local, " \t<"); sp >= 0 {
		local = local[:sp]
	}
	if local == "" {
		return "Valued Customer"
	}
	return titleCaser.String(local)
}

func recommendedAction(analysis *core.EmailAnalysis) string {
	if analysis != nil && len(analysis.RequiredActions) > 0 {
		return analysis.RequiredActions[0]
	}
	return "Review and assign to the appropriate team"
}

// percent converts a [0,1] confidence to a whole percentage, rounding half
// up.
func percent(confidence float64) int {
	return int(math.Floor(confidence*100 + 0.5))
}

func intentPercent(resp *core.AgentResponse) int {
	if resp.IntentConfidence > 0 {
		return percent(resp.IntentConfidence)
	}
	return percent(resp.Confidence)
}

func isRush(urgency string) bool {
	return urgency == core.UrgencyHigh || urgency == core.UrgencyCritical
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func firstN(matches []core.KBMatch, n int) []core.KBMatch {
	if len(matches) <= n {
		return matches
	}
	return matches[:n]
}
