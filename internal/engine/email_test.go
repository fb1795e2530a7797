package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

func TestAnalyzeEmail(t *testing.T) {
	input := "From: jane.doe@acme.com\n" +
		"Subject: Refund for duplicate charge\n\n" +
		"I was charged twice on my invoice this month. " +
		"Please process a refund for the duplicate charge. " +
		"This has happened before and I am quite frustrated. " +
		"A fourth sentence that should not become a key point."

	analysis := AnalyzeEmail(input)

	assert.Equal(t, "jane.doe@acme.com", analysis.Sender)
	assert.Equal(t, "Refund for duplicate charge", analysis.Subject)
	assert.Equal(t, core.SentimentNegative, analysis.Sentiment)
	assert.Equal(t, core.UrgencyMedium, analysis.Urgency)
	assert.Equal(t, "Billing", analysis.Category)

	// Key points come from the body only, capped at three
	assert.Len(t, analysis.KeyPoints, 3)
	assert.Equal(t, "I was charged twice on my invoice this month", analysis.KeyPoints[0])
	assert.NotContains(t, analysis.KeyPoints, "Refund for duplicate charge")

	assert.Contains(t, analysis.RequiredActions, "Process refund request")
}

func TestAnalyzeEmailSenderFallsBackToAddressToken(t *testing.T) {
	analysis := AnalyzeEmail("Subject: Hello\n\nReach me at bob@example.com whenever.")

	assert.Equal(t, "bob@example.com", analysis.Sender)
	assert.Equal(t, "Hello", analysis.Subject)
}

func TestAnalyzeEmailWithoutHeaders(t *testing.T) {
	analysis := AnalyzeEmail("contact me at bob.smith@example.com")

	assert.Equal(t, "bob.smith@example.com", analysis.Sender)
	assert.Empty(t, analysis.Subject)
	assert.Equal(t, []string{"Review customer inquiry", "Provide appropriate response"}, analysis.RequiredActions)
}

func TestExtractKeyPoints(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			"short fragments dropped",
			"Ok. Fine! This sentence is long enough to keep.",
			[]string{"This sentence is long enough to keep"},
		},
		{
			"empty body",
			"",
			[]string{},
		},
		{
			"capped at three",
			"The first point is here. The second point is here. The third point is here. The fourth point is here.",
			[]string{"The first point is here", "The second point is here", "The third point is here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractKeyPoints(tt.body))
		})
	}
}

func TestExtractRequiredActions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			"ordered rule table",
			"please cancel my plan and help me with a refund",
			[]string{"Process refund request", "Handle cancellation", "Provide customer support"},
		},
		{
			"default pair",
			"just sharing some news",
			[]string{"Review customer inquiry", "Provide appropriate response"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractRequiredActions(tt.body))
		})
	}
}
