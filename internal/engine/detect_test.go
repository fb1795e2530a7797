package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

func TestIsEmailShaped(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"from header", "From: jane@acme.com\nHello there", true},
		{"subject header", "Subject: Quick question\nHello there", true},
		{"from header mid-input", "forwarding this\nFrom: jane@acme.com\nbody", true},
		{"bare address token", "please contact bob@example.com about this", true},
		{"uppercase header", "FROM: jane@acme.com", true},
		{"plain text", "We need a quote for stainless steel tanks", false},
		{"empty input", "", false},
		{"from not at line start", "a message from our team", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmailShaped(tt.input))
		})
	}
}

func TestDetectSentiment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"urgent marker", "this is urgent, please respond", core.SentimentUrgent},
		{"negative marker", "I have a problem with my account", core.SentimentNegative},
		{"positive marker", "thank you for the excellent service", core.SentimentPositive},
		{"no markers", "here is the report you asked for", core.SentimentNeutral},
		{"urgent beats negative", "urgent problem with the invoice", core.SentimentUrgent},
		{"negative beats positive", "thank you, but I am frustrated with the delays", core.SentimentNegative},
		{"case insensitive", "URGENT: server down", core.SentimentUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectSentiment(tt.input))
		})
	}
}

func TestDetectUrgency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"critical marker", "we need this asap", core.UrgencyCritical},
		{"high marker", "please handle this quickly", core.UrgencyHigh},
		{"low marker", "reply when you can", core.UrgencyLow},
		{"no markers", "here is an update", core.UrgencyMedium},
		{"critical beats high", "urgent and important", core.UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectUrgency(tt.input))
		})
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"billing", "a question about my invoice", "Billing"},
		{"technical", "I found a bug in the export", "Technical Support"},
		{"feature", "a suggestion for the dashboard", "Feature Request"},
		{"account", "I cannot reset my password", "Account Management"},
		{"default", "general note about the weather", "General Inquiry"},
		{"billing beats technical", "billing error on my statement", "Billing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectCategory(tt.input))
		})
	}
}
