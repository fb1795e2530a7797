package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeGapsUnmarshalLegacyStrings(t *testing.T) {
	data := `["missing warranty terms", "no shipping estimate"]`

	var gaps KnowledgeGaps
	require.NoError(t, json.Unmarshal([]byte(data), &gaps))

	require.Len(t, gaps, 2)
	assert.Equal(t, "missing warranty terms", gaps[0].Description)
	assert.Zero(t, gaps[0].Confidence)
}

func TestKnowledgeGapsUnmarshalObjects(t *testing.T) {
	data := `[{"description":"no pricing tier data","confidence":0.8,"gap_reason":"catalog incomplete"}]`

	var gaps KnowledgeGaps
	require.NoError(t, json.Unmarshal([]byte(data), &gaps))

	require.Len(t, gaps, 1)
	assert.Equal(t, "no pricing tier data", gaps[0].Description)
	assert.Equal(t, 0.8, gaps[0].Confidence)
	assert.Equal(t, "catalog incomplete", gaps[0].GapReason)
}

func TestKnowledgeGapsUnmarshalMixed(t *testing.T) {
	data := `["plain gap", {"description":"object gap","confidence":0.5}]`

	var gaps KnowledgeGaps
	require.NoError(t, json.Unmarshal([]byte(data), &gaps))

	require.Len(t, gaps, 2)
	assert.Equal(t, "plain gap", gaps[0].Description)
	assert.Equal(t, "object gap", gaps[1].Description)
}

func TestEnsureDefaults(t *testing.T) {
	resp := &AgentResponse{
		Intent:           "Test",
		Confidence:       1.7,
		IntentConfidence: -0.2,
		Items:            []LineItem{{SKU: "A", Confidence: 2}},
		KBMatches:        []KBMatch{{Title: "B", Confidence: -1}},
	}

	resp.EnsureDefaults()

	assert.NotNil(t, resp.Items)
	assert.NotNil(t, resp.KBMatches)
	assert.NotNil(t, resp.KnowledgeGaps)
	assert.NotNil(t, resp.ExtractedMetadata)

	assert.Equal(t, 1.0, resp.Confidence)
	assert.Equal(t, 0.0, resp.IntentConfidence)
	assert.Equal(t, 1.0, resp.Items[0].Confidence)
	assert.Equal(t, 0.0, resp.KBMatches[0].Confidence)
}

func TestCloneIsDeep(t *testing.T) {
	orig := &AgentResponse{
		Intent: "Original",
		EmailAnalysis: &EmailAnalysis{
			Sender:    "a@b.com",
			KeyPoints: []string{"one"},
		},
		Items:             []LineItem{{SKU: "X"}},
		KBMatches:         []KBMatch{{Title: "Y"}},
		KnowledgeGaps:     KnowledgeGaps{{Description: "Z"}},
		ExtractedMetadata: map[string]interface{}{"k": "v"},
	}

	clone := orig.Clone()
	clone.Intent = "Changed"
	clone.EmailAnalysis.Sender = "changed@b.com"
	clone.EmailAnalysis.KeyPoints[0] = "changed"
	clone.Items[0].SKU = "changed"
	clone.KBMatches[0].Title = "changed"
	clone.KnowledgeGaps[0].Description = "changed"
	clone.ExtractedMetadata["k"] = "changed"

	assert.Equal(t, "Original", orig.Intent)
	assert.Equal(t, "a@b.com", orig.EmailAnalysis.Sender)
	assert.Equal(t, "one", orig.EmailAnalysis.KeyPoints[0])
	assert.Equal(t, "X", orig.Items[0].SKU)
	assert.Equal(t, "Y", orig.KBMatches[0].Title)
	assert.Equal(t, "Z", orig.KnowledgeGaps[0].Description)
	assert.Equal(t, "v", orig.ExtractedMetadata["k"])
}

func TestInboundEmailText(t *testing.T) {
	email := &InboundEmail{
		From:    "jane@acme.com",
		Subject: "Hello",
		Body:    "Body text",
	}

	assert.Equal(t, "From: jane@acme.com\nSubject: Hello\n\nBody text", email.Text())
}

func TestInboundEmailTextBodyOnly(t *testing.T) {
	email := &InboundEmail{Body: "just text"}

	assert.Equal(t, "\njust text", email.Text())
}
