package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePureJSON(t *testing.T) {
	resp, err := Decode(`{"intent":"Support Request","routing":"Support > Tier 1","confidence":0.8}`)
	require.NoError(t, err)

	assert.Equal(t, "Support Request", resp.Intent)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.NotNil(t, resp.Items)
}

func TestDecodeWrappedJSON(t *testing.T) {
	text := "Here is the analysis you asked for:\n```json\n" +
		`{"intent":"Pricing Inquiry","routing":"Sales > Quotes","confidence":0.9}` +
		"\n```\nLet me know if you need more."

	resp, err := Decode(text)
	require.NoError(t, err)

	assert.Equal(t, "Pricing Inquiry", resp.Intent)
}

func TestDecodeNoJSON(t *testing.T) {
	_, err := Decode("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode("prefix {not valid json} suffix")
	assert.Error(t, err)
}
