package gemini

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
	})

	t.Run("valid config", func(t *testing.T) {
		config := DefaultConfig()
		config.APIKey = "test-key"
		client, err := NewClient(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestFirstText(t *testing.T) {
	t.Run("returns the first non-empty text part", func(t *testing.T) {
		c := candidate{Content: content{Parts: []part{
			{InlineData: &blob{MIMEType: "image/png", Data: "aaaa"}},
			{Text: "hello"},
			{Text: "ignored"},
		}}}

		text, err := firstText(c)
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})

	t.Run("no text part", func(t *testing.T) {
		_, err := firstText(candidate{FinishReason: "SAFETY"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SAFETY")
	})
}

func TestFirstInlineData(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02})
	c := candidate{Content: content{Parts: []part{
		{Text: "caption"},
		{InlineData: &blob{MIMEType: "audio/L16;codec=pcm;rate=24000", Data: payload}},
	}}}

	t.Run("matching prefix", func(t *testing.T) {
		data, mime, err := firstInlineData(c, "audio/")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, data)
		assert.Equal(t, "audio/L16;codec=pcm;rate=24000", mime)
	})

	t.Run("no matching prefix", func(t *testing.T) {
		_, _, err := firstInlineData(c, "image/")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		broken := candidate{Content: content{Parts: []part{
			{InlineData: &blob{MIMEType: "audio/wav", Data: "!!!"}},
		}}}
		_, _, err := firstInlineData(broken, "audio/")
		assert.Error(t, err)
	})
}

func TestEntrySchema(t *testing.T) {
	s := entrySchema()

	assert.Equal(t, "OBJECT", s.Type)
	assert.ElementsMatch(t, []string{
		"translated_term", "definition_target", "definition_native",
		"examples", "scenario", "usage_note",
	}, s.Required)

	examples := s.Properties["examples"]
	require.NotNil(t, examples)
	assert.Equal(t, 2, examples.MinItems)
	assert.Equal(t, 2, examples.MaxItems)

	scenario := s.Properties["scenario"]
	require.NotNil(t, scenario)
	assert.Equal(t, 3, scenario.MinItems)
	assert.Equal(t, 4, scenario.MaxItems)
	assert.ElementsMatch(t, []string{"speaker", "text", "translation"}, scenario.Items.Required)
}
