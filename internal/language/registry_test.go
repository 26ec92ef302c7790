package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k-otsuka/lexinote/internal/language"
)

func TestGet(t *testing.T) {
	t.Run("known language", func(t *testing.T) {
		lang, err := language.Get("es")
		require.NoError(t, err)
		assert.Equal(t, "Spanish", lang.Name)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, err := language.Get("xx")
		assert.ErrorIs(t, err, language.ErrUnknownLanguage)
	})
}

func TestIsSupported(t *testing.T) {
	assert.True(t, language.IsSupported("en"))
	assert.True(t, language.IsSupported("ja"))
	assert.False(t, language.IsSupported(""))
	assert.False(t, language.IsSupported("EN"))
}

func TestSupported_ReturnsACopy(t *testing.T) {
	supported := language.Supported()
	require.NotEmpty(t, supported)

	supported[0].Name = "mutated"

	again := language.Supported()
	assert.NotEqual(t, "mutated", again[0].Name)
}
