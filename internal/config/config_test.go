package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k-otsuka/lexinote/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	t.Run("defaults", func(t *testing.T) {
		loader, err := config.NewConfigLoader(writeConfig(t, ""))
		require.NoError(t, err)

		cfg, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "test-gemini-key", cfg.Gemini.APIKey)
		assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.TextModel)
		assert.Equal(t, "Kore", cfg.Gemini.Voice)
		assert.Equal(t, time.Minute, cfg.Gemini.RequestTimeout)
		assert.Equal(t, "snapshot", cfg.Notebook.Backend)
		assert.Equal(t, 128, cfg.Speech.CacheSize)
		assert.Equal(t, "en", cfg.Learning.SourceLanguage)
		assert.Equal(t, "es", cfg.Learning.TargetLanguage)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `notebook:
  backend: sqlite
  sqlite_path: /tmp/lexinote.db
speech:
  cache_size: 16
learning:
  source_language: ja
  target_language: en
`)
		loader, err := config.NewConfigLoader(path)
		require.NoError(t, err)

		cfg, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Notebook.Backend)
		assert.Equal(t, "/tmp/lexinote.db", cfg.Notebook.SQLitePath)
		assert.Equal(t, 16, cfg.Speech.CacheSize)
		assert.Equal(t, "ja", cfg.Learning.SourceLanguage)
	})

	t.Run("invalid backend is rejected", func(t *testing.T) {
		path := writeConfig(t, `notebook:
  backend: postgres
`)
		loader, err := config.NewConfigLoader(path)
		require.NoError(t, err)

		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("missing API key is rejected", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		loader, err := config.NewConfigLoader(writeConfig(t, ""))
		require.NoError(t, err)

		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
