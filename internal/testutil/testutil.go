// Package testutil provides shared test helpers for config files and
// dictionary entry fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/k-otsuka/lexinote/internal/dictionary"
)

// SetupTestConfig creates a minimal config file and the directories it
// points at, returning the config file path.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"notebooks", "media"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`notebook:
  backend: snapshot
  snapshot_path: %s
media:
  directory: %s
learning:
  source_language: en
  target_language: es
`,
		filepath.Join(tmpDir, "notebooks", "notebook.json"),
		filepath.Join(tmpDir, "media"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// EntryOption configures optional fields of an entry fixture.
type EntryOption func(*dictionary.Entry)

func WithEntryID(id string) EntryOption {
	return func(e *dictionary.Entry) { e.ID = id }
}

func WithImageURL(url string) EntryOption {
	return func(e *dictionary.Entry) { e.ImageURL = url }
}

// NewEntry returns a fully populated entry fixture for an English learner
// of Spanish looking up "brick".
func NewEntry(opts ...EntryOption) dictionary.Entry {
	entry := dictionary.Entry{
		ID:               "1",
		Term:             "brick",
		TranslatedTerm:   "ladrillo",
		DefinitionTarget: "Bloque de arcilla cocida usado en la construcción.",
		DefinitionNative: "A block of baked clay used for building.",
		Examples: []dictionary.Example{
			{Target: "La casa está hecha de ladrillos.", Native: "The house is made of bricks."},
			{Target: "Compró mil ladrillos para el muro.", Native: "He bought a thousand bricks for the wall."},
		},
		Scenario: []dictionary.ScenarioLine{
			{Speaker: "Ana", Text: "¿Cuántos ladrillos necesitamos?", Translation: "How many bricks do we need?"},
			{Speaker: "Luis", Text: "Unos doscientos, creo.", Translation: "About two hundred, I think."},
			{Speaker: "Ana", Text: "Entonces compremos trescientos.", Translation: "Then let's buy three hundred."},
		},
		UsageNote:  "Ladrillo also appears in the idiom 'ser un ladrillo', meaning something very boring.",
		SourceLang: "en",
		TargetLang: "es",
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}
