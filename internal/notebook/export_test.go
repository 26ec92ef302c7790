package notebook_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/k-otsuka/lexinote/internal/notebook"
	"github.com/k-otsuka/lexinote/internal/testutil"
)

func exportFixture() []notebook.SavedEntry {
	return []notebook.SavedEntry{
		{
			Entry:   testutil.NewEntry(testutil.WithImageURL("media/1.png")),
			SavedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			Review:  notebook.ReviewState{EasinessFactor: notebook.DefaultEasinessFactor},
		},
	}
}

func TestExport_Markdown(t *testing.T) {
	contents, err := notebook.Export(exportFixture(), notebook.ExportMarkdown)
	require.NoError(t, err)

	assert.Contains(t, contents, "# Notebook")
	assert.Contains(t, contents, "## brick (ladrillo)")
	assert.Contains(t, contents, "- La casa está hecha de ladrillos.")
	assert.Contains(t, contents, "**Ana**: ¿Cuántos ladrillos necesitamos?")
	assert.Contains(t, contents, "![brick](media/1.png)")
}

func TestExport_YAML(t *testing.T) {
	contents, err := notebook.Export(exportFixture(), notebook.ExportYAML)
	require.NoError(t, err)

	var decoded map[string][]notebook.SavedEntry
	require.NoError(t, yaml.Unmarshal([]byte(contents), &decoded))
	require.Len(t, decoded["entries"], 1)
	assert.Equal(t, "brick", decoded["entries"][0].Entry.Term)
}

func TestExport_JSON(t *testing.T) {
	contents, err := notebook.Export(exportFixture(), notebook.ExportJSON)
	require.NoError(t, err)

	var decoded struct {
		Entries []notebook.SavedEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(contents), &decoded))
	require.Len(t, decoded.Entries, 1)
	assert.Equal(t, "ladrillo", decoded.Entries[0].Entry.TranslatedTerm)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	_, err := notebook.Export(exportFixture(), notebook.ExportFormat("csv"))
	assert.Error(t, err)
}
