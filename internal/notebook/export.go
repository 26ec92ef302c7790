package notebook

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportFormat selects the serialization of an exported notebook.
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportYAML     ExportFormat = "yaml"
	ExportJSON     ExportFormat = "json"
)

// Export renders saved entries in the requested format. Markdown is meant
// for reading (and PDF conversion); YAML and JSON are meant for re-import
// into other tools.
func Export(entries []SavedEntry, format ExportFormat) (string, error) {
	switch format {
	case ExportMarkdown:
		return exportMarkdown(entries), nil
	case ExportYAML:
		contents, err := yaml.Marshal(map[string][]SavedEntry{"entries": entries})
		if err != nil {
			return "", fmt.Errorf("yaml.Marshal > %w", err)
		}
		return string(contents), nil
	case ExportJSON:
		contents, err := json.MarshalIndent(snapshotFile{Entries: entries}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("json.Marshal > %w", err)
		}
		return string(contents), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportMarkdown(entries []SavedEntry) string {
	var builder strings.Builder
	builder.WriteString("# Notebook\n")

	for _, saved := range entries {
		entry := saved.Entry
		builder.WriteString(fmt.Sprintf("\n## %s (%s)\n\n", entry.Term, entry.TranslatedTerm))
		builder.WriteString(fmt.Sprintf("%s\n\n", entry.DefinitionNative))
		builder.WriteString(fmt.Sprintf("> %s\n", entry.DefinitionTarget))

		if len(entry.Examples) > 0 {
			builder.WriteString("\n### Examples\n\n")
			for _, example := range entry.Examples {
				builder.WriteString(fmt.Sprintf("- %s\n", example.Target))
				builder.WriteString(fmt.Sprintf("  - %s\n", example.Native))
			}
		}

		if len(entry.Scenario) > 0 {
			builder.WriteString("\n### Dialogue\n\n")
			for _, line := range entry.Scenario {
				builder.WriteString(fmt.Sprintf("- **%s**: %s\n", line.Speaker, line.Text))
				if line.Translation != "" {
					builder.WriteString(fmt.Sprintf("  - %s\n", line.Translation))
				}
			}
		}

		if entry.UsageNote != "" {
			builder.WriteString(fmt.Sprintf("\n### Usage\n\n%s\n", entry.UsageNote))
		}
		if entry.ImageURL != "" {
			builder.WriteString(fmt.Sprintf("\n![%s](%s)\n", entry.Term, entry.ImageURL))
		}
	}

	return builder.String()
}
