// Package dictionary turns a search term into a fully populated dictionary
// entry by sequencing the generation capability's text and image operations.
package dictionary

import (
	"time"
)

// Placeholder text for optional fields the generation capability left empty.
const (
	PlaceholderDefinition = "Definition not found"
	PlaceholderUsageNote  = "No usage note available"
)

// Entry is a saved unit of vocabulary. Entries are created once per
// successful lookup and immutable thereafter.
type Entry struct {
	ID               string         `json:"id" yaml:"id"`
	Term             string         `json:"term" yaml:"term"`
	TranslatedTerm   string         `json:"translated_term" yaml:"translated_term"`
	DefinitionTarget string         `json:"definition_target" yaml:"definition_target"`
	DefinitionNative string         `json:"definition_native" yaml:"definition_native"`
	Examples         []Example      `json:"examples" yaml:"examples"`
	Scenario         []ScenarioLine `json:"scenario" yaml:"scenario"`
	UsageNote        string         `json:"usage_note" yaml:"usage_note"`
	ImageURL         string         `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	SourceLang       string         `json:"source_lang" yaml:"source_lang"`
	TargetLang       string         `json:"target_lang" yaml:"target_lang"`
	CreatedAt        time.Time      `json:"created_at" yaml:"created_at"`
}

// Example is a sentence pair in the target and native languages.
type Example struct {
	Target string `json:"target" yaml:"target"`
	Native string `json:"native" yaml:"native"`
}

// ScenarioLine is one turn of the entry's dialogue scenario.
type ScenarioLine struct {
	Speaker     string `json:"speaker" yaml:"speaker"`
	Text        string `json:"text" yaml:"text"`
	Translation string `json:"translation" yaml:"translation"`
}
