package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the operations consumed from the generation capability.
// All four operations are potentially slow, potentially failing remote calls.
type Client interface {
	// GenerateEntry requests a structured definition payload for a term,
	// constrained to the fixed dictionary schema.
	GenerateEntry(ctx context.Context, params GenerateEntryRequest) (GenerateEntryResponse, error)

	// GenerateImage requests a single illustrative image for a prompt and
	// returns the raw image bytes.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)

	// GenerateSpeech synthesizes speech for a text with the configured voice
	// profile. It returns the audio payload and its reported MIME type.
	GenerateSpeech(ctx context.Context, text string) ([]byte, string, error)

	// GenerateText requests free-form text for a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerateEntryRequest holds parameters for a structured dictionary lookup.
type GenerateEntryRequest struct {
	Term           string `json:"term"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// GenerateEntryResponse is the structured payload the generation capability
// must produce for a lookup. The validate tags are the schema contract:
// a response that fails them is a hard lookup failure, never a partial entry.
type GenerateEntryResponse struct {
	TranslatedTerm   string         `json:"translated_term" validate:"required"`
	DefinitionTarget string         `json:"definition_target"`
	DefinitionNative string         `json:"definition_native"`
	Examples         []ExamplePair  `json:"examples" validate:"len=2,dive"`
	Scenario         []ScenarioLine `json:"scenario" validate:"min=3,max=4,dive"`
	UsageNote        string         `json:"usage_note"`
}

// ExamplePair is a sentence in the target language with its native translation.
type ExamplePair struct {
	Target string `json:"target" validate:"required"`
	Native string `json:"native" validate:"required"`
}

// ScenarioLine is one turn of the short dialogue scenario.
type ScenarioLine struct {
	Speaker     string `json:"speaker" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Translation string `json:"translation" validate:"required"`
}

const (
	DefaultMaxRetryAttempts = 3
)
