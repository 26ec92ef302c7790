package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/k-otsuka/lexinote/internal/inference"
	"github.com/k-otsuka/lexinote/internal/language"
)

var (
	// ErrEmptyTerm is returned when a lookup is requested for an empty term.
	ErrEmptyTerm = errors.New("empty search term")

	// ErrInvalidEntryPayload is returned when the generation capability's
	// response does not satisfy the entry schema. This is a hard lookup
	// failure: no partial entry is assembled.
	ErrInvalidEntryPayload = errors.New("invalid entry payload")
)

// Orchestrator sequences the two remote calls of a lookup: a structured
// definition request followed by an image request derived from its result.
// Text failure aborts the lookup; image failure only drops the image.
type Orchestrator struct {
	client   inference.Client
	validate *validator.Validate
	mediaDir string
}

func NewOrchestrator(client inference.Client, mediaDir string) *Orchestrator {
	return &Orchestrator{
		client:   client,
		validate: validator.New(),
		mediaDir: mediaDir,
	}
}

// Lookup produces a fully populated Entry for a term, or fails. The two
// remote calls are strictly sequential: the image prompt depends on the
// text result. Concurrent lookups for the same term are not deduplicated.
func (o *Orchestrator) Lookup(ctx context.Context, term, sourceLang, targetLang string) (*Entry, error) {
	if term == "" {
		return nil, ErrEmptyTerm
	}
	if _, err := language.Get(sourceLang); err != nil {
		return nil, fmt.Errorf("source language > %w", err)
	}
	if _, err := language.Get(targetLang); err != nil {
		return nil, fmt.Errorf("target language > %w", err)
	}

	response, err := o.client.GenerateEntry(ctx, inference.GenerateEntryRequest{
		Term:           term,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("client.GenerateEntry > %w", err)
	}
	if err := o.validate.Struct(response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntryPayload, err)
	}

	entry := o.assemble(term, sourceLang, targetLang, response)

	// The image is decorative: its failure never aborts the lookup.
	imagePrompt := fmt.Sprintf(
		"A clear, friendly illustration of the concept %q: %s. Simple flat style, no text in the image.",
		response.TranslatedTerm, entry.DefinitionNative,
	)
	imageData, err := o.client.GenerateImage(ctx, imagePrompt)
	if err != nil {
		slog.Default().Warn("image generation failed, entry assembled without image",
			"term", term,
			"error", err)
	} else {
		imageURL, err := o.saveImage(entry.ID, imageData)
		if err != nil {
			slog.Default().Warn("could not persist image, entry assembled without image",
				"term", term,
				"error", err)
		} else {
			entry.ImageURL = imageURL
		}
	}

	return entry, nil
}

func (o *Orchestrator) assemble(term, sourceLang, targetLang string, response inference.GenerateEntryResponse) *Entry {
	examples := make([]Example, len(response.Examples))
	for i, example := range response.Examples {
		examples[i] = Example{Target: example.Target, Native: example.Native}
	}
	scenario := make([]ScenarioLine, len(response.Scenario))
	for i, line := range response.Scenario {
		scenario[i] = ScenarioLine{Speaker: line.Speaker, Text: line.Text, Translation: line.Translation}
	}

	entry := &Entry{
		ID:               newEntryID(),
		Term:             term,
		TranslatedTerm:   response.TranslatedTerm,
		DefinitionTarget: response.DefinitionTarget,
		DefinitionNative: response.DefinitionNative,
		Examples:         examples,
		Scenario:         scenario,
		UsageNote:        response.UsageNote,
		SourceLang:       sourceLang,
		TargetLang:       targetLang,
		CreatedAt:        time.Now(),
	}
	if entry.DefinitionTarget == "" {
		entry.DefinitionTarget = PlaceholderDefinition
	}
	if entry.DefinitionNative == "" {
		entry.DefinitionNative = PlaceholderDefinition
	}
	if entry.UsageNote == "" {
		entry.UsageNote = PlaceholderUsageNote
	}
	return entry
}

func (o *Orchestrator) saveImage(entryID string, data []byte) (string, error) {
	if o.mediaDir == "" {
		return "", fmt.Errorf("no media directory configured")
	}
	if err := os.MkdirAll(o.mediaDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", o.mediaDir, err)
	}
	path := filepath.Join(o.mediaDir, entryID+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// newEntryID derives an identity from the creation time. Nanosecond
// resolution keeps IDs unique within a process.
func newEntryID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
