// Package story turns saved vocabulary into short generated stories that
// weave every term in verbatim.
package story

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/k-otsuka/lexinote/internal/inference"
	"github.com/k-otsuka/lexinote/internal/language"
)

// FallbackText is returned when generation fails. The caller still gets a
// story screen, just not a personalized one.
const FallbackText = "Once upon a time, a curious learner opened their notebook and practiced every word until the words began to tell stories of their own."

// ErrNoTerms is returned when a story is requested with no saved terms.
var ErrNoTerms = errors.New("no terms to build a story from")

// markerPattern matches {{ term }} with optional inner spaces.
var markerPattern = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// Story is a generated narrative whose text carries {{ term }} markers
// around the vocabulary it was built from.
type Story struct {
	Text  string
	Terms []string
}

type Generator struct {
	client inference.Client
}

func NewGenerator(client inference.Client) *Generator {
	return &Generator{client: client}
}

// Tell generates a short story in the target language that uses every term
// verbatim, each wrapped in {{ }} markers. When generation fails or the
// model drops the markers, a fixed fallback story is returned instead of an
// error so the caller always has something to show.
func (g *Generator) Tell(ctx context.Context, terms []string, targetLang string) (Story, error) {
	if len(terms) == 0 {
		return Story{}, ErrNoTerms
	}
	lang, err := language.Get(targetLang)
	if err != nil {
		return Story{}, fmt.Errorf("target language > %w", err)
	}

	prompt := buildPrompt(terms, lang.Name)
	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		slog.Default().Warn("story generation failed, using fallback story",
			"terms", len(terms),
			"error", err)
		return Story{Text: FallbackText, Terms: terms}, nil
	}

	text = strings.TrimSpace(text)
	if missing := missingTerms(text, terms); len(missing) > 0 {
		slog.Default().Warn("generated story dropped terms, using fallback story",
			"missing", missing)
		return Story{Text: FallbackText, Terms: terms}, nil
	}

	return Story{Text: text, Terms: terms}, nil
}

func buildPrompt(terms []string, languageName string) string {
	var builder strings.Builder
	builder.WriteString("Write a short story (4 to 6 sentences) in ")
	builder.WriteString(languageName)
	builder.WriteString(" for a language learner. Use every one of these terms exactly as written: ")
	builder.WriteString(strings.Join(terms, ", "))
	builder.WriteString(". Each time a term appears, wrap it in double curly braces, like {{")
	builder.WriteString(terms[0])
	builder.WriteString("}}. Return only the story text.")
	return builder.String()
}

// missingTerms reports which terms have no {{ }} marker in the text.
// Matching is case-insensitive but otherwise verbatim.
func missingTerms(text string, terms []string) []string {
	marked := make(map[string]bool)
	for _, submatches := range markerPattern.FindAllStringSubmatch(text, -1) {
		marked[strings.ToLower(strings.TrimSpace(submatches[1]))] = true
	}

	var missing []string
	for _, term := range terms {
		if !marked[strings.ToLower(term)] {
			missing = append(missing, term)
		}
	}
	return missing
}

// ConversionStyle defines how {{ term }} markers are rendered.
type ConversionStyle int

const (
	// ConversionStyleMarkdown converts {{ term }} to **term**.
	ConversionStyleMarkdown ConversionStyle = iota
	// ConversionStyleTerminal converts {{ term }} to bold terminal text.
	ConversionStyleTerminal
	// ConversionStylePlain strips the markers without formatting.
	ConversionStylePlain
)

// Highlight renders the markers in a story text for the given style.
func Highlight(text string, conversionStyle ConversionStyle) string {
	color.NoColor = false // Force color output even in non-TTY environments
	bold := color.New(color.Bold)

	return markerPattern.ReplaceAllStringFunc(text, func(match string) string {
		submatches := markerPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}
		term := strings.TrimSpace(submatches[1])

		switch conversionStyle {
		case ConversionStyleMarkdown:
			return fmt.Sprintf("**%s**", term)
		case ConversionStyleTerminal:
			return bold.Sprint(term)
		case ConversionStylePlain:
			return term
		default:
			return term
		}
	})
}
