// Package chat answers follow-up questions about the entry a learner is
// currently looking at.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/k-otsuka/lexinote/internal/dictionary"
	"github.com/k-otsuka/lexinote/internal/inference"
)

// FallbackAnswer is shown when the model call fails. The question still
// lands in the transcript so the learner can retry it.
const FallbackAnswer = "Sorry, I could not answer that right now. Please try again."

// ErrEmptyQuestion is returned when a blank question is submitted.
var ErrEmptyQuestion = errors.New("empty question")

// ErrNoCurrentEntry is returned when no lookup has completed yet.
var ErrNoCurrentEntry = errors.New("no entry to talk about")

// Assistant holds a conversation grounded in the session's current entry.
type Assistant struct {
	client  inference.Client
	session *dictionary.Session
}

func NewAssistant(client inference.Client, session *dictionary.Session) *Assistant {
	return &Assistant{client: client, session: session}
}

// Ask records the question, asks the model with the current entry and the
// transcript so far as context, records the answer and returns it. A model
// failure yields a fixed fallback answer rather than an error.
func (a *Assistant) Ask(ctx context.Context, question string) (dictionary.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return dictionary.ChatMessage{}, ErrEmptyQuestion
	}

	entry := a.session.Current()
	if entry == nil {
		return dictionary.ChatMessage{}, ErrNoCurrentEntry
	}

	// Build the prompt before appending so the transcript does not contain
	// the question twice.
	prompt := buildPrompt(entry, a.session.Messages(), question)
	a.session.Append(dictionary.RoleUser, question)

	answer, err := a.client.GenerateText(ctx, prompt)
	if err != nil {
		slog.Default().Warn("chat answer generation failed, using fallback answer",
			"term", entry.Term,
			"error", err)
		return a.session.Append(dictionary.RoleModel, FallbackAnswer), nil
	}

	return a.session.Append(dictionary.RoleModel, strings.TrimSpace(answer)), nil
}

func buildPrompt(entry *dictionary.Entry, transcript []dictionary.ChatMessage, question string) string {
	var builder strings.Builder
	builder.WriteString("You are a friendly language tutor. The learner just looked up the term ")
	builder.WriteString(fmt.Sprintf("%q (translated: %q).\n", entry.Term, entry.TranslatedTerm))
	builder.WriteString("Definition: ")
	builder.WriteString(entry.DefinitionNative)
	builder.WriteString("\nUsage note: ")
	builder.WriteString(entry.UsageNote)
	builder.WriteString("\n")

	if len(transcript) > 0 {
		builder.WriteString("\nConversation so far:\n")
		for _, message := range transcript {
			builder.WriteString(fmt.Sprintf("%s: %s\n", message.Role, message.Text))
		}
	}

	builder.WriteString("\nAnswer the learner's question concisely, in the language they asked it in.\n")
	builder.WriteString("Question: ")
	builder.WriteString(question)
	return builder.String()
}
