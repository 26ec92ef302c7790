// Package speech synthesizes spoken audio for display strings, memoizing
// results so repeated requests for the same text never hit the remote
// service twice.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/k-otsuka/lexinote/internal/inference"
)

// Audio is an encoded speech payload ready for the playback adapter.
type Audio struct {
	// Payload is the base64-encoded audio data.
	Payload string
	// MIMEType is the encoding reported by the provider, e.g.
	// "audio/L16;codec=pcm;rate=24000" or "audio/wav".
	MIMEType string
}

// Empty reports whether the payload is absent.
func (a Audio) Empty() bool {
	return a.Payload == ""
}

// Provider defines the interface for text-to-speech providers.
type Provider interface {
	// Synthesize generates audio for the text with the provider's fixed voice.
	Synthesize(ctx context.Context, text string) (Audio, error)

	// Name returns the provider name.
	Name() string
}

// GeminiProvider synthesizes speech through the generation client.
type GeminiProvider struct {
	client inference.Client
}

func NewGeminiProvider(client inference.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

func (p *GeminiProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	data, mimeType, err := p.client.GenerateSpeech(ctx, text)
	if err != nil {
		return Audio{}, fmt.Errorf("client.GenerateSpeech > %w", err)
	}
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("no audio data received")
	}
	return Audio{
		Payload:  base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

// ProviderWithFallback wraps a primary provider with a fallback option.
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if
// primary fails.
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first, falls back to secondary on error.
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text string) (Audio, error) {
	audio, err := p.primary.Synthesize(ctx, text)
	if err != nil {
		slog.Default().Warn("primary speech provider failed, falling back",
			"primary", p.primary.Name(),
			"fallback", p.fallback.Name(),
			"error", err)
		return p.fallback.Synthesize(ctx, text)
	}
	return audio, nil
}

// Name returns the provider name.
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}
