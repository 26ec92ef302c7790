package main

import (
	"fmt"

	"github.com/k-otsuka/lexinote/internal/config"
	"github.com/k-otsuka/lexinote/internal/inference"
	"github.com/k-otsuka/lexinote/internal/inference/gemini"
	"github.com/k-otsuka/lexinote/internal/notebook"
	"github.com/k-otsuka/lexinote/internal/speech"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newInferenceClient builds the Gemini client behind a circuit breaker so a
// run of remote failures short-circuits instead of piling up retries.
func newInferenceClient(cfg *config.Config) (inference.Client, error) {
	client, err := gemini.NewClient(gemini.Config{
		APIKey:           cfg.Gemini.APIKey,
		TextModel:        cfg.Gemini.TextModel,
		ImageModel:       cfg.Gemini.ImageModel,
		SpeechModel:      cfg.Gemini.SpeechModel,
		Voice:            cfg.Gemini.Voice,
		MaxRetryAttempts: inference.DefaultMaxRetryAttempts,
		RequestTimeout:   cfg.Gemini.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini.NewClient > %w", err)
	}
	return inference.NewBreakerClient(client), nil
}

func newStore(cfg *config.Config) (notebook.Store, error) {
	switch cfg.Notebook.Backend {
	case "sqlite":
		return notebook.NewSQLiteStore(cfg.Notebook.SQLitePath)
	default:
		return notebook.NewSnapshotStore(cfg.Notebook.SnapshotPath)
	}
}

// newSynthesizer wires the speech pipeline: Gemini voice first, OpenAI as
// fallback when an OpenAI key is configured.
func newSynthesizer(cfg *config.Config, client inference.Client) *speech.Synthesizer {
	var provider speech.Provider = speech.NewGeminiProvider(client)
	if cfg.OpenAI.APIKey != "" {
		if fallback, err := speech.NewOpenAIProvider(cfg.OpenAI.APIKey); err == nil {
			provider = speech.NewProviderWithFallback(provider, fallback)
		}
	}
	return speech.NewSynthesizer(provider, cfg.Speech.CacheSize)
}
