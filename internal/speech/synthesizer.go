package speech

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultCacheSize bounds the synthesizer cache when no size is configured.
const DefaultCacheSize = 128

// Synthesizer memoizes synthesized audio by exact input text. Synthesis
// failures are soft: callers receive an absent result, never an error, and
// "no audio" is a normal displayable outcome.
type Synthesizer struct {
	mu       sync.Mutex
	cache    *lruCache
	provider Provider
}

func NewSynthesizer(provider Provider, cacheSize int) *Synthesizer {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Synthesizer{
		cache:    newLRUCache(cacheSize),
		provider: provider,
	}
}

// Speak returns audio for the text, consulting the cache first. Empty text
// returns an absent result without touching the cache or the provider.
// Concurrent requests for the same uncached text are not deduplicated; both
// hit the provider and the later result wins.
func (s *Synthesizer) Speak(ctx context.Context, text string) (Audio, bool) {
	if strings.TrimSpace(text) == "" {
		return Audio{}, false
	}

	s.mu.Lock()
	if audio, ok := s.cache.get(text); ok {
		s.mu.Unlock()
		return audio, true
	}
	s.mu.Unlock()

	audio, err := s.provider.Synthesize(ctx, text)
	if err != nil {
		slog.Default().Warn("speech synthesis failed",
			"provider", s.provider.Name(),
			"error", err)
		return Audio{}, false
	}

	s.mu.Lock()
	s.cache.put(text, audio)
	s.mu.Unlock()
	return audio, true
}

// CacheLen returns the number of cached payloads.
func (s *Synthesizer) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.len()
}
