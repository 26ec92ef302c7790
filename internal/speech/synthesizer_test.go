package speech

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	p.calls++
	if p.err != nil {
		return Audio{}, p.err
	}
	return Audio{Payload: "audio-for-" + text, MIMEType: "audio/wav"}, nil
}

func (p *countingProvider) Name() string {
	return "counting"
}

func TestSynthesizer_Speak(t *testing.T) {
	t.Run("same text is synthesized once", func(t *testing.T) {
		provider := &countingProvider{}
		synthesizer := NewSynthesizer(provider, DefaultCacheSize)

		first, ok := synthesizer.Speak(context.Background(), "hola")
		assert.True(t, ok)
		second, ok := synthesizer.Speak(context.Background(), "hola")
		assert.True(t, ok)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("different texts are synthesized separately", func(t *testing.T) {
		provider := &countingProvider{}
		synthesizer := NewSynthesizer(provider, DefaultCacheSize)

		synthesizer.Speak(context.Background(), "hola")
		synthesizer.Speak(context.Background(), "adiós")

		assert.Equal(t, 2, provider.calls)
		assert.Equal(t, 2, synthesizer.CacheLen())
	})

	t.Run("empty text never reaches the provider", func(t *testing.T) {
		provider := &countingProvider{}
		synthesizer := NewSynthesizer(provider, DefaultCacheSize)

		audio, ok := synthesizer.Speak(context.Background(), "   ")
		assert.False(t, ok)
		assert.True(t, audio.Empty())
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("provider failure is soft", func(t *testing.T) {
		provider := &countingProvider{err: errors.New("voice backend down")}
		synthesizer := NewSynthesizer(provider, DefaultCacheSize)

		audio, ok := synthesizer.Speak(context.Background(), "hola")
		assert.False(t, ok)
		assert.True(t, audio.Empty())
		assert.Equal(t, 0, synthesizer.CacheLen())

		// Failures are not cached, so a retry hits the provider again.
		synthesizer.Speak(context.Background(), "hola")
		assert.Equal(t, 2, provider.calls)
	})
}

func TestSynthesizer_Eviction(t *testing.T) {
	provider := &countingProvider{}
	synthesizer := NewSynthesizer(provider, 2)

	synthesizer.Speak(context.Background(), "uno")
	synthesizer.Speak(context.Background(), "dos")
	synthesizer.Speak(context.Background(), "tres")
	assert.Equal(t, 2, synthesizer.CacheLen())

	// "uno" was evicted; speaking it again costs another provider call.
	synthesizer.Speak(context.Background(), "uno")
	assert.Equal(t, 4, provider.calls)
}

func TestLRUCache(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", Audio{Payload: "1"})
	cache.put("b", Audio{Payload: "2"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	assert.True(t, ok)

	cache.put("c", Audio{Payload: "3"})

	_, ok = cache.get("b")
	assert.False(t, ok)
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.len())
}

func TestProviderWithFallback(t *testing.T) {
	t.Run("primary success skips the fallback", func(t *testing.T) {
		primary := &countingProvider{}
		fallback := &countingProvider{}
		provider := NewProviderWithFallback(primary, fallback)

		audio, err := provider.Synthesize(context.Background(), "hola")
		assert.NoError(t, err)
		assert.False(t, audio.Empty())
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("primary failure falls back", func(t *testing.T) {
		primary := &countingProvider{err: fmt.Errorf("quota exceeded")}
		fallback := &countingProvider{}
		provider := NewProviderWithFallback(primary, fallback)

		audio, err := provider.Synthesize(context.Background(), "hola")
		assert.NoError(t, err)
		assert.False(t, audio.Empty())
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("both failing surfaces the fallback error", func(t *testing.T) {
		primary := &countingProvider{err: fmt.Errorf("quota exceeded")}
		fallback := &countingProvider{err: fmt.Errorf("no key")}
		provider := NewProviderWithFallback(primary, fallback)

		_, err := provider.Synthesize(context.Background(), "hola")
		assert.Error(t, err)
	})
}
