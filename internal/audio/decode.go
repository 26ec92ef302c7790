// Package audio decodes synthesized speech payloads and plays them through a
// platform audio player. Payloads arrive base64-encoded and are not guaranteed
// to carry a self-describing container: some service responses are WAV-framed,
// others are headerless linear PCM.
package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

const (
	// Raw payloads without container framing are interpreted as signed
	// 16-bit little-endian mono at 24 kHz, the framing the speech service
	// uses for its linear-PCM responses.
	FallbackSampleRate = 24000
	FallbackChannels   = 1
)

var (
	// ErrEmptyPayload is returned for an empty audio payload.
	ErrEmptyPayload = errors.New("empty audio payload")
)

// Clip is a decoded audio buffer: interleaved samples normalized to [-1, 1].
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float64
}

// Duration returns the playback length of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// Decode turns a base64-encoded audio payload into a playable clip.
// It first attempts a WAV container parse; if the payload is not framed,
// it falls back to the fixed linear16 interpretation. A payload that fits
// neither (for example an odd byte count) is an error, not a guess.
func Decode(payload string) (Clip, error) {
	if payload == "" {
		return Clip{}, ErrEmptyPayload
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Clip{}, fmt.Errorf("base64.DecodeString > %w", err)
	}
	return DecodeBytes(raw)
}

// DecodeBytes decodes an already base64-decoded payload.
func DecodeBytes(raw []byte) (Clip, error) {
	if len(raw) == 0 {
		return Clip{}, ErrEmptyPayload
	}

	if clip, err := decodeWAV(raw); err == nil {
		return clip, nil
	}

	samples, err := linear16Samples(raw)
	if err != nil {
		return Clip{}, fmt.Errorf("raw PCM fallback > %w", err)
	}
	return Clip{
		SampleRate: FallbackSampleRate,
		Channels:   FallbackChannels,
		Samples:    samples,
	}, nil
}

// linear16Samples interprets bytes as signed 16-bit little-endian samples
// normalized to [-1, 1].
func linear16Samples(raw []byte) ([]float64, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("odd payload length %d is not valid linear16 framing", len(raw))
	}
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float64(s) / 32768.0
	}
	return samples, nil
}
