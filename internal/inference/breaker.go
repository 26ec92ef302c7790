package inference

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerClient wraps a Client with a circuit breaker so that a misbehaving
// generation backend fails fast instead of holding every lookup until its
// timeout expires.
type BreakerClient struct {
	client  Client
	breaker *gobreaker.CircuitBreaker
}

var _ Client = (*BreakerClient)(nil)

// NewBreakerClient creates a circuit-breaking decorator around a Client.
// The breaker opens after 5 consecutive failures and probes again after 30s.
func NewBreakerClient(client Client) *BreakerClient {
	return &BreakerClient{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "generation",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (b *BreakerClient) GenerateEntry(ctx context.Context, params GenerateEntryRequest) (GenerateEntryResponse, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.client.GenerateEntry(ctx, params)
	})
	if err != nil {
		return GenerateEntryResponse{}, err
	}
	return result.(GenerateEntryResponse), nil
}

func (b *BreakerClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.client.GenerateImage(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (b *BreakerClient) GenerateSpeech(ctx context.Context, text string) ([]byte, string, error) {
	type speechResult struct {
		data []byte
		mime string
	}
	result, err := b.breaker.Execute(func() (interface{}, error) {
		data, mime, err := b.client.GenerateSpeech(ctx, text)
		if err != nil {
			return nil, err
		}
		return speechResult{data: data, mime: mime}, nil
	})
	if err != nil {
		return nil, "", err
	}
	sr := result.(speechResult)
	return sr.data, sr.mime, nil
}

func (b *BreakerClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.client.GenerateText(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
