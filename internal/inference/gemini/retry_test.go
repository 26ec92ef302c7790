package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "json unmarshal error",
			err:      fmt.Errorf("json.Unmarshal > invalid character"),
			expected: true,
		},
		{
			name:     "incomplete json response",
			err:      errors.New("unexpected end of JSON input"),
			expected: true,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp: connection refused"),
			expected: true,
		},
		{
			name:     "io timeout",
			err:      errors.New("read tcp: i/o timeout"),
			expected: true,
		},
		{
			name:     "server error",
			err:      errors.New("response error 503 Service Unavailable"),
			expected: true,
		},
		{
			name:     "rate limited",
			err:      errors.New("response error 429 Too Many Requests"),
			expected: true,
		},
		{
			name:     "client error is not retried",
			err:      errors.New("response error 400 Bad Request"),
			expected: false,
		},
		{
			name:     "unauthorized is not retried",
			err:      errors.New("response error 401 Unauthorized"),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isRetryableError(tc.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key", MaxRetryAttempts: 2})
	assert.NoError(t, err)

	t.Run("non-retryable error fails fast", func(t *testing.T) {
		calls := 0
		err := client.withRetry(context.Background(), func() error {
			calls++
			return errors.New("response error 400 Bad Request")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retryable error is attempted again", func(t *testing.T) {
		calls := 0
		err := client.withRetry(context.Background(), func() error {
			calls++
			if calls == 1 {
				return errors.New("response error 503")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}
