package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient() *Client {
	return &Client{
		config: &ClientConfig{
			RetryConfig: &RetryConfig{
				MaxRetries: 3,
				BaseDelay:  time.Millisecond,
				MaxDelay:   5 * time.Millisecond,
			},
		},
	}
}

func TestExecuteWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			return "ok", nil
		}, "test-op")

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection refused")
			}
			return "ok", nil
		}, "test-op")

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	_, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			return nil, errors.New("element not found")
		}, "test-op")

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			return nil, errors.New("deadline exceeded")
		}, "test-op")

	assert.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("connection refused")))
	assert.True(t, isRetryableZeebeError(errors.New("rpc error: UNAVAILABLE")))
	assert.True(t, isRetryableZeebeError(errors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(errors.New("invalid argument")))
	assert.False(t, isRetryableZeebeError(errors.New("job not found")))
}
