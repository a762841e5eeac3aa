package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func outage() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetryPassthrough(t *testing.T) {
	mock := NewMockProvider(okResponse)
	p := WithRetry(mock, fastRetry())

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "mock", p.ModelID())
}

func TestRetryRecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(outage(), okResponse)
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(outage(), outage(), outage())
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetryStopsImmediately(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, okResponse)
			p := WithRetry(mock, fastRetry())

			_, err := p.Generate(context.Background(), Request{})
			require.Error(t, err)
			assert.Equal(t, 1, mock.CallCount(), "should not retry")
		})
	}
}

func TestRetryInvalidResponseOnlyOnce(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("schema miss")}}
	mock := NewMockProvider(bad, bad, okResponse)
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, mock.CallCount(), "one retry, then give up")
}

func TestRetryHonorsCancelledContext(t *testing.T) {
	mock := NewMockProvider(outage(), okResponse)
	p := WithRetry(mock, fastRetry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
}

func TestRetryUsesRetryAfterHint(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		okResponse,
	)
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}
