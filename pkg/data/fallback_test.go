package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFetchWithFallback_Success tests that a healthy fetch returns its
// value
func TestFetchWithFallback_Success(t *testing.T) {
	got := FetchWithFallback(context.Background(), "test", time.Second, -1, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	assert.Equal(t, 42, got)
}

// TestFetchWithFallback_Error tests substitution on a failed fetch
func TestFetchWithFallback_Error(t *testing.T) {
	got := FetchWithFallback(context.Background(), "test", time.Second, -1, func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.Equal(t, -1, got)
}

// TestFetchWithFallback_Timeout tests substitution when the fetch does
// not respond in time
func TestFetchWithFallback_Timeout(t *testing.T) {
	start := time.Now()
	got := FetchWithFallback(context.Background(), "test", 50*time.Millisecond, -1, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(5 * time.Second):
			return 42, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})

	assert.Equal(t, -1, got)
	assert.Less(t, time.Since(start), time.Second)
}

// TestFetchWithFallback_ContextCancellation tests that an already
// cancelled parent degrades immediately
func TestFetchWithFallback_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := FetchWithFallback(ctx, "test", time.Second, -1, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.Equal(t, -1, got)
}

// TestFetchWithFallback_StructValue tests fallback substitution for a
// composite type
func TestFetchWithFallback_StructValue(t *testing.T) {
	type payload struct{ Value float64 }
	fallback := payload{Value: 104.0}

	got := FetchWithFallback(context.Background(), "test", time.Second, fallback, func(ctx context.Context) (payload, error) {
		return payload{}, errors.New("down")
	})
	assert.Equal(t, fallback, got)
}
