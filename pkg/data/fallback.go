package data

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
)

// FetchWithFallback runs fn with a deadline and substitutes fallback
// when it errors or does not respond in time. No error escapes: a slow
// or failed fetch degrades once, immediately, to its fallback value.
// The abandoned call is cancelled through its context; there is no
// retry.
func FetchWithFallback[T any](ctx context.Context, name string, timeout time.Duration, fallback T, fn func(context.Context) (T, error)) T {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{value: v, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			log.Warn().Err(res.err).Str("fetch", name).Msg("provider call failed, using fallback")
			monitoring.RecordFallback(name)
			return fallback
		}
		return res.value
	case <-ctx.Done():
		log.Warn().Str("fetch", name).Dur("timeout", timeout).Msg("provider call timed out, using fallback")
		monitoring.RecordFallback(name)
		return fallback
	}
}
