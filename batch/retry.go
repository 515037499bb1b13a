package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// LoadFunc loads one document context.
type LoadFunc func(ctx context.Context, url string) (*llmfeeder.Tab, error)

// DefaultRetryDelays returns the back-off delays between load attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LoadWithRetry calls load until it succeeds, making one attempt more than
// there are delays. Invalid URLs and permission failures are not retried.
// logger, if non-nil, receives one line per retry.
func LoadWithRetry(ctx context.Context, url string, load LoadFunc, logger *slog.Logger, delays []time.Duration) (*llmfeeder.Tab, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		tab, err := load(ctx, url)
		if err == nil {
			return tab, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger.Warn("retry load", "url", url, "attempt", attempt+2, "err", err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	switch llmfeeder.ErrorCode(err) {
	case llmfeeder.EINVALID, llmfeeder.EPERMISSION:
		return false
	}
	return true
}
