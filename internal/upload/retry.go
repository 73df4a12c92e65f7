package upload

import (
	"context"
	"io"
	"time"
)

const (
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = time.Second
)

// PutWithRetry re-invokes Put up to maxRetries attempts, sleeping
// baseDelay*2^attempt between attempts (attempt zero-indexed, no jitter).
// The progress callback restarts from zero on each attempt; on exhaustion
// the last observed error is returned.
func (t *Transferer) PutWithRetry(ctx context.Context, destURL, mimeType string, body io.ReadSeeker, size int64, maxRetries int, baseDelay time.Duration, progress ProgressFunc) error {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if progress != nil {
			progress(0)
		}
		lastErr = t.Put(ctx, destURL, mimeType, body, size, progress)
		if lastErr == nil {
			return nil
		}
		if attempt < maxRetries-1 {
			if err := sleepContext(ctx, baseDelay*(1<<attempt)); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
