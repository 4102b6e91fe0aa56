package pipeline

import (
	"context"
	"time"

	"github.com/mazen160/go-random"
)

// DefaultRetryAttempts bounds transient-failure retries within a row.
const DefaultRetryAttempts = 3

// DefaultRetryBase is the backoff base; attempt n sleeps base * 2^n. A
// variable so tests can shrink the waits.
var DefaultRetryBase = time.Second

// Retry runs fn up to attempts times, sleeping base * 2^attempt (plus a
// little jitter) between tries. retryable decides which errors are worth
// another attempt; nil retries everything. The last error is returned when
// all attempts fail, and the context cancels the backoff sleeps.
func Retry(ctx context.Context, attempts int, base time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff(base, attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = fn()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
	}
	return err
}

func backoff(base time.Duration, attempt int) time.Duration {
	d := base * time.Duration(1<<attempt)
	jitterMs, randErr := random.IntRange(0, 250)
	if randErr != nil {
		jitterMs = 0
	}
	return d + time.Duration(jitterMs)*time.Millisecond
}
