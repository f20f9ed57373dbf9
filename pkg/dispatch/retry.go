package dispatch

import (
	"context"
	"math/rand"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

// retry runs fn up to attempts times, backing off exponentially with jitter
// between attempts. Only transient errors are retried; everything else, and
// anything after cancellation, propagates immediately.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && delay > 0 {
			backoff := delay << (attempt - 1)
			backoff += time.Duration(rand.Int63n(int64(delay)))

			select {
			case <-ctx.Done():
				return err

			case <-time.After(backoff):
			}
		}

		err = fn()

		if err == nil {
			return nil
		}

		if !backend.IsTransient(err) {
			return err
		}

		if ctx.Err() != nil {
			// Billable calls must not be re-issued after cancellation.
			return err
		}
	}

	return err
}
