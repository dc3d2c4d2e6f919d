package waitfor

import (
	"context"
	"time"
)

// Predicate reports whether the awaited condition holds. A non-nil error
// aborts the wait immediately.
type Predicate func(ctx context.Context) (bool, error)

// Until polls pred at the given interval until it holds, it fails, or the
// context is done (timeout or cancellation). The predicate is checked once
// before the first sleep, so an already-true condition returns without
// waiting. How the condition is observed is entirely up to the predicate.
func Until(ctx context.Context, interval time.Duration, pred Predicate) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := pred(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
