// Package poll runs a function on a fixed interval for as long as its
// context lives.
package poll

import (
	"context"
	"errors"
	"time"
)

var ErrInterval = errors.New("poll interval must be positive")

// Run calls fn once per interval until fn returns false or ctx is done. The
// first call happens after one interval. It returns ctx.Err() when cancelled
// and nil when fn asked to stop. A non-positive interval is ErrInterval.
func Run(ctx context.Context, interval time.Duration, fn func(context.Context) bool) error {
	if interval <= 0 {
		return ErrInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !fn(ctx) {
				return nil
			}
		}
	}
}
