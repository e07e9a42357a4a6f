package services

import (
	"context"
	"time"
)

// withCallTimeout bounds a single engine call. A non-positive d only adds cancellation.
func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
