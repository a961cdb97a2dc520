// Package ports declares what the request limiter needs from its storage.
package ports

import (
	"context"
	"time"

	"medcalc/internal/ratelimit/models"
)

// BucketStore counts requests per key over a trailing window. The in-process
// and Redis stores in store/bucket both satisfy it.
type BucketStore interface {
	// Allow records one request under key when fewer than limit were seen in
	// the window and reports the outcome either way. A denied request is not
	// recorded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}
