package analytics

import (
	"context"
	"time"
)

// Store is the cache contract for computed analytics results. Entries
// expire after the given TTL; there is no invalidation on writes.
type Store interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Save(ctx context.Context, key string, result Result, ttl time.Duration) error
}
