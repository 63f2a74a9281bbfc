package usecases

import (
	"context"
	"fmt"
	"time"

	"wrld-names.backend/internal/domain/entities"
)

// RecordCache is the optional resolver read cache. Misses and backend
// failures are both reported as a miss; the cache never affects correctness,
// only read latency.
type RecordCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

func recordCacheKey(name string, typ entities.RecordType, key string) string {
	return fmt.Sprintf("resolve:%s:%s:%s", typ, name, key)
}
