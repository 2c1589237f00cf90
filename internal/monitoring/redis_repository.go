package monitoring

import (
	"context"
	"time"
)

type RedisRepository interface {
	// AcquireSweepLock reports whether owner now holds the cluster-wide sweep lock.
	AcquireSweepLock(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	ReleaseSweepLock(ctx context.Context, owner string) error
}
