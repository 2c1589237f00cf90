package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/go-redis/redis/v8"
)

const sweepLockKey = "lock:monitoring:sweep"

// releaseLock deletes the lock only while it still belongs to the caller.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type monitoringRedisRepo struct {
	redisClient *redis.Client
}

func NewMonitoringRedisRepo(redisClient *redis.Client) monitoring.RedisRepository {
	return &monitoringRedisRepo{redisClient: redisClient}
}

func (r *monitoringRedisRepo) AcquireSweepLock(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	locked, err := r.redisClient.SetNX(ctx, sweepLockKey, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	return locked, nil
}

func (r *monitoringRedisRepo) ReleaseSweepLock(ctx context.Context, owner string) error {
	if err := releaseLock.Run(ctx, r.redisClient, []string{sweepLockKey}, owner).Err(); err != nil {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}
