package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/go-redis/redis/v8"
)

// Options maps the redis section of cfg onto client options.
func Options(cfg *config.Config) *redis.Options {
	redisHost := cfg.Redis.RedisAddr
	if redisHost == "" {
		redisHost = ":6379"
	}

	opts := &redis.Options{
		Addr:         redisHost,
		Password:     cfg.Redis.RedisPassword,
		DB:           cfg.Redis.DB,
		MinIdleConns: cfg.Redis.MinIdleConns,
		PoolSize:     cfg.Redis.PoolSize,
		PoolTimeout:  time.Duration(cfg.Redis.PoolTimeout) * time.Second,
	}
	if cfg.Redis.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
