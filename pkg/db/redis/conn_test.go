package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{Redis: config.RedisConfig{RedisAddr: mr.Addr(), PoolSize: 2}}
	client, err := NewRedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Nil(t, Options(cfg).TLSConfig)
	cfg.Redis.UseTLS = true
	assert.NotNil(t, Options(cfg).TLSConfig)
}

func TestOptions_DefaultAddr(t *testing.T) {
	assert.Equal(t, ":6379", Options(&config.Config{}).Addr)
}
