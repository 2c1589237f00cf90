package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/go-redis/redis/v8"
)

const (
	channelInfoTTL  = time.Hour
	playlistsTTL    = 6 * time.Hour
	recentVideosTTL = 15 * time.Minute
)

type youtubeRedisRepo struct {
	redisClient *redis.Client
}

func NewYoutubeRedisRepo(redisClient *redis.Client) youtube.CacheRepository {
	return &youtubeRedisRepo{redisClient: redisClient}
}

// cacheKey builds youtube:{type}:{id}:{sub} keys, dropping an empty sub.
func cacheKey(keyType, id, sub string) string {
	return strings.TrimSuffix(fmt.Sprintf("youtube:%s:%s:%s", keyType, id, sub), ":")
}

func (r *youtubeRedisRepo) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (r *youtubeRedisRepo) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := r.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (r *youtubeRedisRepo) GetChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	info := &models.ChannelInfo{}
	ok, err := r.get(ctx, cacheKey("channel", channelID, ""), info)
	if !ok || err != nil {
		return nil, err
	}
	return info, nil
}

func (r *youtubeRedisRepo) SetChannelInfo(ctx context.Context, channelID string, info *models.ChannelInfo) error {
	return r.set(ctx, cacheKey("channel", channelID, ""), info, channelInfoTTL)
}

func (r *youtubeRedisRepo) GetRecentVideos(ctx context.Context, channelID string) ([]*models.VideoInfo, error) {
	var videos []*models.VideoInfo
	ok, err := r.get(ctx, cacheKey("channel", channelID, "recent_videos"), &videos)
	if !ok || err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *youtubeRedisRepo) SetRecentVideos(ctx context.Context, channelID string, videos []*models.VideoInfo) error {
	return r.set(ctx, cacheKey("channel", channelID, "recent_videos"), videos, recentVideosTTL)
}

func (r *youtubeRedisRepo) GetPlaylists(ctx context.Context, channelID string) ([]*models.PlaylistInfo, error) {
	var playlists []*models.PlaylistInfo
	ok, err := r.get(ctx, cacheKey("channel", channelID, "playlists"), &playlists)
	if !ok || err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *youtubeRedisRepo) SetPlaylists(ctx context.Context, channelID string, playlists []*models.PlaylistInfo) error {
	return r.set(ctx, cacheKey("channel", channelID, "playlists"), playlists, playlistsTTL)
}

// ClearChannel drops every cached entry of one channel.
func (r *youtubeRedisRepo) ClearChannel(ctx context.Context, channelID string) error {
	keys := []string{cacheKey("channel", channelID, "")}
	iter := r.redisClient.Scan(ctx, 0, cacheKey("channel", channelID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan channel cache: %w", err)
	}
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear channel cache: %w", err)
	}
	return nil
}
