package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/go-redis/redis/v8"
)

const progressTTL = 24 * time.Hour

type downloadsRedisRepo struct {
	redisClient *redis.Client
}

func NewDownloadsRedisRepo(redisClient *redis.Client) downloads.RedisRepository {
	return &downloadsRedisRepo{redisClient: redisClient}
}

func progressKey(videoID int64) string {
	return fmt.Sprintf("download:progress:%d", videoID)
}

func (r *downloadsRedisRepo) SetProgress(ctx context.Context, snapshot *models.ProgressSnapshot) error {
	key := progressKey(snapshot.VideoID)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"video_id":   snapshot.VideoID,
			"progress":   strconv.FormatFloat(snapshot.Progress, 'f', 2, 64),
			"status":     snapshot.Status,
			"title":      snapshot.Title,
			"message":    snapshot.Message,
			"updated_at": snapshot.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, progressTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store progress snapshot: %w", err)
	}
	return nil
}

func (r *downloadsRedisRepo) GetProgress(ctx context.Context, videoID int64) (*models.ProgressSnapshot, error) {
	fields, err := r.redisClient.HGetAll(ctx, progressKey(videoID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read progress snapshot: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	snapshot := &models.ProgressSnapshot{
		VideoID: videoID,
		Status:  fields["status"],
		Title:   fields["title"],
		Message: fields["message"],
	}
	if snapshot.Progress, err = strconv.ParseFloat(fields["progress"], 64); err != nil {
		return nil, fmt.Errorf("failed to decode progress snapshot: %w", err)
	}
	if ts := fields["updated_at"]; ts != "" {
		if snapshot.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to decode progress snapshot: %w", err)
		}
	}
	return snapshot, nil
}
