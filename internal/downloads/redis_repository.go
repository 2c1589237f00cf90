package downloads

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

type RedisRepository interface {
	SetProgress(ctx context.Context, snapshot *models.ProgressSnapshot) error
	// GetProgress returns nil without error when no snapshot is stored.
	GetProgress(ctx context.Context, videoID int64) (*models.ProgressSnapshot, error)
}
