package downloads

import (
	"context"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

type Repository interface {
	GetVideo(ctx context.Context, videoID int64) (*models.MonitoringVideo, error)
	MarkDownloading(ctx context.Context, videoID int64, projectPath string) (time.Time, error)
	// UpdateProgress never lowers the stored progress.
	UpdateProgress(ctx context.Context, videoID int64, progress float64) error
	MarkCompleted(ctx context.Context, videoID int64, sourcePath string, archiveKey *string) error
	MarkFailed(ctx context.Context, videoID int64, message string) error
	MarkInterrupted(ctx context.Context, videoID int64, message string) error
}
