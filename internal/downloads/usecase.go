package downloads

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

// UseCase acquires the source media of monitoring videos.
type UseCase interface {
	// Download launches a transfer for one monitoring video and returns without waiting for it.
	Download(ctx context.Context, req *models.DownloadRequest) (*models.DownloadDescriptor, error)
	// Transfer returns the handle of the video's in-flight transfer, if any.
	Transfer(videoID int64) (models.TransferHandle, bool)
	GetProgress(ctx context.Context, videoID int64) (*models.ProgressSnapshot, error)
	ArchiveURL(ctx context.Context, videoID int64) (string, error)
	// Authorize checks the caller in ctx against the channel owning the video.
	Authorize(ctx context.Context, videoID int64, permission models.Permission) error
	Shutdown(ctx context.Context) error
}

// Engine moves one remote media file into outputDir.
type Engine interface {
	Fetch(ctx context.Context, url, outputDir string, onProgress func(models.TransferProgress)) (*models.FetchResult, error)
}

// Publisher fans progress events out to live subscribers.
type Publisher interface {
	Publish(videoID int64, event *models.ProgressEvent)
}

// Authorizer is the channel permission check.
type Authorizer interface {
	Authorize(ctx context.Context, user *models.User, channelID int64, permission models.Permission) error
}
