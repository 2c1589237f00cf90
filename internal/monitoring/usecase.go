package monitoring

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
)

// UseCase manages monitoring jobs and drives their processing runs.
type UseCase interface {
	Create(ctx context.Context, input *models.CreateMonitoringInput) (*models.MonitoringJob, error)
	List(ctx context.Context, status *models.MonitoringStatus, pq *utils.Pagination) (*models.MonitoringList, error)
	GetByID(ctx context.Context, monitoringID int64) (*models.MonitoringDetails, error)
	Update(ctx context.Context, monitoringID int64, input *models.UpdateMonitoringInput) (*models.MonitoringJob, error)
	Delete(ctx context.Context, monitoringID int64) error
	ListVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error)

	// Start launches a background run and returns once it is registered.
	Start(ctx context.Context, monitoringID int64) error
	// StartSystem starts a run on behalf of the scheduler, without a caller identity.
	StartSystem(ctx context.Context, monitoringID int64) error
	// Stop is a no-op for a job that is not running.
	Stop(ctx context.Context, monitoringID int64) error
	IsRunning(monitoringID int64) bool
	Shutdown(ctx context.Context) error
}

// Scheduler periodically discovers new videos for due continuous jobs.
type Scheduler interface {
	Run(ctx context.Context)
	Sweep(ctx context.Context) (*models.SweepReport, error)
}

// Downloader launches the transfer of one monitoring video.
type Downloader interface {
	Download(ctx context.Context, req *models.DownloadRequest) (*models.DownloadDescriptor, error)
	Transfer(videoID int64) (models.TransferHandle, bool)
}

// ChannelService is the slice of channel behaviour monitoring relies on.
type ChannelService interface {
	GetByID(ctx context.Context, channelID int64) (*models.Channel, error)
	ListPlaylists(ctx context.Context, channelID int64) ([]*models.PlaylistInfo, error)
	Authorize(ctx context.Context, user *models.User, channelID int64, permission models.Permission) error
}

// ChannelStore is the channel persistence the scheduler refreshes during a sweep.
type ChannelStore interface {
	GetByID(ctx context.Context, channelID int64) (*models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) (*models.Channel, error)
	UpsertVideo(ctx context.Context, video *models.Video) (*models.Video, error)
}

// ProviderSource returns a metadata provider bound to a channel's own API key.
type ProviderSource interface {
	ProviderFor(ctx context.Context, channel *models.Channel) (youtube.MetadataProvider, error)
}
