package monitoring

import (
	"context"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
)

type Repository interface {
	// Create stores the job with its pending video links and playlists in one transaction.
	Create(ctx context.Context, job *models.MonitoringJob, videoIDs []int64, playlistIDs []string) (*models.MonitoringJob, error)
	GetByID(ctx context.Context, monitoringID int64) (*models.MonitoringJob, error)
	GetDetails(ctx context.Context, monitoringID int64) (*models.MonitoringDetails, error)
	List(ctx context.Context, userID uuid.UUID, all bool, status *models.MonitoringStatus, pq *utils.Pagination) (*models.MonitoringList, error)
	// Update replaces the playlists too unless playlistIDs is nil.
	Update(ctx context.Context, job *models.MonitoringJob, playlistIDs []string) (*models.MonitoringJob, error)
	Delete(ctx context.Context, monitoringID int64) error
	SetStatus(ctx context.Context, monitoringID int64, status models.MonitoringStatus) error

	// CountChannelVideos counts how many of videoIDs belong to channelID.
	CountChannelVideos(ctx context.Context, channelID int64, videoIDs []int64) (int, error)
	ListVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error)
	// ListEligibleVideos returns pending, paused and errored videos by ascending id.
	ListEligibleVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error)
	GetVideo(ctx context.Context, videoID int64) (*models.MonitoringVideo, error)
	SetVideoStatus(ctx context.Context, videoID int64, status models.VideoStatus, message *string) error
	// PauseDownloading moves the job's downloading videos to paused.
	PauseDownloading(ctx context.Context, monitoringID int64) (int64, error)

	// ListDue returns active continuous jobs whose next check is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*models.MonitoringJob, error)
	// LinkVideos adds pending links for videos not yet in the job and reports how many were new.
	LinkVideos(ctx context.Context, monitoringID int64, videoIDs []int64, createdBy uuid.UUID) (int, error)
	MarkChecked(ctx context.Context, monitoringID int64, checkedAt, nextCheckAt time.Time) error
}
