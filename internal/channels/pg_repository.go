package channels

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
)

type Repository interface {
	// Create stores the channel and grants its creator full access in one transaction.
	Create(ctx context.Context, channel *models.Channel) (*models.Channel, error)
	GetByID(ctx context.Context, channelID int64) (*models.Channel, error)
	List(ctx context.Context, userID uuid.UUID, all bool, pq *utils.Pagination) (*models.ChannelList, error)
	Update(ctx context.Context, channel *models.Channel) (*models.Channel, error)
	Delete(ctx context.Context, channelID int64) error

	GetAccess(ctx context.Context, channelID int64, userID uuid.UUID) (*models.ChannelAccess, error)
	UpsertAccess(ctx context.Context, access *models.ChannelAccess) (*models.ChannelAccess, error)

	UpsertVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	ListVideos(ctx context.Context, channelID int64, pq *utils.Pagination) (*models.VideoList, error)
}
