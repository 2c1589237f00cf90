package channels

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
)

type UseCase interface {
	Create(ctx context.Context, input *models.CreateChannelInput) (*models.Channel, error)
	List(ctx context.Context, pq *utils.Pagination) (*models.ChannelList, error)
	GetByID(ctx context.Context, channelID int64) (*models.Channel, error)
	Update(ctx context.Context, channelID int64, input *models.UpdateChannelInput) (*models.Channel, error)
	Delete(ctx context.Context, channelID int64) error
	Sync(ctx context.Context, channelID int64) (*models.Channel, error)
	GrantAccess(ctx context.Context, channelID int64, input *models.GrantAccessInput) (*models.ChannelAccess, error)
	ListVideos(ctx context.Context, channelID int64, pq *utils.Pagination) (*models.VideoList, error)
	ListPlaylists(ctx context.Context, channelID int64) ([]*models.PlaylistInfo, error)

	// Authorize fails with an authorization error unless user holds permission on the channel.
	Authorize(ctx context.Context, user *models.User, channelID int64, permission models.Permission) error
	// ProviderFor decrypts the channel's API key and returns a metadata provider bound to it.
	ProviderFor(ctx context.Context, channel *models.Channel) (youtube.MetadataProvider, error)
}
