package youtube

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

// CacheRepository stores provider responses. Getters return (nil, nil) on a miss.
type CacheRepository interface {
	GetChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error)
	SetChannelInfo(ctx context.Context, channelID string, info *models.ChannelInfo) error
	GetRecentVideos(ctx context.Context, channelID string) ([]*models.VideoInfo, error)
	SetRecentVideos(ctx context.Context, channelID string, videos []*models.VideoInfo) error
	GetPlaylists(ctx context.Context, channelID string) ([]*models.PlaylistInfo, error)
	SetPlaylists(ctx context.Context, channelID string, playlists []*models.PlaylistInfo) error
	ClearChannel(ctx context.Context, channelID string) error
}
