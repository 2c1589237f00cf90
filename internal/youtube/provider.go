package youtube

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

// MetadataProvider reads channel, video and playlist metadata from the platform.
type MetadataProvider interface {
	ResolveChannelID(ctx context.Context, channelURL string) (string, error)
	GetChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error)
	GetRecentVideos(ctx context.Context, channelID string, maxResults int) ([]*models.VideoInfo, error)
	GetPlaylists(ctx context.Context, channelID string) ([]*models.PlaylistInfo, error)
}

// ClientFactory builds a provider bound to one channel's API key.
type ClientFactory interface {
	ForKey(ctx context.Context, apiKey string) (MetadataProvider, error)
}
