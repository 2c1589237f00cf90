package usecase

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
)

type cachedFactory struct {
	inner  youtube.ClientFactory
	cache  youtube.CacheRepository
	logger logger.Logger
}

// NewCachedFactory wraps every provider built by inner with a read-through Redis cache.
// Cache failures are logged and the call falls through to the platform.
func NewCachedFactory(inner youtube.ClientFactory, cache youtube.CacheRepository, log logger.Logger) youtube.ClientFactory {
	return &cachedFactory{inner: inner, cache: cache, logger: log}
}

func (f *cachedFactory) ForKey(ctx context.Context, apiKey string) (youtube.MetadataProvider, error) {
	provider, err := f.inner.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return &cachedProvider{inner: provider, cache: f.cache, logger: f.logger}, nil
}

type cachedProvider struct {
	inner  youtube.MetadataProvider
	cache  youtube.CacheRepository
	logger logger.Logger
}

func (p *cachedProvider) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	return p.inner.ResolveChannelID(ctx, channelURL)
}

func (p *cachedProvider) GetChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	cached, err := p.cache.GetChannelInfo(ctx, channelID)
	if err != nil {
		p.logger.Warnf("GetChannelInfo - cache read error: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	info, err := p.inner.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SetChannelInfo(ctx, channelID, info); err != nil {
		p.logger.Warnf("GetChannelInfo - cache write error: %v", err)
	}
	return info, nil
}

func (p *cachedProvider) GetRecentVideos(ctx context.Context, channelID string, maxResults int) ([]*models.VideoInfo, error) {
	cached, err := p.cache.GetRecentVideos(ctx, channelID)
	if err != nil {
		p.logger.Warnf("GetRecentVideos - cache read error: %v", err)
	}
	if cached != nil && maxResults > 0 && len(cached) >= maxResults {
		return cached[:maxResults], nil
	}

	videos, err := p.inner.GetRecentVideos(ctx, channelID, maxResults)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SetRecentVideos(ctx, channelID, videos); err != nil {
		p.logger.Warnf("GetRecentVideos - cache write error: %v", err)
	}
	return videos, nil
}

func (p *cachedProvider) GetPlaylists(ctx context.Context, channelID string) ([]*models.PlaylistInfo, error) {
	cached, err := p.cache.GetPlaylists(ctx, channelID)
	if err != nil {
		p.logger.Warnf("GetPlaylists - cache read error: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	playlists, err := p.inner.GetPlaylists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SetPlaylists(ctx, channelID, playlists); err != nil {
		p.logger.Warnf("GetPlaylists - cache write error: %v", err)
	}
	return playlists, nil
}
