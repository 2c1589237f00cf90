// Package dataapi reads channel metadata through the YouTube Data API v3.
package dataapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	yt "github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/retry"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const playlistsPageSize = 50

type clientFactory struct {
	limiter  *rate.Limiter
	retryCfg retry.Config
	opts     []option.ClientOption
	logger   logger.Logger
}

// NewClientFactory shares one token bucket across every key so the process stays under the API rate.
func NewClientFactory(cfg config.YouTubeConfig, log logger.Logger, opts ...option.ClientOption) yt.ClientFactory {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	retryCfg := retry.DefaultConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.InitialBackoff > 0 {
		retryCfg.InitialBackoff = cfg.InitialBackoff
	}
	if cfg.MaxBackoff > 0 {
		retryCfg.MaxBackoff = cfg.MaxBackoff
	}

	return &clientFactory{
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		retryCfg: retryCfg,
		opts:     opts,
		logger:   log,
	}
}

func (f *clientFactory) ForKey(ctx context.Context, apiKey string) (yt.MetadataProvider, error) {
	if apiKey == "" {
		return nil, apperrors.Validation("youtube api key required")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, f.opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &client{
		service:  service,
		limiter:  f.limiter,
		retryCfg: f.retryCfg,
		logger:   f.logger,
	}, nil
}

type client struct {
	service  *youtube.Service
	limiter  *rate.Limiter
	retryCfg retry.Config
	logger   logger.Logger
}

func (c *client) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := retry.Do(ctx, c.retryCfg, isRetryable, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return &retry.Permanent{Err: err}
		}
		return fn(ctx)
	})
	if err != nil {
		c.logger.Warnf("youtube %s error: %v", op, err)
	}
	return classify(op, err)
}

func (c *client) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	ref, err := yt.ParseChannelURL(channelURL)
	if err != nil {
		return "", err
	}
	if ref.Kind == yt.RefChannelID {
		return ref.Value, nil
	}

	var channelID string
	err = c.call(ctx, "resolve channel", func(ctx context.Context) error {
		switch ref.Kind {
		case yt.RefHandle, yt.RefUsername:
			call := c.service.Channels.List([]string{"id"}).Context(ctx)
			if ref.Kind == yt.RefHandle {
				call = call.ForHandle(ref.Value)
			} else {
				call = call.ForUsername(ref.Value)
			}
			resp, err := call.Do()
			if err != nil {
				return err
			}
			if len(resp.Items) == 0 {
				return errChannelNotFound
			}
			channelID = resp.Items[0].Id
		default:
			resp, err := c.service.Search.List([]string{"id"}).
				Q(ref.Value).
				Type("channel").
				MaxResults(1).
				Context(ctx).
				Do()
			if err != nil {
				return err
			}
			if len(resp.Items) == 0 || resp.Items[0].Id == nil {
				return errChannelNotFound
			}
			channelID = resp.Items[0].Id.ChannelId
		}
		return nil
	})
	return channelID, err
}

func (c *client) GetChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	var info *models.ChannelInfo
	err := c.call(ctx, "get channel info", func(ctx context.Context) error {
		resp, err := c.service.Channels.List([]string{"snippet", "statistics", "brandingSettings"}).
			Id(channelID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return errChannelNotFound
		}
		info = channelInfoFrom(resp.Items[0])
		return nil
	})
	return info, err
}

// GetRecentVideos searches the newest uploads, then loads their details to learn the live flag.
func (c *client) GetRecentVideos(ctx context.Context, channelID string, maxResults int) ([]*models.VideoInfo, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	var ids []string
	err := c.call(ctx, "search recent videos", func(ctx context.Context) error {
		resp, err := c.service.Search.List([]string{"id"}).
			ChannelId(channelID).
			Order("date").
			Type("video").
			MaxResults(int64(maxResults)).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		ids = ids[:0]
		for _, item := range resp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}
		return nil
	})
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var videos []*models.VideoInfo
	err = c.call(ctx, "get video details", func(ctx context.Context) error {
		resp, err := c.service.Videos.List([]string{"snippet", "liveStreamingDetails"}).
			Id(ids...).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		videos = videos[:0]
		for _, item := range resp.Items {
			videos = append(videos, videoInfoFrom(item))
		}
		return nil
	})
	return videos, err
}

func (c *client) GetPlaylists(ctx context.Context, channelID string) ([]*models.PlaylistInfo, error) {
	var playlists []*models.PlaylistInfo
	err := c.call(ctx, "list playlists", func(ctx context.Context) error {
		resp, err := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
			ChannelId(channelID).
			MaxResults(playlistsPageSize).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		playlists = playlists[:0]
		for _, item := range resp.Items {
			playlists = append(playlists, playlistInfoFrom(item))
		}
		return nil
	})
	return playlists, err
}

func channelInfoFrom(ch *youtube.Channel) *models.ChannelInfo {
	info := &models.ChannelInfo{ID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
		info.Description = ch.Snippet.Description
		info.AvatarImage = bestThumbnail(ch.Snippet.Thumbnails)
	}
	if ch.Statistics != nil {
		info.SubscriberCount = int64(ch.Statistics.SubscriberCount)
		info.VideoCount = int64(ch.Statistics.VideoCount)
		info.ViewCount = int64(ch.Statistics.ViewCount)
	}
	if ch.BrandingSettings != nil && ch.BrandingSettings.Image != nil {
		info.BannerImage = ch.BrandingSettings.Image.BannerExternalUrl
	}
	return info
}

func videoInfoFrom(v *youtube.Video) *models.VideoInfo {
	info := &models.VideoInfo{ID: v.Id, IsLive: v.LiveStreamingDetails != nil}
	if v.Snippet != nil {
		info.Title = v.Snippet.Title
		info.Description = v.Snippet.Description
		info.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			info.PublishedAt = t
		}
		if strings.EqualFold(v.Snippet.LiveBroadcastContent, "live") {
			info.IsLive = true
		}
	}
	return info
}

func playlistInfoFrom(p *youtube.Playlist) *models.PlaylistInfo {
	info := &models.PlaylistInfo{ID: p.Id}
	if p.Snippet != nil {
		info.Title = p.Snippet.Title
		info.Description = p.Snippet.Description
		info.ThumbnailURL = bestThumbnail(p.Snippet.Thumbnails)
	}
	if p.ContentDetails != nil {
		info.ItemCount = p.ContentDetails.ItemCount
	}
	return info
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
