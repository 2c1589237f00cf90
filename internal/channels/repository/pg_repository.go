package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amankumarsingh77/channel-monitor/internal/channels"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type channelsRepo struct {
	db *sqlx.DB
}

func NewChannelsRepository(db *sqlx.DB) channels.Repository {
	return &channelsRepo{db: db}
}

func (r *channelsRepo) Create(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	c := &models.Channel{}
	if err := tx.QueryRowxContext(
		ctx,
		createChannel,
		channel.ChannelURL,
		channel.YoutubeID,
		channel.Name,
		channel.APIKey,
		channel.Description,
		channel.AvatarImage,
		channel.BannerImage,
		channel.SubscriberCount,
		channel.VideoCount,
		channel.ViewCount,
		channel.CreatedBy,
	).StructScan(c); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if _, err := tx.ExecContext(ctx, grantOwnerAccess, c.ID, channel.CreatedBy); err != nil {
		return nil, fmt.Errorf("failed to grant owner access: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit channel: %w", err)
	}
	return c, nil
}

func (r *channelsRepo) GetByID(ctx context.Context, channelID int64) (*models.Channel, error) {
	c := &models.Channel{}
	if err := r.db.GetContext(ctx, c, getChannelByID, channelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("channel %d not found", channelID)
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return c, nil
}

func (r *channelsRepo) List(ctx context.Context, userID uuid.UUID, all bool, pq *utils.Pagination) (*models.ChannelList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalChannels, userID, all); err != nil {
		return nil, fmt.Errorf("failed to count channels: %w", err)
	}

	list := &models.ChannelList{
		TotalCount: totalCount,
		TotalPages: utils.GetTotalPages(totalCount, pq.GetSize()),
		Page:       pq.GetPage(),
		Size:       pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
		Channels:   make([]*models.Channel, 0),
	}
	if totalCount == 0 {
		return list, nil
	}

	if err := r.db.SelectContext(ctx, &list.Channels, getChannels, userID, all, pq.GetOffset(), pq.GetLimit()); err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return list, nil
}

func (r *channelsRepo) Update(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	c := &models.Channel{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateChannel,
		channel.ChannelURL,
		channel.YoutubeID,
		channel.Name,
		channel.APIKey,
		channel.Description,
		channel.AvatarImage,
		channel.BannerImage,
		channel.SubscriberCount,
		channel.VideoCount,
		channel.ViewCount,
		channel.LastSyncAt,
		channel.UpdatedBy,
		channel.ID,
	).StructScan(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("channel %d not found", channel.ID)
		}
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}
	return c, nil
}

func (r *channelsRepo) Delete(ctx context.Context, channelID int64) error {
	result, err := r.db.ExecContext(ctx, deleteChannel, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("channel %d not found", channelID)
	}
	return nil
}

func (r *channelsRepo) GetAccess(ctx context.Context, channelID int64, userID uuid.UUID) (*models.ChannelAccess, error) {
	a := &models.ChannelAccess{}
	if err := r.db.GetContext(ctx, a, getAccess, channelID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("no access row for channel %d", channelID)
		}
		return nil, fmt.Errorf("failed to get channel access: %w", err)
	}
	return a, nil
}

func (r *channelsRepo) UpsertAccess(ctx context.Context, access *models.ChannelAccess) (*models.ChannelAccess, error) {
	a := &models.ChannelAccess{}
	if err := r.db.QueryRowxContext(
		ctx,
		upsertAccess,
		access.ChannelID,
		access.UserID,
		access.CanView,
		access.CanEdit,
		access.CanDelete,
		access.CreatedBy,
	).StructScan(a); err != nil {
		return nil, fmt.Errorf("failed to upsert channel access: %w", err)
	}
	return a, nil
}

func (r *channelsRepo) UpsertVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	v := &models.Video{}
	if err := r.db.QueryRowxContext(
		ctx,
		upsertVideo,
		video.ChannelID,
		video.VideoID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.IsLive,
		video.PublishedAt,
	).StructScan(v); err != nil {
		return nil, fmt.Errorf("failed to upsert video: %w", err)
	}
	return v, nil
}

func (r *channelsRepo) ListVideos(ctx context.Context, channelID int64, pq *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalVideos, channelID); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	list := &models.VideoList{
		TotalCount: totalCount,
		TotalPages: utils.GetTotalPages(totalCount, pq.GetSize()),
		Page:       pq.GetPage(),
		Size:       pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
		Videos:     make([]*models.Video, 0),
	}
	if totalCount == 0 {
		return list, nil
	}

	if err := r.db.SelectContext(ctx, &list.Videos, getVideos, channelID, pq.GetOffset(), pq.GetLimit()); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return list, nil
}
