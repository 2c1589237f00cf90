package usecase

import (
	"context"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/channels"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/secret"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/pkg/errors"
)

type channelsUC struct {
	repo      channels.Repository
	providers youtube.ClientFactory
	cache     youtube.CacheRepository
	box       *secret.Box
	logger    logger.Logger
}

func NewChannelsUseCase(repo channels.Repository, providers youtube.ClientFactory, cache youtube.CacheRepository, box *secret.Box, log logger.Logger) channels.UseCase {
	return &channelsUC{
		repo:      repo,
		providers: providers,
		cache:     cache,
		box:       box,
		logger:    log,
	}
}

func (u *channelsUC) Authorize(ctx context.Context, user *models.User, channelID int64, permission models.Permission) error {
	if user.IsAdmin() {
		return nil
	}
	access, err := u.repo.GetAccess(ctx, channelID, user.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.Forbidden("no %s permission on channel %d", permission, channelID)
		}
		return errors.Wrap(err, "channelsUC.Authorize.GetAccess")
	}
	if !access.Allows(permission) {
		return apperrors.Forbidden("no %s permission on channel %d", permission, channelID)
	}
	return nil
}

func (u *channelsUC) ProviderFor(ctx context.Context, channel *models.Channel) (youtube.MetadataProvider, error) {
	apiKey, err := u.box.Decrypt(channel.APIKey)
	if err != nil {
		u.logger.Errorf("ProviderFor - Decrypt error: channel %d: %v", channel.ID, err)
		return nil, errors.Wrapf(err, "decrypt api key of channel %d", channel.ID)
	}
	return u.providers.ForKey(ctx, apiKey)
}

// authorized loads the channel and checks the caller's permission on it.
func (u *channelsUC) authorized(ctx context.Context, channelID int64, permission models.Permission) (*models.User, *models.Channel, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, nil, err
	}
	channel, err := u.repo.GetByID(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}
	if err := u.Authorize(ctx, user, channelID, permission); err != nil {
		return nil, nil, err
	}
	return user, channel, nil
}

func (u *channelsUC) Create(ctx context.Context, input *models.CreateChannelInput) (*models.Channel, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := u.providers.ForKey(ctx, input.APIKey)
	if err != nil {
		return nil, err
	}
	youtubeID, err := provider.ResolveChannelID(ctx, input.ChannelURL)
	if err != nil {
		u.logger.Warnf("Create - ResolveChannelID error: %v", err)
		return nil, err
	}
	info, err := provider.GetChannelInfo(ctx, youtubeID)
	if err != nil {
		u.logger.Warnf("Create - GetChannelInfo error: %v", err)
		return nil, err
	}

	sealed, err := u.box.Encrypt(input.APIKey)
	if err != nil {
		return nil, errors.Wrap(err, "channelsUC.Create.Encrypt")
	}

	channel := &models.Channel{
		ChannelURL: input.ChannelURL,
		YoutubeID:  youtubeID,
		APIKey:     sealed,
		CreatedBy:  user.UserID,
	}
	channel.ApplyInfo(info)

	created, err := u.repo.Create(ctx, channel)
	if err != nil {
		u.logger.Errorf("Create - repo.Create error: %v", err)
		return nil, errors.Wrap(err, "channelsUC.Create.Create")
	}
	return created, nil
}

func (u *channelsUC) List(ctx context.Context, pq *utils.Pagination) (*models.ChannelList, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return u.repo.List(ctx, user.UserID, user.IsAdmin(), pq)
}

func (u *channelsUC) GetByID(ctx context.Context, channelID int64) (*models.Channel, error) {
	_, channel, err := u.authorized(ctx, channelID, models.PermissionView)
	return channel, err
}

func (u *channelsUC) Update(ctx context.Context, channelID int64, input *models.UpdateChannelInput) (*models.Channel, error) {
	user, channel, err := u.authorized(ctx, channelID, models.PermissionEdit)
	if err != nil {
		return nil, err
	}

	if input.APIKey != nil {
		sealed, err := u.box.Encrypt(*input.APIKey)
		if err != nil {
			return nil, errors.Wrap(err, "channelsUC.Update.Encrypt")
		}
		channel.APIKey = sealed
	}
	if input.ChannelURL != nil && *input.ChannelURL != channel.ChannelURL {
		provider, err := u.ProviderFor(ctx, channel)
		if err != nil {
			return nil, err
		}
		youtubeID, err := provider.ResolveChannelID(ctx, *input.ChannelURL)
		if err != nil {
			return nil, err
		}
		channel.ChannelURL = *input.ChannelURL
		channel.YoutubeID = youtubeID
	}
	channel.UpdatedBy = &user.UserID

	updated, err := u.repo.Update(ctx, channel)
	if err != nil {
		return nil, errors.Wrap(err, "channelsUC.Update.Update")
	}
	return updated, nil
}

func (u *channelsUC) Delete(ctx context.Context, channelID int64) error {
	_, channel, err := u.authorized(ctx, channelID, models.PermissionDelete)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, channelID); err != nil {
		return errors.Wrap(err, "channelsUC.Delete.Delete")
	}
	if err := u.cache.ClearChannel(ctx, channel.YoutubeID); err != nil {
		u.logger.Warnf("Delete - ClearChannel error: %v", err)
	}
	return nil
}

// Sync refreshes the stored statistics from the platform, bypassing the cache.
func (u *channelsUC) Sync(ctx context.Context, channelID int64) (*models.Channel, error) {
	user, channel, err := u.authorized(ctx, channelID, models.PermissionEdit)
	if err != nil {
		return nil, err
	}

	if err := u.cache.ClearChannel(ctx, channel.YoutubeID); err != nil {
		u.logger.Warnf("Sync - ClearChannel error: %v", err)
	}
	provider, err := u.ProviderFor(ctx, channel)
	if err != nil {
		return nil, err
	}
	info, err := provider.GetChannelInfo(ctx, channel.YoutubeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	channel.ApplyInfo(info)
	channel.LastSyncAt = &now
	channel.UpdatedBy = &user.UserID
	updated, err := u.repo.Update(ctx, channel)
	if err != nil {
		return nil, errors.Wrap(err, "channelsUC.Sync.Update")
	}
	return updated, nil
}

func (u *channelsUC) GrantAccess(ctx context.Context, channelID int64, input *models.GrantAccessInput) (*models.ChannelAccess, error) {
	user, _, err := u.authorized(ctx, channelID, models.PermissionEdit)
	if err != nil {
		return nil, err
	}
	access, err := u.repo.UpsertAccess(ctx, &models.ChannelAccess{
		ChannelID: channelID,
		UserID:    input.UserID,
		CanView:   input.CanView || input.CanEdit || input.CanDelete,
		CanEdit:   input.CanEdit,
		CanDelete: input.CanDelete,
		CreatedBy: user.UserID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "channelsUC.GrantAccess.UpsertAccess")
	}
	return access, nil
}

func (u *channelsUC) ListVideos(ctx context.Context, channelID int64, pq *utils.Pagination) (*models.VideoList, error) {
	if _, _, err := u.authorized(ctx, channelID, models.PermissionView); err != nil {
		return nil, err
	}
	return u.repo.ListVideos(ctx, channelID, pq)
}

func (u *channelsUC) ListPlaylists(ctx context.Context, channelID int64) ([]*models.PlaylistInfo, error) {
	_, channel, err := u.authorized(ctx, channelID, models.PermissionView)
	if err != nil {
		return nil, err
	}
	provider, err := u.ProviderFor(ctx, channel)
	if err != nil {
		return nil, err
	}
	return provider.GetPlaylists(ctx, channel.YoutubeID)
}
