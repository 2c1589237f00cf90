package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/pkg/errors"
)

type monitoringUC struct {
	cfg        *config.Config
	repo       monitoring.Repository
	channels   monitoring.ChannelService
	downloader monitoring.Downloader
	runner     *JobRunner
	logger     logger.Logger

	wg           sync.WaitGroup
	shuttingDown atomic.Bool
	cpuCheck     func(maxCPUUsage float64) (bool, float64)
}

func NewMonitoringUseCase(
	cfg *config.Config,
	repo monitoring.Repository,
	channels monitoring.ChannelService,
	downloader monitoring.Downloader,
	log logger.Logger,
) monitoring.UseCase {
	return &monitoringUC{
		cfg:        cfg,
		repo:       repo,
		channels:   channels,
		downloader: downloader,
		runner:     NewJobRunner(),
		logger:     log,
		cpuCheck:   utils.CheckCPUUsage,
	}
}

func (u *monitoringUC) Create(ctx context.Context, input *models.CreateMonitoringInput) (*models.MonitoringJob, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	channel, err := u.channels.GetByID(ctx, input.ChannelID)
	if err != nil {
		u.logger.Warnf("Create - GetByID error: %v", err)
		return nil, err
	}

	job, err := input.ToJob(user.UserID, time.Now().UTC())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	videoIDs := uniqueIDs(input.Videos)
	if len(videoIDs) > 0 {
		n, err := u.repo.CountChannelVideos(ctx, channel.ID, videoIDs)
		if err != nil {
			u.logger.Errorf("Create - CountChannelVideos error: %v", err)
			return nil, errors.Wrap(err, "monitoringUC.Create.CountChannelVideos")
		}
		if n != len(videoIDs) {
			return nil, apperrors.Validation("videos must belong to channel %d", channel.ID)
		}
	}

	playlistIDs := uniqueStrings(input.PlaylistIDs)
	if err := u.checkPlaylists(ctx, channel.ID, playlistIDs); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, job, videoIDs, playlistIDs)
	if err != nil {
		u.logger.Errorf("Create - repo.Create error: %v", err)
		return nil, errors.Wrap(err, "monitoringUC.Create.Create")
	}
	u.logger.Infof("Monitoring %d created for channel %d with status %s", created.ID, channel.ID, created.Status)
	return created, nil
}

// checkPlaylists requires every id to be one of the channel's playlists.
func (u *monitoringUC) checkPlaylists(ctx context.Context, channelID int64, playlistIDs []string) error {
	if len(playlistIDs) == 0 {
		return nil
	}
	playlists, err := u.channels.ListPlaylists(ctx, channelID)
	if err != nil {
		u.logger.Errorf("checkPlaylists - ListPlaylists error: %v", err)
		return err
	}
	known := make(map[string]struct{}, len(playlists))
	for _, p := range playlists {
		known[p.ID] = struct{}{}
	}
	for _, id := range playlistIDs {
		if _, ok := known[id]; !ok {
			return apperrors.Validation("playlist %s not found on channel %d", id, channelID)
		}
	}
	return nil
}

func (u *monitoringUC) List(ctx context.Context, status *models.MonitoringStatus, pq *utils.Pagination) (*models.MonitoringList, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	list, err := u.repo.List(ctx, user.UserID, user.IsAdmin(), status, pq)
	if err != nil {
		u.logger.Errorf("List - repo.List error: %v", err)
		return nil, errors.Wrap(err, "monitoringUC.List")
	}
	return list, nil
}

func (u *monitoringUC) GetByID(ctx context.Context, monitoringID int64) (*models.MonitoringDetails, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	details, err := u.repo.GetDetails(ctx, monitoringID)
	if err != nil {
		return nil, errors.Wrap(err, "monitoringUC.GetByID.GetDetails")
	}
	if err := u.channels.Authorize(ctx, user, details.ChannelID, models.PermissionView); err != nil {
		return nil, err
	}
	details.Running = u.runner.IsRunning(monitoringID)
	return details, nil
}

func (u *monitoringUC) Update(ctx context.Context, monitoringID int64, input *models.UpdateMonitoringInput) (*models.MonitoringJob, error) {
	user, job, err := u.authorizedJob(ctx, monitoringID, models.PermissionEdit)
	if err != nil {
		return nil, err
	}

	var playlistIDs []string
	if input.PlaylistIDs != nil {
		playlistIDs = uniqueStrings(input.PlaylistIDs)
		if err := u.checkPlaylists(ctx, job.ChannelID, playlistIDs); err != nil {
			return nil, err
		}
	}

	if err := input.Apply(job, user.UserID, time.Now().UTC()); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	updated, err := u.repo.Update(ctx, job, playlistIDs)
	if err != nil {
		u.logger.Errorf("Update - repo.Update error: %v", err)
		return nil, errors.Wrap(err, "monitoringUC.Update")
	}
	return updated, nil
}

func (u *monitoringUC) Delete(ctx context.Context, monitoringID int64) error {
	if _, _, err := u.authorizedJob(ctx, monitoringID, models.PermissionDelete); err != nil {
		return err
	}
	if u.runner.IsRunning(monitoringID) {
		return apperrors.Conflict("monitoring %d is running, stop it first", monitoringID)
	}
	if err := u.repo.Delete(ctx, monitoringID); err != nil {
		u.logger.Errorf("Delete - repo.Delete error: %v", err)
		return errors.Wrap(err, "monitoringUC.Delete")
	}
	return nil
}

func (u *monitoringUC) ListVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error) {
	if _, _, err := u.authorizedJob(ctx, monitoringID, models.PermissionView); err != nil {
		return nil, err
	}
	videos, err := u.repo.ListVideos(ctx, monitoringID)
	if err != nil {
		return nil, errors.Wrap(err, "monitoringUC.ListVideos")
	}
	return videos, nil
}

// authorizedJob loads the job (404) and checks the caller's permission on its channel (403).
func (u *monitoringUC) authorizedJob(ctx context.Context, monitoringID int64, permission models.Permission) (*models.User, *models.MonitoringJob, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, nil, err
	}
	job, err := u.repo.GetByID(ctx, monitoringID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "monitoringUC.authorizedJob.GetByID")
	}
	if err := u.channels.Authorize(ctx, user, job.ChannelID, permission); err != nil {
		return nil, nil, err
	}
	return user, job, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
