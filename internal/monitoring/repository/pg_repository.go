package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type monitoringRepo struct {
	db *sqlx.DB
}

func NewMonitoringRepository(db *sqlx.DB) monitoring.Repository {
	return &monitoringRepo{db: db}
}

func (r *monitoringRepo) Create(ctx context.Context, job *models.MonitoringJob, videoIDs []int64, playlistIDs []string) (*models.MonitoringJob, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := &models.MonitoringJob{}
	if err := tx.QueryRowxContext(
		ctx,
		createMonitoring,
		job.ChannelID,
		job.Name,
		job.IsContinuous,
		job.IntervalTime,
		job.Status,
		job.NextCheckAt,
		job.CreatedBy,
	).StructScan(m); err != nil {
		return nil, fmt.Errorf("failed to create monitoring: %w", err)
	}

	for _, videoID := range videoIDs {
		if _, err := tx.ExecContext(ctx, addMonitoringVideo, m.ID, videoID, job.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to link video %d: %w", videoID, err)
		}
	}
	if err := insertPlaylists(ctx, tx, m.ID, playlistIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit monitoring: %w", err)
	}
	return m, nil
}

func insertPlaylists(ctx context.Context, tx *sqlx.Tx, monitoringID int64, playlistIDs []string) error {
	for _, playlistID := range playlistIDs {
		if _, err := tx.ExecContext(ctx, addMonitoringPlaylist, monitoringID, playlistID); err != nil {
			return fmt.Errorf("failed to add playlist %s: %w", playlistID, err)
		}
	}
	return nil
}

func (r *monitoringRepo) GetByID(ctx context.Context, monitoringID int64) (*models.MonitoringJob, error) {
	m := &models.MonitoringJob{}
	if err := r.db.GetContext(ctx, m, getMonitoringByID, monitoringID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitoring %d not found", monitoringID)
		}
		return nil, fmt.Errorf("failed to get monitoring: %w", err)
	}
	return m, nil
}

func (r *monitoringRepo) GetDetails(ctx context.Context, monitoringID int64) (*models.MonitoringDetails, error) {
	d := &models.MonitoringDetails{}
	if err := r.db.GetContext(ctx, d, getMonitoringDetails, monitoringID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitoring %d not found", monitoringID)
		}
		return nil, fmt.Errorf("failed to get monitoring details: %w", err)
	}
	d.Playlists = []string{}
	if err := r.db.SelectContext(ctx, &d.Playlists, getMonitoringPlaylists, monitoringID); err != nil {
		return nil, fmt.Errorf("failed to get monitoring playlists: %w", err)
	}
	return d, nil
}

func statusArg(status *models.MonitoringStatus) interface{} {
	if status == nil {
		return nil
	}
	return string(*status)
}

func (r *monitoringRepo) List(ctx context.Context, userID uuid.UUID, all bool, status *models.MonitoringStatus, pq *utils.Pagination) (*models.MonitoringList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalMonitorings, userID, all, statusArg(status)); err != nil {
		return nil, fmt.Errorf("failed to count monitorings: %w", err)
	}

	list := &models.MonitoringList{
		TotalCount:  totalCount,
		TotalPages:  utils.GetTotalPages(totalCount, pq.GetSize()),
		Page:        pq.GetPage(),
		Size:        pq.GetSize(),
		HasMore:     utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
		Monitorings: make([]*models.MonitoringListItem, 0),
	}
	if totalCount == 0 {
		return list, nil
	}

	if err := r.db.SelectContext(
		ctx,
		&list.Monitorings,
		getMonitorings,
		userID,
		all,
		statusArg(status),
		pq.GetOffset(),
		pq.GetLimit(),
	); err != nil {
		return nil, fmt.Errorf("failed to list monitorings: %w", err)
	}
	return list, nil
}

func (r *monitoringRepo) Update(ctx context.Context, job *models.MonitoringJob, playlistIDs []string) (*models.MonitoringJob, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := &models.MonitoringJob{}
	if err := tx.QueryRowxContext(
		ctx,
		updateMonitoring,
		job.Name,
		job.IsContinuous,
		job.IntervalTime,
		job.Status,
		job.NextCheckAt,
		job.UpdatedBy,
		job.ID,
	).StructScan(m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitoring %d not found", job.ID)
		}
		return nil, fmt.Errorf("failed to update monitoring: %w", err)
	}

	if playlistIDs != nil {
		if _, err := tx.ExecContext(ctx, deleteMonitoringPlaylists, job.ID); err != nil {
			return nil, fmt.Errorf("failed to clear playlists: %w", err)
		}
		if err := insertPlaylists(ctx, tx, job.ID, playlistIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit monitoring: %w", err)
	}
	return m, nil
}

func (r *monitoringRepo) Delete(ctx context.Context, monitoringID int64) error {
	return r.execOne(ctx, "delete monitoring", apperrors.NotFound("monitoring %d not found", monitoringID), deleteMonitoring, monitoringID)
}

func (r *monitoringRepo) SetStatus(ctx context.Context, monitoringID int64, status models.MonitoringStatus) error {
	return r.execOne(ctx, "set monitoring status", apperrors.NotFound("monitoring %d not found", monitoringID), setMonitoringStatus, monitoringID, string(status))
}

func (r *monitoringRepo) CountChannelVideos(ctx context.Context, channelID int64, videoIDs []int64) (int, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(countChannelVideos, channelID, videoIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build video count: %w", err)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count channel videos: %w", err)
	}
	return n, nil
}

func (r *monitoringRepo) ListVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error) {
	return r.selectVideos(ctx, listMonitoringVideos, monitoringID)
}

func (r *monitoringRepo) ListEligibleVideos(ctx context.Context, monitoringID int64) ([]*models.MonitoringVideo, error) {
	return r.selectVideos(ctx, listEligibleVideos, monitoringID)
}

func (r *monitoringRepo) selectVideos(ctx context.Context, query string, monitoringID int64) ([]*models.MonitoringVideo, error) {
	videos := make([]*models.MonitoringVideo, 0)
	if err := r.db.SelectContext(ctx, &videos, query, monitoringID); err != nil {
		return nil, fmt.Errorf("failed to list monitoring videos: %w", err)
	}
	return videos, nil
}

func (r *monitoringRepo) GetVideo(ctx context.Context, videoID int64) (*models.MonitoringVideo, error) {
	v := &models.MonitoringVideo{}
	if err := r.db.GetContext(ctx, v, getMonitoringVideo, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitoring video %d not found", videoID)
		}
		return nil, fmt.Errorf("failed to get monitoring video: %w", err)
	}
	return v, nil
}

func (r *monitoringRepo) SetVideoStatus(ctx context.Context, videoID int64, status models.VideoStatus, message *string) error {
	return r.execOne(ctx, "set video status", apperrors.NotFound("monitoring video %d not found", videoID), setVideoStatus, videoID, string(status), message)
}

func (r *monitoringRepo) PauseDownloading(ctx context.Context, monitoringID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, pauseDownloading, monitoringID)
	if err != nil {
		return 0, fmt.Errorf("failed to pause downloading videos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to pause downloading videos: %w", err)
	}
	return n, nil
}

func (r *monitoringRepo) ListDue(ctx context.Context, now time.Time) ([]*models.MonitoringJob, error) {
	jobs := make([]*models.MonitoringJob, 0)
	if err := r.db.SelectContext(ctx, &jobs, listDueMonitorings, now); err != nil {
		return nil, fmt.Errorf("failed to list due monitorings: %w", err)
	}
	return jobs, nil
}

func (r *monitoringRepo) LinkVideos(ctx context.Context, monitoringID int64, videoIDs []int64, createdBy uuid.UUID) (int, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, videoID := range videoIDs {
		res, err := tx.ExecContext(ctx, addMonitoringVideo, monitoringID, videoID, createdBy)
		if err != nil {
			return 0, fmt.Errorf("failed to link video %d: %w", videoID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to link video %d: %w", videoID, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit video links: %w", err)
	}
	return added, nil
}

func (r *monitoringRepo) MarkChecked(ctx context.Context, monitoringID int64, checkedAt, nextCheckAt time.Time) error {
	return r.execOne(ctx, "mark monitoring checked", apperrors.NotFound("monitoring %d not found", monitoringID), markChecked, monitoringID, checkedAt, nextCheckAt)
}

// execOne runs a statement that must touch at least one row, returning notFound otherwise.
func (r *monitoringRepo) execOne(ctx context.Context, action string, notFound error, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
