package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/jmoiron/sqlx"
)

type downloadsRepo struct {
	db *sqlx.DB
}

func NewDownloadsRepository(db *sqlx.DB) downloads.Repository {
	return &downloadsRepo{db: db}
}

func (r *downloadsRepo) GetVideo(ctx context.Context, videoID int64) (*models.MonitoringVideo, error) {
	v := &models.MonitoringVideo{}
	if err := r.db.GetContext(ctx, v, getMonitoringVideo, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitoring video %d not found", videoID)
		}
		return nil, fmt.Errorf("failed to get monitoring video: %w", err)
	}
	return v, nil
}

func (r *downloadsRepo) MarkDownloading(ctx context.Context, videoID int64, projectPath string) (time.Time, error) {
	var startedAt time.Time
	if err := r.db.QueryRowxContext(ctx, markDownloading, videoID, projectPath).Scan(&startedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, apperrors.NotFound("monitoring video %d not found", videoID)
		}
		return time.Time{}, fmt.Errorf("failed to mark video downloading: %w", err)
	}
	return startedAt, nil
}

func (r *downloadsRepo) UpdateProgress(ctx context.Context, videoID int64, progress float64) error {
	if _, err := r.db.ExecContext(ctx, updateProgress, videoID, progress); err != nil {
		return fmt.Errorf("failed to update download progress: %w", err)
	}
	return nil
}

func (r *downloadsRepo) MarkCompleted(ctx context.Context, videoID int64, sourcePath string, archiveKey *string) error {
	return r.exec(ctx, "mark video completed", markCompleted, videoID, sourcePath, archiveKey)
}

func (r *downloadsRepo) MarkFailed(ctx context.Context, videoID int64, message string) error {
	return r.exec(ctx, "mark video failed", markFailed, videoID, message)
}

func (r *downloadsRepo) MarkInterrupted(ctx context.Context, videoID int64, message string) error {
	return r.exec(ctx, "mark video interrupted", markInterrupted, videoID, message)
}

func (r *downloadsRepo) exec(ctx context.Context, action, query string, videoID int64, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, append([]interface{}{videoID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if n == 0 {
		return apperrors.NotFound("monitoring video %d not found", videoID)
	}
	return nil
}
