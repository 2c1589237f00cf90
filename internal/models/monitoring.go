package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MonitoringJob struct {
	ID           int64            `json:"id" db:"id"`
	ChannelID    int64            `json:"channel_id" db:"channel_id"`
	Name         string           `json:"name" db:"name"`
	IsContinuous bool             `json:"is_continuous" db:"is_continuous"`
	IntervalTime *int             `json:"interval_time" db:"interval_time"`
	Status       MonitoringStatus `json:"status" db:"status"`
	LastCheckAt  *time.Time       `json:"last_check_at" db:"last_check_at"`
	NextCheckAt  *time.Time       `json:"next_check_at" db:"next_check_at"`
	CreatedBy    uuid.UUID        `json:"created_by" db:"created_by"`
	UpdatedBy    *uuid.UUID       `json:"updated_by" db:"updated_by"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate checks the continuity invariants of a job.
func (j *MonitoringJob) Validate() error {
	if j.IsContinuous && (j.IntervalTime == nil || *j.IntervalTime <= 0) {
		return fmt.Errorf("continuous monitoring requires interval_time")
	}
	if j.IsContinuous && j.Status == MonitoringActive && j.NextCheckAt == nil {
		return fmt.Errorf("active continuous monitoring requires next_check_at")
	}
	return nil
}

// MonitoringDetails is a job with its aggregate counters.
type MonitoringDetails struct {
	MonitoringJob
	TotalVideos     int      `json:"total_videos" db:"total_videos"`
	ProcessedVideos int      `json:"processed_videos" db:"processed_videos"`
	Playlists       []string `json:"playlists" db:"-"`
	Running         bool     `json:"running" db:"-"`
}

type MonitoringListItem struct {
	ID              int64            `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	ChannelID       int64            `json:"channel_id" db:"channel_id"`
	ChannelName     string           `json:"channel_name" db:"channel_name"`
	ChannelAvatar   *string          `json:"channel_avatar" db:"channel_avatar"`
	Status          MonitoringStatus `json:"status" db:"status"`
	IsContinuous    bool             `json:"is_continuous" db:"is_continuous"`
	IntervalTime    *int             `json:"interval_time" db:"interval_time"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	LastCheckAt     *time.Time       `json:"last_check_at" db:"last_check_at"`
	NextCheckAt     *time.Time       `json:"next_check_at" db:"next_check_at"`
	TotalVideos     int              `json:"total_videos" db:"total_videos"`
	ProcessedVideos int              `json:"processed_videos" db:"processed_videos"`
}

type MonitoringList struct {
	TotalCount  int                   `json:"total_count"`
	TotalPages  int                   `json:"total_pages"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
	HasMore     bool                  `json:"has_more"`
	Monitorings []*MonitoringListItem `json:"monitorings"`
}

type MonitoringVideo struct {
	ID                  int64       `json:"id" db:"id"`
	MonitoringID        int64       `json:"monitoring_id" db:"monitoring_id"`
	VideoID             int64       `json:"video_id" db:"video_id"`
	Status              VideoStatus `json:"status" db:"status"`
	DownloadProgress    float64     `json:"download_progress" db:"download_progress"`
	DownloadStartedAt   *time.Time  `json:"download_started_at" db:"download_started_at"`
	DownloadCompletedAt *time.Time  `json:"download_completed_at" db:"download_completed_at"`
	ProjectPath         *string     `json:"project_path" db:"project_path"`
	SourcePath          *string     `json:"source_path" db:"source_path"`
	ArchiveKey          *string     `json:"archive_key" db:"archive_key"`
	ErrorMessage        *string     `json:"error_message" db:"error_message"`
	CreatedBy           uuid.UUID   `json:"created_by" db:"created_by"`
	UpdatedBy           *uuid.UUID  `json:"updated_by" db:"updated_by"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           *time.Time  `json:"updated_at" db:"updated_at"`

	// joined from youtube_video and youtube_monitoring
	YoutubeVideoID string `json:"youtube_video_id" db:"youtube_video_id"`
	Title          string `json:"title" db:"title"`
	ChannelID      int64  `json:"channel_id" db:"channel_id"`
}

type MonitoringPlaylist struct {
	ID           int64     `json:"id" db:"id"`
	MonitoringID int64     `json:"monitoring_id" db:"monitoring_id"`
	PlaylistID   string    `json:"playlist_id" db:"playlist_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateMonitoringInput struct {
	Name         string   `json:"name" validate:"required,lte=255"`
	ChannelID    int64    `json:"channel_id" validate:"required,gt=0"`
	IsContinuous bool     `json:"is_continuous"`
	IntervalTime *int     `json:"interval_time" validate:"omitempty,gt=0"`
	Interval     Interval `json:"interval" validate:"omitempty"`
	Videos       []int64  `json:"videos" validate:"omitempty,dive,gt=0"`
	PlaylistIDs  []string `json:"playlist_ids" validate:"omitempty,dive,required"`
}

// InitialStatus applies the single creation rule: continuity or any initial
// video or playlist makes the job active.
func (in *CreateMonitoringInput) InitialStatus() MonitoringStatus {
	if in.IsContinuous || len(in.Videos) > 0 || len(in.PlaylistIDs) > 0 {
		return MonitoringActive
	}
	return MonitoringNotConfigured
}

// ToJob resolves the interval and builds the job row to insert.
func (in *CreateMonitoringInput) ToJob(createdBy uuid.UUID, now time.Time) (*MonitoringJob, error) {
	interval, err := resolveInterval(in.IntervalTime, in.Interval)
	if err != nil {
		return nil, err
	}
	job := &MonitoringJob{
		ChannelID:    in.ChannelID,
		Name:         in.Name,
		IsContinuous: in.IsContinuous,
		IntervalTime: interval,
		Status:       in.InitialStatus(),
		CreatedBy:    createdBy,
	}
	job.scheduleFirstCheck(now)
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

type UpdateMonitoringInput struct {
	Name         *string           `json:"name" validate:"omitempty,lte=255"`
	IsContinuous *bool             `json:"is_continuous"`
	IntervalTime *int              `json:"interval_time" validate:"omitempty,gt=0"`
	Interval     Interval          `json:"interval" validate:"omitempty"`
	Status       *MonitoringStatus `json:"status"`
	PlaylistIDs  []string          `json:"playlist_ids" validate:"omitempty,dive,required"`
}

// Apply merges the update into job and re-checks the invariants.
func (in *UpdateMonitoringInput) Apply(job *MonitoringJob, updatedBy uuid.UUID, now time.Time) error {
	if in.Name != nil {
		job.Name = *in.Name
	}
	if in.IsContinuous != nil {
		job.IsContinuous = *in.IsContinuous
	}
	if in.IntervalTime != nil || in.Interval != "" {
		interval, err := resolveInterval(in.IntervalTime, in.Interval)
		if err != nil {
			return err
		}
		job.IntervalTime = interval
	}
	if in.Status != nil {
		job.Status = *in.Status
	}
	job.UpdatedBy = &updatedBy
	job.scheduleFirstCheck(now)
	return job.Validate()
}

// scheduleFirstCheck makes an active continuous job due at now when it has no check pending.
func (j *MonitoringJob) scheduleFirstCheck(now time.Time) {
	if j.IsContinuous && j.Status == MonitoringActive && j.NextCheckAt == nil {
		next := now
		j.NextCheckAt = &next
	}
}

func resolveInterval(minutes *int, symbolic Interval) (*int, error) {
	if symbolic != "" {
		m, err := symbolic.Minutes()
		if err != nil {
			return nil, err
		}
		return &m, nil
	}
	if minutes != nil && *minutes <= 0 {
		return nil, fmt.Errorf("interval_time must be positive")
	}
	return minutes, nil
}

// SweepReport summarises one scheduler tick.
type SweepReport struct {
	StartedAt   time.Time        `json:"started_at"`
	DueJobs     int              `json:"due_jobs"`
	CheckedJobs int              `json:"checked_jobs"`
	NewVideos   int              `json:"new_videos"`
	Failures    map[int64]string `json:"failures,omitempty"`
	Skipped     bool             `json:"skipped"`
}
