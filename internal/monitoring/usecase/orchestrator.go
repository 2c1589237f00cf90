package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/pkg/errors"
)

const (
	finishTimeout     = 30 * time.Second
	defaultCPUWaitSec = 5
)

func (u *monitoringUC) Start(ctx context.Context, monitoringID int64) error {
	_, job, err := u.authorizedJob(ctx, monitoringID, models.PermissionEdit)
	if err != nil {
		return err
	}
	return u.start(ctx, job)
}

func (u *monitoringUC) StartSystem(ctx context.Context, monitoringID int64) error {
	job, err := u.repo.GetByID(ctx, monitoringID)
	if err != nil {
		return errors.Wrap(err, "monitoringUC.StartSystem.GetByID")
	}
	return u.start(ctx, job)
}

func (u *monitoringUC) start(ctx context.Context, job *models.MonitoringJob) error {
	run, err := u.runner.TryAcquire(job.ID)
	switch {
	case errors.Is(err, errAlreadyRunning):
		return apperrors.Conflict("job already running")
	case err != nil:
		return apperrors.Wrap(apperrors.KindFatalOrchestrator, err.Error(), err)
	}

	if err := u.repo.SetStatus(ctx, job.ID, models.MonitoringActive); err != nil {
		u.runner.Release(job.ID, run)
		u.logger.Errorf("Start - SetStatus error: %v", err)
		return errors.Wrap(err, "monitoringUC.Start.SetStatus")
	}
	if _, _, err := utils.EnsureProjectTree(u.cfg.Downloader.DownloadsDir, job.ID); err != nil {
		u.runner.Release(job.ID, run)
		u.finish(job.ID, models.MonitoringError)
		u.logger.Errorf("Start - EnsureProjectTree error: %v", err)
		return apperrors.Wrap(apperrors.KindFatalOrchestrator, "failed to create project directories", err)
	}

	u.wg.Add(1)
	go u.run(job, run)
	u.logger.Infof("Monitoring %d started", job.ID)
	return nil
}

// run processes the job's eligible videos and always leaves the registry clean.
func (u *monitoringUC) run(job *models.MonitoringJob, run *RunState) {
	defer u.wg.Done()
	defer u.runner.Release(job.ID, run)
	defer func() {
		if r := recover(); r != nil {
			u.logger.Errorf("run - panic: monitoring %d: %v", job.ID, r)
			u.finish(job.ID, models.MonitoringError)
		}
	}()

	status, err := u.process(context.Background(), job, run)
	if err != nil {
		u.logger.Errorf("run - process error: monitoring %d: %v", job.ID, err)
		status = models.MonitoringError
	}
	u.finish(job.ID, status)
	u.logger.Infof("Monitoring %d finished with status %s", job.ID, status)
}

func (u *monitoringUC) process(ctx context.Context, job *models.MonitoringJob, run *RunState) (models.MonitoringStatus, error) {
	videos, err := u.repo.ListEligibleVideos(ctx, job.ID)
	if err != nil {
		return models.MonitoringError, errors.Wrap(err, "monitoringUC.process.ListEligibleVideos")
	}

	processed := 0
	for _, video := range videos {
		if run.Stopped() || !u.waitForCPU(run) {
			u.setVideoStatus(ctx, video.ID, models.VideoPaused, nil)
			break
		}
		if u.processVideo(ctx, video, run) {
			processed++
		}
	}

	switch {
	case processed == len(videos):
		return models.MonitoringCompleted, nil
	case run.Stopped():
		return models.MonitoringPaused, nil
	default:
		return models.MonitoringError, nil
	}
}

// processVideo downloads one video and reports whether it ended completed. Failures stay on the row.
// A transfer started elsewhere for the same video is joined instead of duplicated.
func (u *monitoringUC) processVideo(ctx context.Context, video *models.MonitoringVideo, run *RunState) bool {
	desc, err := u.downloader.Download(ctx, &models.DownloadRequest{
		URL:     youtube.WatchURL(video.YoutubeVideoID),
		VideoID: video.ID,
	})
	switch {
	case err == nil:
		u.join(desc.Handle, run)
	case apperrors.IsConflict(err):
		u.logger.Infof("processVideo - video %d already downloading, joining transfer", video.ID)
		if h, ok := u.downloader.Transfer(video.ID); ok {
			u.join(h, run)
		}
	default:
		u.logger.Errorf("processVideo - Download error: video %d: %v", video.ID, err)
		msg := fmt.Sprintf("Download failed: %s", apperrors.Message(err))
		u.setVideoStatus(ctx, video.ID, models.VideoError, &msg)
		return false
	}

	reloaded, err := u.repo.GetVideo(ctx, video.ID)
	if err != nil {
		u.logger.Errorf("processVideo - GetVideo error: video %d: %v", video.ID, err)
		return false
	}
	return reloaded.Status == models.VideoCompleted
}

// join waits for the transfer. A stop request cancels it only under hard stop or shutdown.
func (u *monitoringUC) join(h models.TransferHandle, run *RunState) {
	if h == nil {
		return
	}
	stop := run.StopRequested()
	for {
		select {
		case <-h.Done():
			return
		case <-stop:
			if u.cfg.Monitoring.HardStop || u.shuttingDown.Load() {
				h.Cancel()
			}
			stop = nil
		}
	}
}

// waitForCPU blocks while host load is above the limit. It returns false when a stop arrives first.
func (u *monitoringUC) waitForCPU(run *RunState) bool {
	limit := u.cfg.Worker.MaxCPUUsage
	if limit <= 0 {
		return true
	}
	wait := time.Duration(u.cfg.Worker.CPUWaitSeconds) * time.Second
	if wait <= 0 {
		wait = defaultCPUWaitSec * time.Second
	}
	for {
		ok, usage := u.cpuCheck(limit)
		if ok {
			return true
		}
		u.logger.Infof("CPU usage %.1f%% above %.1f%%, waiting %s", usage, limit, wait)
		timer := time.NewTimer(wait)
		select {
		case <-run.StopRequested():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

func (u *monitoringUC) setVideoStatus(ctx context.Context, videoID int64, status models.VideoStatus, message *string) {
	if err := u.repo.SetVideoStatus(ctx, videoID, status, message); err != nil {
		u.logger.Errorf("setVideoStatus error: video %d -> %s: %v", videoID, status, err)
	}
}

func (u *monitoringUC) finish(jobID int64, status models.MonitoringStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()
	if err := u.repo.SetStatus(ctx, jobID, status); err != nil {
		u.logger.Errorf("finish - SetStatus error: monitoring %d -> %s: %v", jobID, status, err)
	}
}

func (u *monitoringUC) Stop(ctx context.Context, monitoringID int64) error {
	if _, _, err := u.authorizedJob(ctx, monitoringID, models.PermissionEdit); err != nil {
		return err
	}
	run, ok := u.runner.Get(monitoringID)
	if !ok {
		return nil
	}
	run.RequestStop()

	paused, err := u.repo.PauseDownloading(ctx, monitoringID)
	if err != nil {
		u.logger.Errorf("Stop - PauseDownloading error: %v", err)
		return errors.Wrap(err, "monitoringUC.Stop.PauseDownloading")
	}
	if err := u.repo.SetStatus(ctx, monitoringID, models.MonitoringPaused); err != nil {
		u.logger.Errorf("Stop - SetStatus error: %v", err)
		return errors.Wrap(err, "monitoringUC.Stop.SetStatus")
	}
	u.logger.Infof("Monitoring %d stop requested, %d downloading videos paused", monitoringID, paused)
	return nil
}

func (u *monitoringUC) IsRunning(monitoringID int64) bool {
	return u.runner.IsRunning(monitoringID)
}

// Shutdown stops every running job, cancelling in-flight transfers, and waits for the runs to settle.
func (u *monitoringUC) Shutdown(ctx context.Context) error {
	u.shuttingDown.Store(true)
	if n := u.runner.Close(); n > 0 {
		u.logger.Infof("Stopping %d running monitorings", n)
	}

	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "monitoringUC.Shutdown")
	}
}
