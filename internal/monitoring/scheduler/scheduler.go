package scheduler

import (
	"context"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const releaseTimeout = 5 * time.Second

// Scheduler discovers new uploads for due continuous jobs and links them as pending videos.
type Scheduler struct {
	cfg       *config.Config
	repo      monitoring.Repository
	redisRepo monitoring.RedisRepository
	channels  monitoring.ChannelStore
	providers monitoring.ProviderSource
	jobs      monitoring.UseCase
	logger    logger.Logger
	owner     string
	now       func() time.Time
}

func NewScheduler(
	cfg *config.Config,
	repo monitoring.Repository,
	redisRepo monitoring.RedisRepository,
	channels monitoring.ChannelStore,
	providers monitoring.ProviderSource,
	jobs monitoring.UseCase,
	log logger.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		repo:      repo,
		redisRepo: redisRepo,
		channels:  channels,
		providers: providers,
		jobs:      jobs,
		logger:    log,
		owner:     uuid.NewString(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ monitoring.Scheduler = (*Scheduler)(nil)

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.cfg.Monitoring.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	s.logger.Infof("Starting monitoring scheduler, sweep every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.tick(ctx)
		select {
		case <-ctx.Done():
			s.logger.Info("Monitoring scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Errorf("Sweep error: %v", err)
		return
	}
	if report.Skipped {
		s.logger.Debug("Sweep skipped, lock held by another instance")
		return
	}
	if report.DueJobs > 0 {
		s.logger.Infof("Sweep checked %d/%d jobs, %d new videos, %d failures",
			report.CheckedJobs, report.DueJobs, report.NewVideos, len(report.Failures))
	}
}

func (s *Scheduler) Sweep(ctx context.Context) (*models.SweepReport, error) {
	now := s.now()
	report := &models.SweepReport{StartedAt: now, Failures: map[int64]string{}}

	locked, release := s.lock(ctx)
	if !locked {
		report.Skipped = true
		return report, nil
	}
	defer release()

	jobs, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "Scheduler.Sweep.ListDue")
	}
	report.DueJobs = len(jobs)

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		added, err := s.checkJob(ctx, job, now)
		if err != nil {
			s.logger.Errorf("Sweep - checkJob error: monitoring %d: %v", job.ID, err)
			report.Failures[job.ID] = err.Error()
			continue
		}
		report.CheckedJobs++
		report.NewVideos += added

		if added > 0 && s.cfg.Monitoring.AutoStart {
			if err := s.jobs.StartSystem(ctx, job.ID); err != nil && !apperrors.IsConflict(err) {
				s.logger.Errorf("Sweep - StartSystem error: monitoring %d: %v", job.ID, err)
			}
		}
	}
	return report, nil
}

// lock takes the cluster-wide sweep lock. Redis trouble degrades to an unlocked sweep.
func (s *Scheduler) lock(ctx context.Context) (bool, func()) {
	noop := func() {}
	if s.redisRepo == nil {
		return true, noop
	}
	ttl := s.cfg.Monitoring.LockTTL
	if ttl <= 0 {
		ttl = s.cfg.Monitoring.SweepInterval
	}
	ok, err := s.redisRepo.AcquireSweepLock(ctx, s.owner, ttl)
	if err != nil {
		s.logger.Warnf("Sweep - AcquireSweepLock error, sweeping unlocked: %v", err)
		return true, noop
	}
	if !ok {
		return false, noop
	}
	return true, func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := s.redisRepo.ReleaseSweepLock(ctx, s.owner); err != nil {
			s.logger.Warnf("Sweep - ReleaseSweepLock error: %v", err)
		}
	}
}

// checkJob refreshes the channel, links its recent uploads and schedules the next check.
func (s *Scheduler) checkJob(ctx context.Context, job *models.MonitoringJob, now time.Time) (int, error) {
	channel, err := s.channels.GetByID(ctx, job.ChannelID)
	if err != nil {
		return 0, errors.Wrap(err, "GetByID")
	}
	provider, err := s.providers.ProviderFor(ctx, channel)
	if err != nil {
		return 0, errors.Wrap(err, "ProviderFor")
	}

	info, err := provider.GetChannelInfo(ctx, channel.YoutubeID)
	if err != nil {
		return 0, errors.Wrap(err, "GetChannelInfo")
	}
	channel.ApplyInfo(info)
	synced := now
	channel.LastSyncAt = &synced
	if _, err := s.channels.Update(ctx, channel); err != nil {
		s.logger.Warnf("checkJob - channel Update error: channel %d: %v", channel.ID, err)
	}

	recent, err := provider.GetRecentVideos(ctx, channel.YoutubeID, s.cfg.Monitoring.RecentVideosLimit)
	if err != nil {
		return 0, errors.Wrap(err, "GetRecentVideos")
	}
	videoIDs := make([]int64, 0, len(recent))
	for _, v := range recent {
		stored, err := s.channels.UpsertVideo(ctx, v.ToVideo(channel.ID))
		if err != nil {
			return 0, errors.Wrapf(err, "UpsertVideo %s", v.ID)
		}
		videoIDs = append(videoIDs, stored.ID)
	}

	added := 0
	if len(videoIDs) > 0 {
		added, err = s.repo.LinkVideos(ctx, job.ID, videoIDs, job.CreatedBy)
		if err != nil {
			return 0, errors.Wrap(err, "LinkVideos")
		}
	}

	if err := s.repo.MarkChecked(ctx, job.ID, now, now.Add(s.intervalOf(job))); err != nil {
		return added, errors.Wrap(err, "MarkChecked")
	}
	return added, nil
}

func (s *Scheduler) intervalOf(job *models.MonitoringJob) time.Duration {
	if job.IntervalTime != nil && *job.IntervalTime > 0 {
		return models.IntervalDelta(*job.IntervalTime)
	}
	return s.cfg.Monitoring.SweepInterval
}
