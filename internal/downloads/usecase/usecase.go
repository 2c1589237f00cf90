package usecase

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/pkg/errors"
)

const (
	persistTimeout = 30 * time.Second
	sourceDir      = "source"
)

type acquisitionUC struct {
	cfg        *config.Config
	repo       downloads.Repository
	redisRepo  downloads.RedisRepository
	awsRepo    downloads.AWSRepository
	engine     downloads.Engine
	publisher  downloads.Publisher
	authorizer downloads.Authorizer
	logger     logger.Logger

	baseCtx   context.Context
	cancelAll context.CancelFunc
	wg        sync.WaitGroup

	mu     sync.Mutex
	tasks  map[int64]*task
	closed bool
}

// NewAcquisitionUseCase builds the download service. awsRepo may be nil when archival is disabled.
func NewAcquisitionUseCase(
	cfg *config.Config,
	repo downloads.Repository,
	redisRepo downloads.RedisRepository,
	awsRepo downloads.AWSRepository,
	engine downloads.Engine,
	publisher downloads.Publisher,
	authorizer downloads.Authorizer,
	log logger.Logger,
) downloads.UseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &acquisitionUC{
		cfg:        cfg,
		repo:       repo,
		redisRepo:  redisRepo,
		awsRepo:    awsRepo,
		engine:     engine,
		publisher:  publisher,
		authorizer: authorizer,
		logger:     log,
		baseCtx:    ctx,
		cancelAll:  cancel,
		tasks:      make(map[int64]*task),
	}
}

// task is the handle of one running transfer.
type task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	mu       sync.Mutex
	progress float64
	title    string
}

func (t *task) Done() <-chan struct{} { return t.done }

// Err is meaningful once Done is closed.
func (t *task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

func (t *task) Cancel() { t.cancel() }

func (t *task) finish(err error) {
	t.err = err
	t.cancel()
	close(t.done)
}

// advance records pct unless it would move progress backwards, and returns the value to report.
func (t *task) advance(pct float64, title string) (float64, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pct < t.progress {
		pct = t.progress
	}
	t.progress = pct
	if title != "" {
		t.title = title
	}
	return pct, t.title
}

func (t *task) snapshot() (float64, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress, t.title
}

func (u *acquisitionUC) Download(ctx context.Context, req *models.DownloadRequest) (*models.DownloadDescriptor, error) {
	video, err := u.repo.GetVideo(ctx, req.VideoID)
	if err != nil {
		u.logger.Errorf("Download - GetVideo error: %v", err)
		return nil, errors.Wrap(err, "acquisitionUC.Download.GetVideo")
	}

	t, err := u.register(video)
	if err != nil {
		return nil, err
	}

	projectPath, dirs, err := utils.EnsureProjectTree(u.cfg.Downloader.DownloadsDir, video.MonitoringID)
	if err != nil {
		u.logger.Errorf("Download - EnsureProjectTree error: %v", err)
		u.abandon(video.ID, t)
		return nil, rejected("failed to prepare project directories", errors.Wrap(err, "acquisitionUC.Download.EnsureProjectTree"))
	}

	startedAt, err := u.repo.MarkDownloading(ctx, video.ID, projectPath)
	if err != nil {
		u.logger.Errorf("Download - MarkDownloading error: %v", err)
		u.abandon(video.ID, t)
		return nil, rejected("failed to mark video downloading", errors.Wrap(err, "acquisitionUC.Download.MarkDownloading"))
	}
	u.saveSnapshot(ctx, video.ID, 0, models.EventDownloading, video.Title, "Download started")

	go u.run(t, video, req.URL, dirs[sourceDir])

	u.logger.Infof("Download started: video %d of monitoring %d from %s", video.ID, video.MonitoringID, req.URL)
	return &models.DownloadDescriptor{
		ID:           video.ID,
		MonitoringID: video.MonitoringID,
		URL:          req.URL,
		Title:        video.Title,
		ProjectPath:  projectPath,
		VideoPath:    dirs[sourceDir],
		Directories:  dirs,
		Metadata: map[string]string{
			"youtube_video_id": video.YoutubeVideoID,
			"format":           u.cfg.Downloader.Format,
		},
		DownloadStatus: models.DownloadStatus{
			Step:      models.EventDownloading,
			Progress:  0,
			StartedAt: &startedAt,
		},
		Handle: t,
	}, nil
}

// rejected turns an untyped setup failure into a bad request and leaves typed errors as they are.
func rejected(message string, err error) error {
	if apperrors.KindOf(err) != apperrors.KindInternal {
		return err
	}
	return apperrors.Wrap(apperrors.KindBadRequest, message, err)
}

// register claims the video for one transfer. The wait group is joined under the lock so Shutdown never races Add.
func (u *acquisitionUC) register(video *models.MonitoringVideo) (*task, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return nil, apperrors.New(apperrors.KindFatalOrchestrator, "download service is shutting down")
	}
	if _, busy := u.tasks[video.ID]; busy {
		return nil, apperrors.Conflict("video %d is already downloading", video.ID)
	}
	ctx, cancel := context.WithCancel(u.baseCtx)
	t := &task{ctx: ctx, cancel: cancel, done: make(chan struct{}), title: video.Title}
	u.tasks[video.ID] = t
	u.wg.Add(1)
	return t, nil
}

func (u *acquisitionUC) Transfer(videoID int64) (models.TransferHandle, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	t, ok := u.tasks[videoID]
	if !ok {
		return nil, false
	}
	return t, true
}

func (u *acquisitionUC) release(videoID int64, t *task) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tasks[videoID] == t {
		delete(u.tasks, videoID)
	}
}

// abandon drops a task that never started.
func (u *acquisitionUC) abandon(videoID int64, t *task) {
	u.release(videoID, t)
	t.finish(context.Canceled)
	u.wg.Done()
}

func (u *acquisitionUC) run(t *task, video *models.MonitoringVideo, url, outputDir string) {
	defer u.wg.Done()

	err := u.transfer(t, video, url, outputDir)
	u.release(video.ID, t)
	t.finish(err)
}

func (u *acquisitionUC) transfer(t *task, video *models.MonitoringVideo, url, outputDir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("download panic: %v", r)
			u.fail(t, video.ID, err)
		}
	}()

	res, err := u.engine.Fetch(t.ctx, url, outputDir, func(p models.TransferProgress) {
		u.onProgress(t, video.ID, p)
	})
	if err != nil {
		u.fail(t, video.ID, err)
		return err
	}
	if res.Title != "" {
		t.advance(0, res.Title)
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	archiveKey := u.archive(ctx, video, res.FilePath)
	if err := u.repo.MarkCompleted(ctx, video.ID, res.FilePath, archiveKey); err != nil {
		u.logger.Errorf("transfer - MarkCompleted error: video %d: %v", video.ID, err)
		u.fail(t, video.ID, err)
		return err
	}

	_, title := t.advance(100, "")
	u.saveSnapshot(ctx, video.ID, 100, models.EventCompleted, title, "Download completed")
	u.publisher.Publish(video.ID, &models.ProgressEvent{
		Progress: 100,
		Status:   models.EventCompleted,
		Title:    title,
		Message:  "Download completed",
	})
	u.logger.Infof("Download completed: video %d -> %s", video.ID, res.FilePath)
	return nil
}

func (u *acquisitionUC) onProgress(t *task, videoID int64, p models.TransferProgress) {
	if t.ctx.Err() != nil {
		return
	}
	pct, title := t.advance(p.Percent(), p.Title)

	ctx, cancel := context.WithTimeout(t.ctx, persistTimeout)
	defer cancel()

	if err := u.repo.UpdateProgress(ctx, videoID, pct); err != nil {
		u.logger.Warnf("onProgress - UpdateProgress error: video %d: %v", videoID, err)
	}
	message := fmt.Sprintf("Downloading: %.1f%%", pct)
	u.saveSnapshot(ctx, videoID, pct, models.EventDownloading, title, message)

	event := &models.ProgressEvent{
		Progress: pct,
		Status:   models.EventDownloading,
		Title:    title,
		Message:  message,
	}
	if p.BytesPerSecond > 0 {
		speed := p.BytesPerSecond
		event.Speed = &speed
	}
	if p.ETA > 0 {
		eta := int(p.ETA.Seconds())
		event.ETA = &eta
	}
	u.publisher.Publish(videoID, event)
}

// fail records a transfer failure. Cancelled transfers are parked as paused so a later run resumes them.
func (u *acquisitionUC) fail(t *task, videoID int64, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	pct, title := t.snapshot()
	if t.ctx.Err() != nil {
		if err := u.repo.MarkInterrupted(ctx, videoID, "Download cancelled"); err != nil {
			u.logger.Errorf("fail - MarkInterrupted error: video %d: %v", videoID, err)
		}
		u.saveSnapshot(ctx, videoID, pct, models.EventPaused, title, "Download cancelled")
		u.publisher.Publish(videoID, &models.ProgressEvent{
			Progress: pct,
			Status:   models.EventPaused,
			Title:    title,
			Message:  "Download cancelled",
		})
		u.logger.Infof("Download cancelled: video %d", videoID)
		return
	}

	message := fmt.Sprintf("Download failed: %v", cause)
	if err := u.repo.MarkFailed(ctx, videoID, message); err != nil {
		u.logger.Errorf("fail - MarkFailed error: video %d: %v", videoID, err)
	}
	u.saveSnapshot(ctx, videoID, pct, models.EventError, title, message)
	u.publisher.Publish(videoID, &models.ProgressEvent{
		Progress: pct,
		Status:   models.EventError,
		Title:    title,
		Message:  message,
	})
	u.logger.Errorf("Download failed: video %d: %v", videoID, cause)
}

// archive copies the finished source to object storage. Failures are logged and leave the key empty.
func (u *acquisitionUC) archive(ctx context.Context, video *models.MonitoringVideo, filePath string) *string {
	if u.awsRepo == nil || !u.cfg.S3.Enabled {
		return nil
	}
	f, err := os.Open(filePath)
	if err != nil {
		u.logger.Warnf("archive - Open error: video %d: %v", video.ID, err)
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		u.logger.Warnf("archive - Stat error: video %d: %v", video.ID, err)
		return nil
	}

	name := filepath.Base(filePath)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	key := path.Join("archive", strconv.FormatInt(video.MonitoringID, 10), strconv.FormatInt(video.ID, 10), name)

	if err := u.awsRepo.PutObject(ctx, models.ArchiveInput{
		File:       f,
		Name:       name,
		MimeType:   mimeType,
		Size:       info.Size(),
		Key:        key,
		BucketName: u.cfg.S3.ArchiveBucket,
	}); err != nil {
		u.logger.Warnf("archive - PutObject error: video %d: %v", video.ID, err)
		return nil
	}
	return &key
}

func (u *acquisitionUC) saveSnapshot(ctx context.Context, videoID int64, pct float64, status, title, message string) {
	if u.redisRepo == nil {
		return
	}
	if err := u.redisRepo.SetProgress(ctx, &models.ProgressSnapshot{
		VideoID:   videoID,
		Progress:  pct,
		Status:    status,
		Title:     title,
		Message:   message,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		u.logger.Warnf("saveSnapshot - SetProgress error: video %d: %v", videoID, err)
	}
}

func (u *acquisitionUC) GetProgress(ctx context.Context, videoID int64) (*models.ProgressSnapshot, error) {
	if u.redisRepo != nil {
		snapshot, err := u.redisRepo.GetProgress(ctx, videoID)
		if err != nil {
			u.logger.Warnf("GetProgress - redis error: %v", err)
		}
		if snapshot != nil {
			return snapshot, nil
		}
	}

	video, err := u.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "acquisitionUC.GetProgress.GetVideo")
	}
	snapshot := &models.ProgressSnapshot{
		VideoID:  video.ID,
		Progress: video.DownloadProgress,
		Status:   video.Status.String(),
		Title:    video.Title,
	}
	if video.ErrorMessage != nil {
		snapshot.Message = *video.ErrorMessage
	}
	if video.UpdatedAt != nil {
		snapshot.UpdatedAt = *video.UpdatedAt
	} else {
		snapshot.UpdatedAt = video.CreatedAt
	}
	return snapshot, nil
}

func (u *acquisitionUC) ArchiveURL(ctx context.Context, videoID int64) (string, error) {
	if u.awsRepo == nil || !u.cfg.S3.Enabled {
		return "", apperrors.Validation("source archival is disabled")
	}
	video, err := u.repo.GetVideo(ctx, videoID)
	if err != nil {
		return "", errors.Wrap(err, "acquisitionUC.ArchiveURL.GetVideo")
	}
	if video.ArchiveKey == nil || *video.ArchiveKey == "" {
		return "", apperrors.Validation("video %d has no archived source", videoID)
	}

	expires := time.Duration(u.cfg.S3.PresignExpireMinutes) * time.Minute
	if expires <= 0 {
		expires = time.Hour
	}
	url, err := u.awsRepo.GetPresignedURL(ctx, u.cfg.S3.ArchiveBucket, *video.ArchiveKey, expires)
	if err != nil {
		u.logger.Errorf("ArchiveURL - GetPresignedURL error: %v", err)
		return "", errors.Wrap(err, "acquisitionUC.ArchiveURL.GetPresignedURL")
	}
	return url, nil
}

func (u *acquisitionUC) Authorize(ctx context.Context, videoID int64, permission models.Permission) error {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return err
	}
	video, err := u.repo.GetVideo(ctx, videoID)
	if err != nil {
		return errors.Wrap(err, "acquisitionUC.Authorize.GetVideo")
	}
	return u.authorizer.Authorize(ctx, user, video.ChannelID, permission)
}

// Shutdown cancels every in-flight transfer and waits for them to record their outcome.
func (u *acquisitionUC) Shutdown(ctx context.Context) error {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()
	u.cancelAll()

	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "acquisitionUC.Shutdown")
	}
}
