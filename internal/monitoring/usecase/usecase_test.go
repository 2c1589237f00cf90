package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memRepo keeps jobs and video links in memory so background runs can be observed.
type memRepo struct {
	mu       sync.Mutex
	jobs     map[int64]*models.MonitoringJob
	videos   map[int64]*models.MonitoringVideo
	history  map[int64][]models.MonitoringStatus
	count    int
	created  []int64
	nextID   int64
	getPanic bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		jobs:    make(map[int64]*models.MonitoringJob),
		videos:  make(map[int64]*models.MonitoringVideo),
		history: make(map[int64][]models.MonitoringStatus),
		nextID:  100,
	}
}

func (r *memRepo) addJob(job *models.MonitoringJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
}

func (r *memRepo) addVideo(v *models.MonitoringVideo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[v.ID] = v
}

func (r *memRepo) jobStatus(id int64) models.MonitoringStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[id].Status
}

func (r *memRepo) videoStatus(id int64) models.VideoStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[id].Status
}

func (r *memRepo) setVideo(id int64, status models.VideoStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[id].Status = status
}

func (r *memRepo) Create(_ context.Context, job *models.MonitoringJob, videoIDs []int64, _ []string) (*models.MonitoringJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	job.ID = r.nextID
	r.jobs[job.ID] = job
	r.created = videoIDs
	return job, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*models.MonitoringJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("monitoring %d not found", id)
	}
	cp := *job
	return &cp, nil
}

func (r *memRepo) GetDetails(ctx context.Context, id int64) (*models.MonitoringDetails, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.MonitoringDetails{MonitoringJob: *job}, nil
}

func (r *memRepo) List(context.Context, uuid.UUID, bool, *models.MonitoringStatus, *utils.Pagination) (*models.MonitoringList, error) {
	return &models.MonitoringList{}, nil
}

func (r *memRepo) Update(_ context.Context, job *models.MonitoringJob, _ []string) (*models.MonitoringJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return job, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

func (r *memRepo) SetStatus(_ context.Context, id int64, status models.MonitoringStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return apperrors.NotFound("monitoring %d not found", id)
	}
	job.Status = status
	r.history[id] = append(r.history[id], status)
	return nil
}

func (r *memRepo) CountChannelVideos(context.Context, int64, []int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count, nil
}

func (r *memRepo) ListVideos(ctx context.Context, id int64) ([]*models.MonitoringVideo, error) {
	return r.list(id, nil), nil
}

func (r *memRepo) ListEligibleVideos(_ context.Context, id int64) ([]*models.MonitoringVideo, error) {
	return r.list(id, func(s models.VideoStatus) bool {
		return s == models.VideoPending || s == models.VideoPaused || s == models.VideoError
	}), nil
}

func (r *memRepo) list(jobID int64, keep func(models.VideoStatus) bool) []*models.MonitoringVideo {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MonitoringVideo
	for _, v := range r.videos {
		if v.MonitoringID == jobID && (keep == nil || keep(v.Status)) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memRepo) GetVideo(_ context.Context, id int64) (*models.MonitoringVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getPanic {
		panic("storage exploded")
	}
	v, ok := r.videos[id]
	if !ok {
		return nil, apperrors.NotFound("monitoring video %d not found", id)
	}
	cp := *v
	return &cp, nil
}

func (r *memRepo) SetVideoStatus(_ context.Context, id int64, status models.VideoStatus, message *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return apperrors.NotFound("monitoring video %d not found", id)
	}
	v.Status = status
	v.ErrorMessage = message
	return nil
}

func (r *memRepo) PauseDownloading(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.videos {
		if v.MonitoringID == id && v.Status == models.VideoDownloading {
			v.Status = models.VideoPaused
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ListDue(context.Context, time.Time) ([]*models.MonitoringJob, error) {
	return nil, nil
}

func (r *memRepo) LinkVideos(context.Context, int64, []int64, uuid.UUID) (int, error) {
	return 0, nil
}

func (r *memRepo) MarkChecked(context.Context, int64, time.Time, time.Time) error {
	return nil
}

type mockChannels struct {
	mock.Mock
}

func (m *mockChannels) GetByID(ctx context.Context, channelID int64) (*models.Channel, error) {
	args := m.Called(ctx, channelID)
	if v, ok := args.Get(0).(*models.Channel); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChannels) ListPlaylists(ctx context.Context, channelID int64) ([]*models.PlaylistInfo, error) {
	args := m.Called(ctx, channelID)
	if v, ok := args.Get(0).([]*models.PlaylistInfo); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChannels) Authorize(ctx context.Context, user *models.User, channelID int64, permission models.Permission) error {
	return m.Called(ctx, user, channelID, permission).Error(0)
}

// fakeHandle is a transfer the test finishes by hand.
type fakeHandle struct {
	done      chan struct{}
	once      sync.Once
	cancelled chan struct{}
	cOnce     sync.Once
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{}), cancelled: make(chan struct{})}
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }
func (h *fakeHandle) Err() error            { return nil }
func (h *fakeHandle) finish()               { h.once.Do(func() { close(h.done) }) }

func (h *fakeHandle) Cancel() {
	h.cOnce.Do(func() { close(h.cancelled) })
	h.finish()
}

// fakeDownloader drives the video rows the way the acquisition service would.
type fakeDownloader struct {
	repo *memRepo
	// outcome decides the final status of each video; nil completes it at once
	outcome func(videoID int64, h *fakeHandle)

	mu       sync.Mutex
	requests []*models.DownloadRequest
	fail     map[int64]error
	inflight map[int64]*fakeHandle
}

func (d *fakeDownloader) Transfer(videoID int64) (models.TransferHandle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.inflight[videoID]
	if !ok {
		return nil, false
	}
	return h, true
}

func (d *fakeDownloader) Download(_ context.Context, req *models.DownloadRequest) (*models.DownloadDescriptor, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	err := d.fail[req.VideoID]
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}

	h := newFakeHandle()
	if d.outcome == nil {
		d.repo.setVideo(req.VideoID, models.VideoCompleted)
		h.finish()
	} else {
		d.repo.setVideo(req.VideoID, models.VideoDownloading)
		go d.outcome(req.VideoID, h)
	}
	return &models.DownloadDescriptor{ID: req.VideoID, Handle: h}, nil
}

func (d *fakeDownloader) urls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.requests))
	for _, r := range d.requests {
		out = append(out, r.URL)
	}
	return out
}

type fixture struct {
	repo       *memRepo
	channels   *mockChannels
	downloader *fakeDownloader
	uc         *monitoringUC
	ctx        context.Context
	user       *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	f := &fixture{
		repo:       repo,
		channels:   &mockChannels{},
		downloader: &fakeDownloader{repo: repo, fail: map[int64]error{}},
		user:       &models.User{UserID: uuid.New(), Role: models.UserRole},
	}
	cfg := &config.Config{Downloader: config.DownloaderConfig{DownloadsDir: t.TempDir()}}
	f.uc = NewMonitoringUseCase(cfg, repo, f.channels, f.downloader, logger.NewNop()).(*monitoringUC)
	f.uc.cpuCheck = func(float64) (bool, float64) { return true, 0 }
	f.ctx = utils.WithUser(context.Background(), f.user)
	f.channels.On("Authorize", mock.Anything, mock.Anything, int64(2), mock.Anything).Return(nil)
	t.Cleanup(func() { _ = f.uc.Shutdown(context.Background()) })
	return f
}

func (f *fixture) seed(videos ...int64) *models.MonitoringJob {
	job := &models.MonitoringJob{ID: 7, ChannelID: 2, Name: "uploads", Status: models.MonitoringActive, CreatedBy: f.user.UserID}
	f.repo.addJob(job)
	for _, id := range videos {
		f.repo.addVideo(&models.MonitoringVideo{ID: id, MonitoringID: job.ID, YoutubeVideoID: "yt" + string(rune('a'+id)), Status: models.VideoPending})
	}
	return job
}

func (f *fixture) waitIdle(t *testing.T, jobID int64) {
	t.Helper()
	require.Eventually(t, func() bool { return !f.uc.IsRunning(jobID) }, 5*time.Second, 5*time.Millisecond)
}

func TestStart_CompletesAllVideos(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2, 3)

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
	for _, id := range []int64{1, 2, 3} {
		assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(id))
	}
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=ytb",
		"https://www.youtube.com/watch?v=ytc",
		"https://www.youtube.com/watch?v=ytd",
	}, f.downloader.urls())
	assert.DirExists(t, f.uc.cfg.Downloader.DownloadsDir+"/7/source")
}

func TestStart_ContinuousJobCompletes(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2)
	interval := 60
	job.IsContinuous = true
	job.IntervalTime = &interval
	f.repo.addJob(job)

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(1))
	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(2))
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
}

func TestRun_JoinsTransferStartedElsewhere(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2)
	manual := newFakeHandle()
	f.downloader.fail[2] = apperrors.Conflict("video 2 is already downloading")
	f.downloader.inflight = map[int64]*fakeHandle{2: manual}
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		// a single-video download of video 2 starts while video 1 is in flight
		f.repo.setVideo(2, models.VideoDownloading)
		f.repo.setVideo(id, models.VideoCompleted)
		h.finish()
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	require.Eventually(t, func() bool { return len(f.downloader.urls()) == 2 }, 5*time.Second, 5*time.Millisecond)
	assert.True(t, f.uc.IsRunning(job.ID))
	assert.Equal(t, models.VideoDownloading, f.repo.videoStatus(2))

	f.repo.setVideo(2, models.VideoCompleted)
	manual.finish()
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(2))
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
}

func TestRun_ConflictWithoutHandleLeavesRowAlone(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2)
	f.downloader.fail[2] = apperrors.Conflict("video 2 is already downloading")
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		// the other transfer of video 2 finishes before the run reaches it
		f.repo.setVideo(2, models.VideoCompleted)
		f.repo.setVideo(id, models.VideoCompleted)
		h.finish()
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(2))
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
}

func TestStart_AlreadyRunning(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	release := make(chan struct{})
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		<-release
		f.repo.setVideo(id, models.VideoCompleted)
		h.finish()
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	err := f.uc.Start(f.ctx, job.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "job already running", apperrors.Message(err))

	close(release)
	f.waitIdle(t, job.ID)
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
}

func TestStop_PausesRunAtVideoBoundary(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2, 3)
	started := make(chan int64, 3)
	release := make(chan struct{})
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		started <- id
		<-release
		f.repo.setVideo(id, models.VideoCompleted)
		h.finish()
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	assert.Equal(t, int64(1), <-started)

	require.NoError(t, f.uc.Stop(f.ctx, job.ID))
	assert.Equal(t, models.VideoPaused, f.repo.videoStatus(1))
	close(release)
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.MonitoringPaused, f.repo.jobStatus(job.ID))
	assert.Equal(t, models.VideoPaused, f.repo.videoStatus(2))
	assert.Equal(t, models.VideoPending, f.repo.videoStatus(3))
	assert.Len(t, f.downloader.urls(), 1)
}

func TestStop_HardStopCancelsTransfer(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.Monitoring.HardStop = true
	job := f.seed(1)
	var handle *fakeHandle
	ready := make(chan struct{})
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		handle = h
		close(ready)
		<-h.cancelled
		f.repo.setVideo(id, models.VideoPaused)
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	<-ready
	require.NoError(t, f.uc.Stop(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	select {
	case <-handle.cancelled:
	default:
		t.Fatal("transfer was not cancelled")
	}
	assert.Equal(t, models.MonitoringPaused, f.repo.jobStatus(job.ID))
}

func TestStop_NotRunningIsNoop(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	job.Status = models.MonitoringCompleted
	f.repo.addJob(job)

	require.NoError(t, f.uc.Stop(f.ctx, job.ID))
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
	assert.Empty(t, f.repo.history[job.ID])
}

func TestStop_Forbidden(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	job.ChannelID = 9
	f.repo.addJob(job)
	f.channels.On("Authorize", mock.Anything, mock.Anything, int64(9), models.PermissionEdit).
		Return(apperrors.Forbidden("no edit permission on channel 9"))

	err := f.uc.Stop(f.ctx, job.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestRun_VideoErrorsAreIsolated(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1, 2, 3)
	f.downloader.fail[2] = apperrors.New(apperrors.KindInternal, "no formats")

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(1))
	assert.Equal(t, models.VideoError, f.repo.videoStatus(2))
	assert.Equal(t, models.VideoCompleted, f.repo.videoStatus(3))
	assert.Equal(t, models.MonitoringError, f.repo.jobStatus(job.ID))
}

func TestRun_PanicMarksErrorAndReleases(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	f.repo.getPanic = true

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)

	assert.Equal(t, models.MonitoringError, f.repo.jobStatus(job.ID))
	f.repo.getPanic = false
	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)
}

func TestRun_WaitsForCPU(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.Worker = config.WorkerConfig{MaxCPUUsage: 50, CPUWaitSeconds: 1}
	job := f.seed(1)
	var mu sync.Mutex
	calls := 0
	f.uc.cpuCheck = func(float64) (bool, float64) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return calls > 1, 90
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	f.waitIdle(t, job.ID)
	assert.Equal(t, models.MonitoringCompleted, f.repo.jobStatus(job.ID))
}

func TestShutdown_CancelsAndRefusesNewRuns(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	ready := make(chan struct{})
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		close(ready)
		<-h.cancelled
		f.repo.setVideo(id, models.VideoPaused)
	}

	require.NoError(t, f.uc.Start(f.ctx, job.ID))
	<-ready
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.uc.Shutdown(ctx))

	assert.False(t, f.uc.IsRunning(job.ID))
	assert.Equal(t, models.MonitoringPaused, f.repo.jobStatus(job.ID))

	err := f.uc.Start(f.ctx, job.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindFatalOrchestrator, apperrors.KindOf(err))
}

func TestCreate(t *testing.T) {
	channel := &models.Channel{ID: 2, Name: "chan"}

	t.Run("active with videos", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(2)).Return(channel, nil)
		f.repo.count = 2

		job, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 2, Videos: []int64{5, 6, 5}})
		require.NoError(t, err)
		assert.Equal(t, models.MonitoringActive, job.Status)
		assert.Equal(t, []int64{5, 6}, f.repo.created)
		assert.Equal(t, f.user.UserID, job.CreatedBy)
	})

	t.Run("not configured", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(2)).Return(channel, nil)

		job, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 2})
		require.NoError(t, err)
		assert.Equal(t, models.MonitoringNotConfigured, job.Status)
	})

	t.Run("foreign videos", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(2)).Return(channel, nil)
		f.repo.count = 1

		_, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 2, Videos: []int64{5, 6}})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown playlist", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(2)).Return(channel, nil)
		f.channels.On("ListPlaylists", mock.Anything, int64(2)).Return([]*models.PlaylistInfo{{ID: "PL1"}}, nil)

		_, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 2, PlaylistIDs: []string{"PL1", "PL9"}})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("continuous without interval", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(2)).Return(channel, nil)

		_, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 2, IsContinuous: true})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("forbidden channel", func(t *testing.T) {
		f := newFixture(t)
		f.channels.On("GetByID", mock.Anything, int64(3)).Return(nil, apperrors.Forbidden("no view permission on channel 3"))

		_, err := f.uc.Create(f.ctx, &models.CreateMonitoringInput{Name: "n", ChannelID: 3})
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthorization(err))
	})
}

func TestDelete_RunningConflict(t *testing.T) {
	f := newFixture(t)
	job := f.seed(1)
	release := make(chan struct{})
	f.downloader.outcome = func(id int64, h *fakeHandle) {
		<-release
		f.repo.setVideo(id, models.VideoCompleted)
		h.finish()
	}
	require.NoError(t, f.uc.Start(f.ctx, job.ID))

	err := f.uc.Delete(f.ctx, job.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	close(release)
	f.waitIdle(t, job.ID)
	require.NoError(t, f.uc.Delete(f.ctx, job.ID))
	_, err = f.repo.GetByID(context.Background(), job.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetByID_ReportsRunning(t *testing.T) {
	f := newFixture(t)
	job := f.seed()

	details, err := f.uc.GetByID(f.ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, details.Running)
}

func TestStartSystem_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.uc.StartSystem(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, errors.Is(err, errAlreadyRunning))
}
