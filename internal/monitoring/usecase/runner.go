package usecase

import (
	"errors"
	"sync"
)

var (
	errAlreadyRunning = errors.New("job already running")
	errRunnerClosed   = errors.New("orchestrator is shutting down")
)

// RunState is the control block of one background job run.
type RunState struct {
	stop     chan struct{}
	stopOnce sync.Once
}

func newRunState() *RunState {
	return &RunState{stop: make(chan struct{})}
}

// RequestStop raises the cooperative stop flag.
func (s *RunState) RequestStop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *RunState) Stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// StopRequested is closed once a stop is requested.
func (s *RunState) StopRequested() <-chan struct{} {
	return s.stop
}

// JobRunner is the registry of running jobs. TryAcquire is an atomic check-and-set.
type JobRunner struct {
	mu     sync.Mutex
	runs   map[int64]*RunState
	closed bool
}

func NewJobRunner() *JobRunner {
	return &JobRunner{runs: make(map[int64]*RunState)}
}

func (r *JobRunner) TryAcquire(jobID int64) (*RunState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, errRunnerClosed
	}
	if _, ok := r.runs[jobID]; ok {
		return nil, errAlreadyRunning
	}
	s := newRunState()
	r.runs[jobID] = s
	return s, nil
}

// Release drops the registration if s still owns it.
func (r *JobRunner) Release(jobID int64, s *RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runs[jobID] == s {
		delete(r.runs, jobID)
	}
}

func (r *JobRunner) Get(jobID int64) (*RunState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.runs[jobID]
	return s, ok
}

func (r *JobRunner) IsRunning(jobID int64) bool {
	_, ok := r.Get(jobID)
	return ok
}

// Close refuses new runs and raises stop on every active one.
func (r *JobRunner) Close() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for _, s := range r.runs {
		s.RequestStop()
	}
	return len(r.runs)
}
