package usecase

import (
	"sync"
	"time"

	"kanflow-backend/internal/widget/domain"
)

// stopwatchSession is the per-user stopwatch. Elapsed time accumulates
// across start/stop cycles until reset.
type stopwatchSession struct {
	running     bool
	startedAt   time.Time
	accumulated time.Duration
	laps        []int64
}

type stopwatchRegistry struct {
	mu       sync.Mutex
	sessions map[string]*stopwatchSession
	now      func() time.Time
}

func newStopwatchRegistry() *stopwatchRegistry {
	return &stopwatchRegistry{
		sessions: make(map[string]*stopwatchSession),
		now:      time.Now,
	}
}

func (r *stopwatchRegistry) session(userID string) *stopwatchSession {
	s, ok := r.sessions[userID]
	if !ok {
		s = &stopwatchSession{}
		r.sessions[userID] = s
	}
	return s
}

func (s *stopwatchSession) elapsed(now time.Time) time.Duration {
	if s.running {
		return s.accumulated + now.Sub(s.startedAt)
	}
	return s.accumulated
}

func (s *stopwatchSession) snapshot(now time.Time) *domain.StopwatchState {
	laps := make([]int64, len(s.laps))
	copy(laps, s.laps)
	return &domain.StopwatchState{
		Running:   s.running,
		ElapsedMS: s.elapsed(now).Milliseconds(),
		Laps:      laps,
	}
}

func (r *stopwatchRegistry) get(userID string) *domain.StopwatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session(userID).snapshot(r.now())
}

func (r *stopwatchRegistry) start(userID string) *domain.StopwatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(userID)
	if !s.running {
		s.running = true
		s.startedAt = r.now()
	}
	return s.snapshot(r.now())
}

func (r *stopwatchRegistry) stop(userID string) *domain.StopwatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(userID)
	if s.running {
		s.accumulated += r.now().Sub(s.startedAt)
		s.running = false
	}
	return s.snapshot(r.now())
}

func (r *stopwatchRegistry) lap(userID string) *domain.StopwatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(userID)
	s.laps = append(s.laps, s.elapsed(r.now()).Milliseconds())
	return s.snapshot(r.now())
}

func (r *stopwatchRegistry) reset(userID string) *domain.StopwatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(userID)
	*s = stopwatchSession{}
	return s.snapshot(r.now())
}
