package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hywnj/cursor-todo/internal/app"
	"github.com/hywnj/cursor-todo/internal/instrumentation"
)

const (
	// DefaultSessionTimeout is how long an idle browser session lives
	// before its controller is torn down.
	DefaultSessionTimeout = 24 * time.Hour

	sessionSweepInterval = 10 * time.Minute
)

type browserSession struct {
	controller *app.Controller
	lastAccess time.Time
}

// Sessions maps opaque cookie values to per-account controllers so that
// multiple browsers can use the same server instance. Idle sessions are
// swept periodically; removal closes the controller.
type Sessions struct {
	mu      sync.Mutex
	active  map[string]*browserSession
	timeout time.Duration
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// NewSessions creates a session registry and starts the sweep loop.
func NewSessions(timeout time.Duration, logger *slog.Logger, metrics *instrumentation.Metrics) *Sessions {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	s := &Sessions{
		active:  make(map[string]*browserSession),
		timeout: timeout,
		ticker:  time.NewTicker(sessionSweepInterval),
		done:    make(chan struct{}),
		logger:  logger,
		metrics: metrics,
	}
	go s.sweepLoop()
	return s
}

// Put registers a controller and returns the opaque id for the cookie.
func (s *Sessions) Put(ctrl *app.Controller) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.active[id] = &browserSession{
		controller: ctrl,
		lastAccess: time.Now(),
	}
	s.mu.Unlock()

	s.metrics.IncrementActiveSessions(context.Background())
	return id
}

// Get returns the controller for a cookie value and refreshes its idle
// timer.
func (s *Sessions) Get(id string) (*app.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, ok := s.active[id]
	if !ok {
		return nil, false
	}
	bs.lastAccess = time.Now()
	return bs.controller, true
}

// Remove drops a session and closes its controller.
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	bs, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	s.mu.Unlock()

	if ok {
		bs.controller.Close()
		s.metrics.DecrementActiveSessions(context.Background())
	}
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *Sessions) sweepLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.sweep(time.Now())
		case <-s.done:
			return
		}
	}
}

// sweep closes sessions idle longer than the timeout.
func (s *Sessions) sweep(now time.Time) {
	s.mu.Lock()
	var expired []*browserSession
	for id, bs := range s.active {
		if now.Sub(bs.lastAccess) > s.timeout {
			delete(s.active, id)
			expired = append(expired, bs)
		}
	}
	s.mu.Unlock()

	for _, bs := range expired {
		bs.controller.Close()
		s.metrics.DecrementActiveSessions(context.Background())
	}
	if len(expired) > 0 {
		s.logger.Info("swept idle browser sessions", "count", len(expired))
	}
}

// Stop halts the sweep loop and closes every remaining controller.
func (s *Sessions) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})

	s.mu.Lock()
	remaining := s.active
	s.active = make(map[string]*browserSession)
	s.mu.Unlock()

	for _, bs := range remaining {
		bs.controller.Close()
		s.metrics.DecrementActiveSessions(context.Background())
	}
}
