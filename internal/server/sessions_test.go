package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hywnj/cursor-todo/internal/app"
)

func newIdleController() *app.Controller {
	return app.NewController(&memStore{}, &memAuth{}, nil)
}

func TestSessionsPutGetRemove(t *testing.T) {
	s := NewSessions(time.Hour, nil, nil)
	defer s.Stop()

	ctrl := newIdleController()
	id := s.Put(ctrl)
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)
	assert.Equal(t, 1, s.Len())

	s.Remove(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessionsGetUnknown(t *testing.T) {
	s := NewSessions(time.Hour, nil, nil)
	defer s.Stop()

	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestSessionsSweepExpiresIdle(t *testing.T) {
	s := NewSessions(time.Minute, nil, nil)
	defer s.Stop()

	id := s.Put(newIdleController())
	require.Equal(t, 1, s.Len())

	// Still inside the idle window
	s.sweep(time.Now().Add(30 * time.Second))
	assert.Equal(t, 1, s.Len())

	s.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get(id)
	assert.False(t, ok)
}

func TestSessionsGetRefreshesIdleTimer(t *testing.T) {
	s := NewSessions(time.Minute, nil, nil)
	defer s.Stop()

	id := s.Put(newIdleController())

	// Touch the session late in its idle window, then sweep at a time
	// that would have expired the original access.
	s.mu.Lock()
	s.active[id].lastAccess = time.Now().Add(-50 * time.Second)
	s.mu.Unlock()

	_, ok := s.Get(id)
	require.True(t, ok)

	s.sweep(time.Now().Add(55 * time.Second))
	assert.Equal(t, 1, s.Len())
}

func TestSessionsStopClosesAll(t *testing.T) {
	s := NewSessions(time.Hour, nil, nil)

	s.Put(newIdleController())
	s.Put(newIdleController())
	require.Equal(t, 2, s.Len())

	s.Stop()
	assert.Equal(t, 0, s.Len())

	// Stop is idempotent
	s.Stop()
}
