package session

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeRefresher struct {
	calls    atomic.Int64
	sessions []*Session
	err      error
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	idx := int(n) - 1
	if idx >= len(f.sessions) {
		idx = len(f.sessions) - 1
	}
	return f.sessions[idx], nil
}

func testSession(access string, ttl time.Duration) *Session {
	return &Session{
		User: User{ID: "u1", Email: "user@example.com"},
		Token: &oauth2.Token{
			AccessToken:  access,
			RefreshToken: "refresh-" + access,
			Expiry:       time.Now().Add(ttl),
		},
	}
}

func newTestWatcher(client refresher, sess *Session) *Watcher {
	w := &Watcher{
		client:  client,
		changes: make(chan Change, 4),
		done:    make(chan struct{}),
		logger:  slog.Default(),
		leeway:  time.Hour, // force an immediate refresh after minWait
		minWait: 10 * time.Millisecond,
	}
	go w.run(sess)
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case change, ok := <-w.Changes():
		require.True(t, ok, "change channel closed unexpectedly")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session change")
		return Change{}
	}
}

func TestWatcherDeliversInitialSession(t *testing.T) {
	sess := testSession("access-1", time.Hour)
	w := NewWatcher(&fakeRefresher{sessions: []*Session{sess}}, sess, nil)
	defer w.Close()

	change := waitChange(t, w)
	require.NotNil(t, change.Session)
	assert.Equal(t, "access-1", change.Session.AccessToken())
}

func TestWatcherRefreshesBeforeExpiry(t *testing.T) {
	first := testSession("access-1", time.Minute)
	second := testSession("access-2", time.Hour)

	fake := &fakeRefresher{sessions: []*Session{second}}
	w := newTestWatcher(fake, first)
	defer w.Close()

	initial := waitChange(t, w)
	assert.Equal(t, "access-1", initial.Session.AccessToken())

	refreshed := waitChange(t, w)
	require.NotNil(t, refreshed.Session)
	assert.Equal(t, "access-2", refreshed.Session.AccessToken())
	assert.GreaterOrEqual(t, fake.calls.Load(), int64(1))
}

func TestWatcherSignsOutOnRefreshFailure(t *testing.T) {
	sess := testSession("access-1", time.Minute)
	fake := &fakeRefresher{err: errors.New("revoked")}

	w := newTestWatcher(fake, sess)
	defer w.Close()

	initial := waitChange(t, w)
	require.NotNil(t, initial.Session)

	final := waitChange(t, w)
	assert.Nil(t, final.Session)

	// The stream ends after the terminal change
	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("change channel did not close")
	}
}

func TestWatcherClose(t *testing.T) {
	sess := testSession("access-1", time.Hour)
	w := NewWatcher(&fakeRefresher{sessions: []*Session{sess}}, sess, nil)

	_ = waitChange(t, w)
	w.Close()
	w.Close() // idempotent

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("change channel did not close after Close")
	}
}
