package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hywnj/cursor-todo/internal/logging"
)

const (
	// refreshLeeway is how long before token expiry a refresh is attempted.
	refreshLeeway = 30 * time.Second

	// minRefreshWait keeps a near-expired token from spinning the loop.
	minRefreshWait = 5 * time.Second

	refreshTimeout = 15 * time.Second
)

// refresher is the part of Client the watcher needs.
type refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// Watcher is a cancellable subscription to session changes. It delivers
// the initial session, then a Change for every successful token refresh,
// and finally a nil-session Change if a refresh fails (the account is
// effectively signed out at that point). The channel closes when the
// watcher stops, either after a terminal change or via Close.
type Watcher struct {
	client  refresher
	changes chan Change
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
	leeway  time.Duration
	minWait time.Duration
}

// NewWatcher starts watching the given session. The caller owns the
// watcher and must Close it when the session is torn down.
func NewWatcher(client refresher, sess *Session, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		client:  client,
		changes: make(chan Change, 4),
		done:    make(chan struct{}),
		logger:  logger,
		leeway:  refreshLeeway,
		minWait: minRefreshWait,
	}

	go w.run(sess)
	return w
}

// Changes returns the event stream. A Change with a nil Session means
// signed out.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close cancels the subscription. It is safe to call more than once.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) run(sess *Session) {
	defer close(w.changes)

	if !w.emit(Change{Session: sess}) {
		return
	}

	for {
		wait := sess.ExpiresIn(time.Now()) - w.leeway
		if wait < w.minWait {
			wait = w.minWait
		}

		timer := time.NewTimer(wait)
		select {
		case <-w.done:
			timer.Stop()
			return
		case <-timer.C:
		}

		refreshed, err := w.refresh(sess)
		if err != nil {
			w.logger.Warn("session refresh failed, signing out",
				logging.Operation("session.refresh"),
				logging.Err(err),
			)
			w.emit(Change{Session: nil})
			return
		}

		sess = refreshed
		if !w.emit(Change{Session: sess}) {
			return
		}
	}
}

func (w *Watcher) refresh(sess *Session) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	refreshToken := ""
	if sess != nil && sess.Token != nil {
		refreshToken = sess.Token.RefreshToken
	}
	return w.client.Refresh(ctx, refreshToken)
}

// emit delivers a change unless the watcher has been closed. It reports
// whether the watcher should keep running.
func (w *Watcher) emit(change Change) bool {
	select {
	case w.changes <- change:
		return true
	case <-w.done:
		return false
	}
}
