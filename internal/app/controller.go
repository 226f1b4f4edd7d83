package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hywnj/cursor-todo/internal/logging"
	"github.com/hywnj/cursor-todo/internal/session"
	"github.com/hywnj/cursor-todo/internal/store"
	"github.com/hywnj/cursor-todo/internal/todo"
)

// TaskStore is the slice of the table store client the controller uses.
type TaskStore interface {
	List(ctx context.Context, accessToken string) ([]todo.Task, error)
	Insert(ctx context.Context, accessToken string, task store.NewTask) (*todo.Task, error)
	SetCompleted(ctx context.Context, accessToken, id string, completed bool) (*todo.Task, error)
	Delete(ctx context.Context, accessToken, id string) error
}

// AuthProvider is the slice of the session client the controller uses.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*session.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// View is an immutable snapshot of what one request renders.
type View struct {
	State          State
	Account        session.User
	Day            todo.Day
	Pending        []todo.Task
	Completed      []todo.Task
	CompletedToday int
}

// Controller orchestrates one account's session, task list, and
// mutations against the hosted backend.
type Controller struct {
	store  TaskStore
	auth   AuthProvider
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	sess    *session.Session
	tasks   []todo.Task
	watcher *session.Watcher
	watchWG sync.WaitGroup
}

// NewController creates a controller in the Unauthenticated state.
func NewController(taskStore TaskStore, auth AuthProvider, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  taskStore,
		auth:   auth,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

// SignIn authenticates, starts the session watcher, and loads the task
// list. A failed fetch still lands in Ready with an empty list; only a
// failed authentication keeps the controller Unauthenticated.
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	sess, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		c.logger.Warn("sign in failed",
			logging.Operation("controller.sign_in"),
			logging.AccountHash(email),
			logging.Err(err),
		)
		return &AlertError{Message: msgSignInFailed, Err: err}
	}

	c.mu.Lock()
	c.closeWatcherLocked()
	c.sess = sess
	c.state = StateLoading
	c.tasks = nil

	watcher := session.NewWatcher(c.auth, sess, c.logger)
	c.watcher = watcher
	c.watchWG.Add(1)
	c.mu.Unlock()

	go c.consumeChanges(watcher)

	c.fetch(ctx)
	return nil
}

// consumeChanges applies session-change events: refreshed tokens replace
// the held session, a nil session signs the account out.
func (c *Controller) consumeChanges(watcher *session.Watcher) {
	defer c.watchWG.Done()

	for change := range watcher.Changes() {
		c.mu.Lock()
		if c.watcher != watcher {
			// A newer sign-in superseded this subscription
			c.mu.Unlock()
			return
		}
		if change.Session != nil {
			c.sess = change.Session
			c.mu.Unlock()
			continue
		}

		c.logger.Info("session ended, clearing local state",
			logging.Operation("controller.session_change"),
			logging.State(StateUnauthenticated.String()),
		)
		c.resetLocked()
		c.mu.Unlock()
		return
	}
}

// fetch loads the full task list. Failure is logged and leaves an empty
// list; the controller still becomes Ready so the view stays usable.
func (c *Controller) fetch(ctx context.Context) {
	c.mu.Lock()
	token := c.sess.AccessToken()
	c.mu.Unlock()
	if token == "" {
		return
	}

	tasks, err := c.store.List(ctx, token)
	if err != nil {
		c.logger.Error("failed to fetch tasks",
			logging.Operation("controller.fetch"),
			logging.Err(err),
		)
		tasks = []todo.Task{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		// Signed out while the fetch was in flight
		return
	}
	c.tasks = tasks
	c.state = StateReady
}

// Add creates a task from a title. Blank titles and missing sessions are
// silent no-ops. When day is non-nil the task is pinned to local
// midnight of that day; otherwise the store stamps the moment of
// creation. The new record is prepended only after the store confirms.
func (c *Controller) Add(ctx context.Context, title string, day *todo.Day) error {
	title = strings.TrimSpace(title)

	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if title == "" || sess == nil {
		return nil
	}

	newTask := store.NewTask{
		Title: title,
		Owner: sess.User.ID,
	}
	if day != nil {
		midnight := day.Time()
		newTask.CreatedAt = &midnight
	}

	created, err := c.store.Insert(ctx, sess.AccessToken(), newTask)
	if err != nil {
		c.logger.Error("failed to add task",
			logging.Operation("controller.add"),
			logging.Err(err),
		)
		return &AlertError{Message: msgAddFailed, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append([]todo.Task{*created}, c.tasks...)
	return nil
}

// Toggle flips one task's completed flag. Only the confirmed record
// updates the list; any failure, including an unknown id, leaves the
// list exactly as it was.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	c.mu.Lock()
	sess := c.sess
	completed := true
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			completed = !c.tasks[i].Completed
			break
		}
	}
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	updated, err := c.store.SetCompleted(ctx, sess.AccessToken(), id, completed)
	if err != nil {
		c.logger.Error("failed to toggle task",
			logging.Operation("controller.toggle"),
			logging.TaskID(id),
			logging.Err(err),
		)
		return &AlertError{Message: msgToggleFailed, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completed = updated.Completed
			c.tasks[i].UpdatedAt = updated.UpdatedAt
			break
		}
	}
	return nil
}

// Delete removes one task. The list shrinks only after the store
// confirms the row is gone.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	if err := c.store.Delete(ctx, sess.AccessToken(), id); err != nil {
		c.logger.Error("failed to delete task",
			logging.Operation("controller.delete"),
			logging.TaskID(id),
			logging.Err(err),
		)
		return &AlertError{Message: msgDeleteFailed, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	return nil
}

// SignOut revokes the session (best effort), tears down the watcher, and
// cycles back to Unauthenticated.
func (c *Controller) SignOut(ctx context.Context) {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess != nil {
		if err := c.auth.SignOut(ctx, sess.AccessToken()); err != nil {
			c.logger.Warn("sign out request failed",
				logging.Operation("controller.sign_out"),
				logging.Err(err),
			)
		}
	}

	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// SnapshotFor renders the view for one calendar day. The completed-today
// count always means the current real-world day, not the viewed one.
func (c *Controller) SnapshotFor(day todo.Day, now time.Time) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		State: c.state,
		Day:   day,
	}
	if c.sess != nil {
		view.Account = c.sess.User
	}

	bucket := todo.BucketByDay(c.tasks, day)
	view.Pending, view.Completed = todo.PartitionByStatus(bucket)
	view.CompletedToday = todo.CountCompletedToday(c.tasks, now)
	return view
}

// Snapshot renders the view for the current day.
func (c *Controller) Snapshot(now time.Time) View {
	return c.SnapshotFor(todo.Today(now), now)
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Account returns the signed-in account identity, if any.
func (c *Controller) Account() (session.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return session.User{}, false
	}
	return c.sess.User, true
}

// Close tears down the watcher subscription and waits for it to drain.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closeWatcherLocked()
	c.mu.Unlock()
	c.watchWG.Wait()
}

func (c *Controller) resetLocked() {
	c.closeWatcherLocked()
	c.sess = nil
	c.tasks = nil
	c.state = StateUnauthenticated
}

func (c *Controller) closeWatcherLocked() {
	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}
}
