package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hywnj/cursor-todo/internal/app"
	"github.com/hywnj/cursor-todo/internal/instrumentation"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	// DefaultAddr is the default address for the application server.
	DefaultAddr = ":8080"

	sessionCookieName = "todo_session"

	requestTimeout = 15 * time.Second

	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
)

// Config holds everything the application server needs.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// NewController builds a fresh controller for each browser sign-in.
	NewController func() *app.Controller

	// SessionTimeout bounds how long an idle browser session is kept.
	SessionTimeout time.Duration

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Server is the HTTP application server.
type Server struct {
	httpServer *http.Server
	sessions   *Sessions
	health     *HealthChecker
	logger     *slog.Logger
	metrics    *instrumentation.Metrics

	newController func() *app.Controller
	shutdown      atomic.Bool
}

// New assembles the server and its router.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Metrics == nil {
		config.Metrics = &instrumentation.Metrics{}
	}

	s := &Server{
		sessions:      NewSessions(config.SessionTimeout, config.Logger, config.Metrics),
		logger:        config.Logger,
		metrics:       config.Metrics,
		newController: config.NewController,
	}
	s.health = NewHealthChecker(s.shutdown.Load)

	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(requestID)
	r.Use(observe(s.logger, s.metrics))

	s.health.RegisterHealthEndpoints(r)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Get("/", s.handleToday)
	r.Get("/{date}", s.handleDay)
	r.Post("/tasks", s.handleAdd)
	r.Post("/tasks/{id}/toggle", s.handleToggle)
	r.Post("/tasks/{id}/delete", s.handleDelete)

	return r
}

// Start serves until the listener closes. Call Shutdown from another
// goroutine to stop it.
func (s *Server) Start() error {
	s.logger.Info("starting application server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and tears down all browser
// sessions, revoking nothing: the hosted backend keeps its state.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdown.Store(true)
	s.health.SetReady(false)

	err := s.httpServer.Shutdown(ctx)
	s.sessions.Stop()
	return err
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
