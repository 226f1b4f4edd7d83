package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hywnj/cursor-todo/internal/app"
	"github.com/hywnj/cursor-todo/internal/instrumentation"
	"github.com/hywnj/cursor-todo/internal/logging"
	"github.com/hywnj/cursor-todo/internal/server"
	"github.com/hywnj/cursor-todo/internal/session"
	"github.com/hywnj/cursor-todo/internal/store"
)

// ServeConfig holds the resolved configuration for the serve command.
type ServeConfig struct {
	// HTTPAddr is the address of the application server (e.g. ":8080").
	HTTPAddr string

	// BackendURL is the root URL of the hosted backend project.
	BackendURL string

	// APIKey is the backend's anonymous API key.
	APIKey string

	// SessionTimeout bounds idle browser sessions.
	SessionTimeout time.Duration

	// Metrics holds the dedicated metrics listener settings.
	Metrics MetricsConfig

	// Debug switches logging to the verbose text handler.
	Debug bool
}

// MetricsConfig holds configuration for the metrics server.
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		httpAddr       string
		backendURL     string
		apiKey         string
		envFile        string
		sessionTimeout time.Duration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the to-do web server",
		Long: `Start the web server that renders the daily to-do list.

The hosted backend is addressed via --backend-url and --api-key, or the
SUPABASE_URL and SUPABASE_ANON_KEY environment variables. An optional
.env file (--env-file) is loaded first, so local development can keep
credentials out of the shell profile.

Tasks and accounts live entirely in the hosted backend; restarting this
process only drops signed-in browser sessions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing default .env is fine; an explicitly named one is not.
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					if cmd.Flags().Changed("env-file") || !os.IsNotExist(err) {
						return fmt.Errorf("failed to load env file %s: %w", envFile, err)
					}
				}
			}

			if backendURL == "" {
				backendURL = os.Getenv("SUPABASE_URL")
			}
			if apiKey == "" {
				apiKey = os.Getenv("SUPABASE_ANON_KEY")
			}
			if backendURL == "" || apiKey == "" {
				return fmt.Errorf("backend URL and API key are required (--backend-url/--api-key or SUPABASE_URL/SUPABASE_ANON_KEY)")
			}

			config := ServeConfig{
				HTTPAddr:       httpAddr,
				BackendURL:     backendURL,
				APIKey:         apiKey,
				SessionTimeout: sessionTimeout,
				Debug:          debugMode,
				Metrics: MetricsConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}
			loadMetricsEnvVars(cmd, &config.Metrics)

			return runServe(cmd.Context(), config)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&httpAddr, "http-addr", server.DefaultAddr, "Application server address")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "Hosted backend base URL. Can also use SUPABASE_URL env var.")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Hosted backend anon API key. Can also use SUPABASE_ANON_KEY env var.")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading configuration")
	cmd.Flags().DurationVar(&sessionTimeout, "session-timeout", server.DefaultSessionTimeout, "Idle timeout for signed-in browser sessions")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadMetricsEnvVars applies METRICS_* environment variables when the
// corresponding flags were not explicitly set.
func loadMetricsEnvVars(cmd *cobra.Command, config *MetricsConfig) {
	if !cmd.Flags().Changed("metrics-enabled") {
		if v := os.Getenv("METRICS_ENABLED"); v == "false" {
			config.Enabled = false
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			config.Addr = addr
		}
	}
}

func runServe(ctx context.Context, config ServeConfig) error {
	logger := logging.Setup(os.Stderr, config.Debug)

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if config.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.Metrics.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	taskStore, err := store.NewClient(store.Config{
		BaseURL: config.BackendURL,
		APIKey:  config.APIKey,
		Metrics: provider.Metrics(),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	auth, err := session.NewClient(session.Config{
		BaseURL: config.BackendURL,
		APIKey:  config.APIKey,
		Metrics: provider.Metrics(),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth client: %w", err)
	}

	srv := server.New(server.Config{
		Addr:           config.HTTPAddr,
		SessionTimeout: config.SessionTimeout,
		Logger:         logger,
		Metrics:        provider.Metrics(),
		NewController: func() *app.Controller {
			return app.NewController(taskStore, auth, logger)
		},
	})

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := srv.Start(); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received, stopping server")
		stopCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("error shutting down server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
