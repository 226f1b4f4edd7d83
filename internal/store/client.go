package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hywnj/cursor-todo/internal/instrumentation"
	"github.com/hywnj/cursor-todo/internal/logging"
	"github.com/hywnj/cursor-todo/internal/todo"
)

const (
	tablePath      = "/rest/v1/todos"
	defaultTimeout = 15 * time.Second
)

// Config holds the settings for a store client.
type Config struct {
	// BaseURL is the root of the hosted backend, e.g. https://xyz.supabase.co
	BaseURL string

	// APIKey is the project's anon key, sent with every request
	APIKey string

	// HTTPClient overrides the default HTTP client (mainly for tests)
	HTTPClient *http.Client

	// Metrics records operation counts and durations; nil disables recording
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Client wraps the hosted table store's REST interface for the todos table.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewClient creates a new store client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("store base URL cannot be empty")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("store API key cannot be empty")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		http:    httpClient,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// List fetches all task rows visible to the access token's account,
// ordered by creation time descending (the store-reported display order).
func (c *Client) List(ctx context.Context, accessToken string) ([]todo.Task, error) {
	const op = "list"

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var tasks []todo.Task
	err := c.do(ctx, op, http.MethodGet, query, accessToken, nil, &tasks)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// Insert creates one task row and returns the record the store created.
func (c *Client) Insert(ctx context.Context, accessToken string, task NewTask) (*todo.Task, error) {
	const op = "insert"

	if strings.TrimSpace(task.Title) == "" {
		return nil, &StoreError{Op: op, Err: fmt.Errorf("title cannot be empty")}
	}
	if task.Owner == "" {
		return nil, &StoreError{Op: op, Err: fmt.Errorf("owner cannot be empty")}
	}

	var created []todo.Task
	err := c.do(ctx, op, http.MethodPost, nil, accessToken, task, &created)
	if err != nil {
		return nil, err
	}
	if len(created) != 1 {
		return nil, &StoreError{Op: op, Err: fmt.Errorf("expected one created record, got %d", len(created))}
	}
	return &created[0], nil
}

// SetCompleted updates the completed flag of one task by id and returns
// the updated record. An id the store has no row for yields ErrNotFound.
func (c *Client) SetCompleted(ctx context.Context, accessToken, id string, completed bool) (*todo.Task, error) {
	const op = "update"

	if id == "" {
		return nil, &StoreError{Op: op, Err: fmt.Errorf("id cannot be empty")}
	}

	query := url.Values{}
	query.Set("id", "eq."+id)

	var updated []todo.Task
	err := c.do(ctx, op, http.MethodPatch, query, accessToken, completedPatch{Completed: completed}, &updated)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, &StoreError{Op: op, Err: ErrNotFound}
	}
	return &updated[0], nil
}

// Delete removes one task row by id. Deleting an id the store has no row
// for yields ErrNotFound.
func (c *Client) Delete(ctx context.Context, accessToken, id string) error {
	const op = "delete"

	if id == "" {
		return &StoreError{Op: op, Err: fmt.Errorf("id cannot be empty")}
	}

	query := url.Values{}
	query.Set("id", "eq."+id)

	var deleted []todo.Task
	if err := c.do(ctx, op, http.MethodDelete, query, accessToken, nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return &StoreError{Op: op, Err: ErrNotFound}
	}
	return nil
}

// do runs one request against the todos table and decodes the response
// into out. Mutations ask the store to return the affected rows so the
// caller can merge confirmed state.
func (c *Client) do(ctx context.Context, op, method string, query url.Values, accessToken string, body, out any) error {
	start := time.Now()

	err := c.doOnce(ctx, method, query, accessToken, body, out)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordStoreOperation(ctx, op, status, time.Since(start))

	if err != nil {
		c.logger.Debug("store operation failed",
			logging.StoreOp(op),
			logging.Err(err),
		)
		return &StoreError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, method string, query url.Values, accessToken string, body, out any) error {
	endpoint := c.baseURL + tablePath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		// Return the affected rows so local state only updates on
		// confirmed mutations
		req.Header.Set("Prefer", "return=representation")
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("store returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
