package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/hywnj/cursor-todo/internal/instrumentation"
	"github.com/hywnj/cursor-todo/internal/logging"
)

const (
	authPath       = "/auth/v1"
	defaultTimeout = 15 * time.Second
)

// Config holds the settings for an auth provider client.
type Config struct {
	// BaseURL is the root of the hosted backend, e.g. https://xyz.supabase.co
	BaseURL string

	// APIKey is the project's anon key, sent with every request
	APIKey string

	// HTTPClient overrides the default HTTP client (mainly for tests)
	HTTPClient *http.Client

	// Metrics records auth attempts; nil disables recording
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Client wraps the auth provider's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewClient creates a new auth provider client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("auth base URL cannot be empty")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("auth API key cannot be empty")
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

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	const op = "sign_in"

	if email == "" || password == "" {
		return nil, &AuthError{Op: op, Err: fmt.Errorf("email and password are required")}
	}

	body := map[string]string{"email": email, "password": password}
	sess, err := c.tokenRequest(ctx, "password", body)

	c.recordAuth(ctx, op, err)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}

	c.logger.Info("signed in",
		logging.Operation(op),
		logging.AccountHash(sess.User.Email),
	)
	return sess, nil
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	const op = "refresh"

	if refreshToken == "" {
		return nil, &AuthError{Op: op, Err: fmt.Errorf("refresh token is required")}
	}

	body := map[string]string{"refresh_token": refreshToken}
	sess, err := c.tokenRequest(ctx, "refresh_token", body)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordTokenRefresh(ctx, status)

	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	return sess, nil
}

// User fetches the account identity behind an access token.
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	const op = "get_user"

	req, err := c.newRequest(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}

	var user User
	err = c.doJSON(req, &user)
	c.recordAuth(ctx, op, err)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	return &user, nil
}

// SignOut revokes the session behind an access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	const op = "sign_out"

	req, err := c.newRequest(ctx, http.MethodPost, "/logout", accessToken, nil)
	if err != nil {
		return &AuthError{Op: op, Err: err}
	}

	err = c.doJSON(req, nil)
	c.recordAuth(ctx, op, err)
	if err != nil {
		return &AuthError{Op: op, Err: err}
	}

	c.logger.Info("signed out", logging.Operation(op))
	return nil
}

// tokenRequest calls the token endpoint with the given grant type and
// builds a Session from the response.
func (c *Client) tokenRequest(ctx context.Context, grantType string, body map[string]string) (*Session, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	endpoint := c.baseURL + authPath + "/token?grant_type=" + grantType
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var tr tokenResponse
	if err := c.doJSON(req, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response carried no access token")
	}

	token := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return &Session{User: tr.User, Token: token}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, accessToken string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+authPath+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("auth provider returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) recordAuth(ctx context.Context, op string, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordAuth(ctx, op, status)
}
