package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:    srv.URL,
		APIKey:     "anon-key",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestSignIn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-1",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			RefreshToken: "refresh-1",
			User:         User{ID: "u1", Email: "user@example.com"},
		})
	})

	sess, err := client.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, "access-1", sess.AccessToken())
	assert.Equal(t, "refresh-1", sess.Token.RefreshToken)
	assert.Greater(t, sess.ExpiresIn(time.Now()), 59*time.Minute)
}

func TestSignInBadCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	})

	_, err := client.SignIn(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "sign_in", authErr.Op)
}

func TestSignInMissingCredentials(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.SignIn(context.Background(), "", "")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestRefresh(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refresh_token"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-2",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			RefreshToken: "refresh-2",
			User:         User{ID: "u1", Email: "user@example.com"},
		})
	})

	sess, err := client.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", sess.AccessToken())
	assert.Equal(t, "refresh-2", sess.Token.RefreshToken)
}

func TestUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "user@example.com"})
	})

	user, err := client.User(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestSignOut(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.SignOut(context.Background(), "access-1"))
}

func TestTokenResponseWithoutAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	})

	_, err := client.SignIn(context.Background(), "user@example.com", "secret")
	assert.Error(t, err)
}

func TestSessionAccessTokenNilSafe(t *testing.T) {
	var sess *Session
	assert.Empty(t, sess.AccessToken())
	assert.Equal(t, time.Duration(0), sess.ExpiresIn(time.Now()))
}
