package session

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// User is the authenticated account identity as reported by the auth
// provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a live authenticated-account context: the account identity
// plus the token material the hosted backend expects on every request.
type Session struct {
	User  User
	Token *oauth2.Token
}

// AccessToken returns the bearer token for store and auth requests.
func (s *Session) AccessToken() string {
	if s == nil || s.Token == nil {
		return ""
	}
	return s.Token.AccessToken
}

// ExpiresIn returns how long the access token is still valid.
func (s *Session) ExpiresIn(now time.Time) time.Duration {
	if s == nil || s.Token == nil || s.Token.Expiry.IsZero() {
		return 0
	}
	return s.Token.Expiry.Sub(now)
}

// Change is one session-change event delivered by a Watcher. A nil
// Session means the account is signed out.
type Change struct {
	Session *Session
}

// AuthError wraps a failed auth provider operation with the operation name.
type AuthError struct {
	// Op is the operation that failed: sign_in, refresh, get_user, sign_out
	Op string

	// Err is the underlying error
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// tokenResponse is the auth provider's token endpoint payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
