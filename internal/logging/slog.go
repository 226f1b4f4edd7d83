package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyStoreOp   = "store_op"
	KeyAccount   = "account"
	KeyDay       = "day"
	KeyTaskID    = "task_id"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyState     = "state"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Setup builds a logger writing to w and installs it as the slog default.
// With debug enabled the level drops to Debug and output switches to the
// text handler for readability; otherwise JSON at Info.
func Setup(w io.Writer, debug bool) *slog.Logger {
	var handler slog.Handler
	if debug {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithAccount returns a logger carrying the anonymized account identity.
func WithAccount(logger *slog.Logger, email string) *slog.Logger {
	return logger.With(AccountHash(email))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// StoreOp returns a slog attribute for a table-store operation name.
func StoreOp(op string) slog.Attr {
	return slog.String(KeyStoreOp, op)
}

// Day returns a slog attribute for a calendar day token.
func Day(day string) slog.Attr {
	return slog.String(KeyDay, day)
}

// TaskID returns a slog attribute for a task identifier.
func TaskID(id string) slog.Attr {
	return slog.String(KeyTaskID, id)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// HTTPStatus returns a slog attribute for an HTTP response code.
func HTTPStatus(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// State returns a slog attribute for a controller state name.
func State(state string) slog.Attr {
	return slog.String(KeyState, state)
}

// Err returns a slog attribute for an error. If err is nil, returns an
// empty Group attribute that slog omits from output, so callers can pass
// Err(maybeNilErr) unconditionally.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeAccount returns a hashed representation of an account email for
// logging. Log entries stay correlatable without exposing PII.
func AnonymizeAccount(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// AccountHash returns a slog attribute with the anonymized account email.
func AccountHash(email string) slog.Attr {
	return slog.String(KeyAccount, AnonymizeAccount(email))
}
