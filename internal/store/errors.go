package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update or delete targets an id the
// store has no row for.
var ErrNotFound = errors.New("task not found")

// StoreError wraps a failed store operation with the operation name.
type StoreError struct {
	// Op is the operation that failed: list, insert, update, delete
	Op string

	// Err is the underlying error
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
