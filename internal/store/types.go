package store

import "time"

// NewTask carries the fields for an insert. The store fills in id,
// completed (false) and the timestamps it owns.
type NewTask struct {
	// Title is the display text, already trimmed and non-empty
	Title string `json:"title"`

	// Owner is the account id the row belongs to
	Owner string `json:"user_id"`

	// CreatedAt pins the task to a specific calendar day (local midnight
	// of the viewed day). Nil lets the store stamp the moment of creation.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// completedPatch is the body of an update-by-id call. Only the completed
// flag is ever mutated; updated_at is maintained by the store.
type completedPatch struct {
	Completed bool `json:"completed"`
}
