package todo

import "time"

// Task is one to-do item as stored in the remote todos table.
// JSON field names match the table's column names so records can be
// decoded straight from the store's REST responses.
type Task struct {
	// ID is assigned by the store at creation and never changes
	ID string `json:"id"`

	// Owner is the account that created the task
	Owner string `json:"user_id"`

	// Title is the display text, trimmed before acceptance and never empty
	Title string `json:"title"`

	// Completed flips freely in both directions
	Completed bool `json:"completed"`

	// CreatedAt determines which calendar day the task belongs to
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last mutation time, used for the completed-today count
	UpdatedAt time.Time `json:"updated_at"`
}
