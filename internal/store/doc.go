// Package store provides a client for the hosted table store that holds
// the todos table.
//
// The store exposes row-level CRUD over REST (PostgREST style). This
// package wraps the four shapes the application consumes:
//   - select all rows ordered by creation time, newest first
//   - insert one row returning the created record
//   - update one row by id returning the updated record
//   - delete one row by id
//
// Every call is a single best-effort request: no retries, no caching, and
// cancellation comes from the caller's context. Row-level security on the
// store side scopes each request to the account whose access token it
// carries, so the client never filters by owner itself.
//
// The store assigns ids and maintains updated_at on mutation; the client
// only ever supplies created_at when a task is added onto a specific
// viewed day.
//
// # Example Usage
//
//	client, err := store.NewClient(store.Config{
//	    BaseURL: os.Getenv("SUPABASE_URL"),
//	    APIKey:  os.Getenv("SUPABASE_ANON_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tasks, err := client.List(ctx, session.AccessToken())
//	if err != nil {
//	    log.Fatal(err)
//	}
package store
