// Package app holds the view controller that sits between the web layer
// and the hosted backend.
//
// A Controller owns one account's session and in-memory task list. It
// moves through three states:
//
//	Unauthenticated -> Loading -> Ready
//
// Unauthenticated is the state at startup and whenever the session goes
// away; Loading covers the full-list fetch right after sign-in; Ready is
// everything after, including a failed fetch (which logs and renders an
// empty list rather than blocking the view). Sign-out cycles back to
// Unauthenticated.
//
// Mutations are confirmed, never optimistic: the in-memory list changes
// only after the store acknowledges the mutation, so local state cannot
// desynchronize from the store. A failed mutation surfaces an AlertError
// whose message names the operation the way the UI shows it, and leaves
// the list untouched.
//
// The controller owns its session watcher: token refreshes update the
// held session in place, a terminal watcher event signs the account out,
// and Close tears the subscription down.
package app
