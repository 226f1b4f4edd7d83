// Package server is the HTTP front of the to-do service. It renders the
// day view and login page from embedded templates, routes form posts to
// the per-browser-session controller, and exposes health probes plus a
// dedicated metrics listener.
//
// Each signed-in browser gets its own controller, keyed by an opaque
// session cookie. Mutation failures never break the page: the alert
// message travels in a short-lived flash cookie and renders on the next
// request, mirroring a blocking alert.
package server
