// Package session provides a client for the hosted auth provider and the
// session lifecycle built on top of it.
//
// The auth provider exposes a GoTrue-style HTTP API: password sign-in,
// refresh-token exchange, current-user lookup, and sign-out. This package
// consumes exactly those operations and represents the resulting session
// as an oauth2 token plus the account identity.
//
// Session identity is never ambient state. A Watcher is a cancellable
// subscription owned by whoever holds the session: it refreshes the access
// token before expiry and delivers a Change for every transition (signed
// in, refreshed, signed out, refresh failed). Closing the watcher tears
// the subscription down.
//
// # Example Usage
//
//	client, err := session.NewClient(session.Config{
//	    BaseURL: os.Getenv("SUPABASE_URL"),
//	    APIKey:  os.Getenv("SUPABASE_ANON_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess, err := client.SignIn(ctx, email, password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	watcher := session.NewWatcher(client, sess)
//	defer watcher.Close()
//	for change := range watcher.Changes() {
//	    // change.Session == nil means signed out
//	}
package session
