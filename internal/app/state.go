package app

// State is the controller's lifecycle state.
type State int

const (
	// StateUnauthenticated means no active session; entered at startup
	// and again on sign-out or session loss.
	StateUnauthenticated State = iota

	// StateLoading means a session exists and the task list fetch is in
	// flight.
	StateLoading

	// StateReady means the task list is usable, possibly empty after a
	// failed fetch.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
