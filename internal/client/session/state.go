package session

// State is the session lifecycle state. A session's terminal state is
// StateUnauthenticated; the manager is re-entrant, so a new login starts
// a fresh cycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateValidating      State = "validating"
	StateAuthenticated   State = "authenticated"
	StateRefreshing      State = "refreshing"
	StateLoggingOut      State = "logging_out"
)
