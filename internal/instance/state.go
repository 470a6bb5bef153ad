package instance

// State is the initialization state of a Handle.
type State int

const (
	// StateUninitialized is the state of a new handle and of a handle whose
	// solution was just replaced.
	StateUninitialized State = iota

	// StateInitializing means a polling cycle is in progress.
	StateInitializing

	// StateInitialized means the last polling cycle finished, successfully or not.
	StateInitialized
)

// String returns a human-readable string for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}
