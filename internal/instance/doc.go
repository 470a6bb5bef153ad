// Package instance wraps running editor instances and the spawning of new ones.
//
// # Main Types
//
//   - [Handle]: one editor instance reached through its automation handle.
//     Owns the initialization state machine that polls until the instance's
//     solution state becomes readable.
//   - [Spawner]: starts a new editor process, waits for its main window and
//     looks up its automation handle in the registry.
//   - [State]: Uninitialized, Initializing or Initialized.
//
// # Initialization
//
// Initialize reads the solution at most MaxRetries+1 times, sleeping
// RetryInterval after each failed read. Failures are swallowed; when the
// budget runs out the handle is still Initialized, just without solution
// state. Initialization is single-flight: concurrent callers wait for the
// cycle in progress and later calls are no-ops. OpenSolution is the only
// operation that starts a new cycle.
//
// A handle without an automation handle (see [Detached]) never initializes
// and every operation on it is a no-op.
//
// # Thread Safety
//
// [Handle] is safe for concurrent use. The automation backend itself may not
// be; see the editor/dte package for the COM apartment constraint.
package instance
