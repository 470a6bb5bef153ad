// Package process starts editor processes and observes them until their
// main window appears.
//
// # Main Types
//
//   - [Starter]: launches an executable and returns a [Process]
//   - [Process]: a running editor process (PID, exit state, main window title)
//   - [ExecStarter]: the os/exec backed Starter used in production
//
// # Window Titles
//
// MainWindowTitle reports the caption of the process's first visible,
// unowned top-level window. Only Windows has such a notion; on other
// platforms the title is always empty, so a caller waiting for a window
// simply runs out of retries.
//
// # Thread Safety
//
// Processes returned by [ExecStarter] are safe for concurrent use. A
// background goroutine waits on the child and records its exit.
package process
