package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Iron-Ham/vslaunch/internal/editor"
)

// ErrNotReady is returned by Automation.Solution while reads are set to fail.
var ErrNotReady = errors.New("solution is still loading")

// Automation is a scriptable in-memory editor.Automation.
//
// It is safe for concurrent use. Every call is appended to the call log as
// "Method" or "Method:args".
type Automation struct {
	mu sync.Mutex

	// Info is what a successful Solution read returns.
	Info editor.SolutionInfo

	// FailReads is how many Solution reads fail before one succeeds.
	// A negative value makes every read fail.
	FailReads int

	// Gate, when non-nil, blocks every Solution read until it is closed.
	Gate chan struct{}

	// IgnoreOpen makes OpenSolution succeed without changing Info.
	IgnoreOpen bool

	OpenSolutionErr error
	OpenFileErr     error
	SelectionErr    error
	ActivateErr     error

	// NoWindow makes OpenFile return a nil window.
	NoWindow bool

	reads int
	held  int
	calls []string
}

// NewAutomation returns an Automation whose solution is path. An empty path
// means the solution object exists but nothing is loaded.
func NewAutomation(path string) *Automation {
	return &Automation{Info: editor.SolutionInfo{FullPath: path, IsOpen: path != ""}}
}

func (a *Automation) record(format string, args ...any) {
	a.calls = append(a.calls, fmt.Sprintf(format, args...))
}

// Solution implements editor.Automation.
func (a *Automation) Solution() (editor.SolutionInfo, error) {
	a.mu.Lock()
	gate := a.Gate
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("Solution")
	a.reads++
	if a.FailReads < 0 || a.reads <= a.FailReads {
		return editor.SolutionInfo{}, ErrNotReady
	}
	return a.Info, nil
}

// OpenSolution implements editor.Automation.
func (a *Automation) OpenSolution(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("OpenSolution:%s", path)
	if a.OpenSolutionErr != nil {
		return a.OpenSolutionErr
	}
	if !a.IgnoreOpen {
		a.Info = editor.SolutionInfo{FullPath: path, IsOpen: true}
	}
	return nil
}

// OpenFile implements editor.Automation.
func (a *Automation) OpenFile(path string) (editor.Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("OpenFile:%s", path)
	if a.OpenFileErr != nil {
		return nil, a.OpenFileErr
	}
	if a.NoWindow {
		return nil, nil
	}
	a.held++
	return window{a}, nil
}

// ActivateMainWindow implements editor.Automation.
func (a *Automation) ActivateMainWindow() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("Activate")
	return a.ActivateErr
}

// Calls returns a copy of the call log.
func (a *Automation) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

// Count returns how many logged calls equal call.
func (a *Automation) Count(call string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == call {
			n++
		}
	}
	return n
}

// Held returns how many windows and selections were handed out and not yet released.
func (a *Automation) Held() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.held
}

func (a *Automation) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held--
}

// Reads returns the number of Solution reads so far.
func (a *Automation) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}

type window struct{ a *Automation }

func (w window) Selection() (editor.Selection, error) {
	w.a.mu.Lock()
	defer w.a.mu.Unlock()
	if w.a.SelectionErr != nil {
		return nil, w.a.SelectionErr
	}
	w.a.held++
	return selection{w.a}, nil
}

func (w window) Release() {
	w.a.release()
}

type selection struct{ a *Automation }

func (s selection) MoveToLineAndOffset(line, offset int) error {
	s.a.mu.Lock()
	defer s.a.mu.Unlock()
	s.a.record("MoveToLineAndOffset:%d,%d", line, offset)
	return nil
}

func (s selection) Collapse() error {
	s.a.mu.Lock()
	defer s.a.mu.Unlock()
	s.a.record("Collapse")
	return nil
}

func (s selection) Release() {
	s.a.release()
}

func (s selection) GotoLine(line int) error {
	s.a.mu.Lock()
	defer s.a.mu.Unlock()
	s.a.record("GotoLine:%d", line)
	return nil
}
