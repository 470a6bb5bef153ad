package testutil

import (
	"context"
	"sync"

	"github.com/Iron-Ham/vslaunch/internal/instance/process"
)

// Process is a scriptable process.Process.
type Process struct {
	mu sync.Mutex

	Pid int

	// Title is reported once TitleAfter title checks have come back empty.
	Title      string
	TitleAfter int

	// ExitAfter, when positive, marks the process exited on that title check.
	ExitAfter int

	exited bool
	checks int
}

// PID implements process.Process.
func (p *Process) PID() int {
	return p.Pid
}

// Exited implements process.Process.
func (p *Process) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited
}

// Exit marks the process as terminated.
func (p *Process) Exit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exited = true
}

// MainWindowTitle implements process.Process.
func (p *Process) MainWindowTitle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks++
	if p.ExitAfter > 0 && p.checks >= p.ExitAfter {
		p.exited = true
	}
	if p.checks <= p.TitleAfter {
		return ""
	}
	return p.Title
}

// Checks returns the number of title checks so far.
func (p *Process) Checks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checks
}

// Starter is a scriptable process.Starter handing out Proc on every start.
type Starter struct {
	mu sync.Mutex

	Proc *Process
	Err  error

	starts []string
}

// Start implements process.Starter.
func (s *Starter) Start(_ context.Context, executable string, _ ...string) (process.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, executable)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Proc, nil
}

// Starts returns how many times Start was called.
func (s *Starter) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.starts)
}
