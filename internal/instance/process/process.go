package process

import (
	"context"
	"errors"
	"os/exec"
	"sync"
)

// ErrEmptyExecutable is returned by Start when no executable is configured.
var ErrEmptyExecutable = errors.New("executable is required")

// Process is a started editor process.
type Process interface {
	// PID returns the operating system process id.
	PID() int

	// Exited reports whether the process has terminated.
	Exited() bool

	// MainWindowTitle returns the title of the process's main window, or ""
	// while no such window exists.
	MainWindowTitle() string
}

// Starter launches editor processes.
type Starter interface {
	Start(ctx context.Context, executable string, args ...string) (Process, error)
}

// ExecStarter starts processes with os/exec. The child is not tied to ctx:
// the editor must outlive this program.
type ExecStarter struct{}

// Start launches executable with args and returns once the child is running.
func (ExecStarter) Start(ctx context.Context, executable string, args ...string) (Process, error) {
	if executable == "" {
		return nil, ErrEmptyExecutable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(executable, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go p.wait()
	return p, nil
}

type execProcess struct {
	cmd *exec.Cmd

	mu      sync.Mutex
	waitErr error
	done    chan struct{}
}

// wait reaps the child and marks it exited.
func (p *execProcess) wait() {
	err := p.cmd.Wait()
	p.mu.Lock()
	p.waitErr = err
	p.mu.Unlock()
	close(p.done)
}

func (p *execProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// ExitErr returns the error from waiting on the child, or nil while it runs.
func (p *execProcess) ExitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitErr
}

func (p *execProcess) MainWindowTitle() string {
	if p.Exited() {
		return ""
	}
	return mainWindowTitle(p.PID())
}
