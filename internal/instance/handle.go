package instance

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/vslaunch/internal/editor"
	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

// Config controls the initialization polling of a Handle.
type Config struct {
	// MaxRetries is the number of reads after the first one.
	MaxRetries int

	// RetryInterval is the sleep after each failed read.
	RetryInterval time.Duration
}

// DefaultConfig returns the polling budget used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxRetries:    40,
		RetryInterval: 100 * time.Millisecond,
	}
}

// Handle is one editor instance.
type Handle struct {
	identity   string
	automation editor.Automation
	config     Config
	logger     *logging.Logger

	mu       sync.Mutex
	state    State
	solution *editor.SolutionInfo
	done     chan struct{} // closed when the current cycle finishes
}

// NewHandle wraps automation under the given registry identity. A nil
// automation yields a handle that never initializes.
func NewHandle(identity string, automation editor.Automation, cfg Config, logger *logging.Logger) *Handle {
	return &Handle{
		identity:   identity,
		automation: automation,
		config:     cfg,
		logger:     logging.OrNop(logger).WithInstance(identity),
	}
}

// Detached returns a handle with no automation handle. It stands in for an
// instance that could not be found or spawned.
func Detached() *Handle {
	return NewHandle("", nil, Config{}, nil)
}

// Identity returns the registry identity of the instance.
func (h *Handle) Identity() string {
	return h.identity
}

// IsDetached reports whether the handle has no automation handle.
func (h *Handle) IsDetached() bool {
	return h.automation == nil
}

// State returns the current initialization state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// IsInitialized reports whether the last initialization cycle has finished.
func (h *Handle) IsInitialized() bool {
	return h.State() == StateInitialized
}

// Solution returns the solution state read by the last initialization cycle.
// ok is false until a cycle has read it successfully.
func (h *Handle) Solution() (info editor.SolutionInfo, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateInitialized || h.solution == nil {
		return editor.SolutionInfo{}, false
	}
	return *h.solution, true
}

// HasOpenSolution reports whether the instance is initialized with a loaded solution.
func (h *Handle) HasOpenSolution() bool {
	info, ok := h.Solution()
	return ok && info.IsOpen
}

// Initialize runs the initialization cycle if none has run yet. Callers
// arriving while a cycle is in progress wait for it to finish.
func (h *Handle) Initialize(ctx context.Context) {
	if h.automation == nil {
		return
	}

	h.mu.Lock()
	switch h.state {
	case StateInitialized:
		h.mu.Unlock()
		return
	case StateInitializing:
		done := h.done
		h.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return
	}
	h.state = StateInitializing
	done := make(chan struct{})
	h.done = done
	h.mu.Unlock()

	info, ok := h.pollSolution(ctx)

	h.mu.Lock()
	if ok {
		h.solution = &info
	} else {
		h.solution = nil
	}
	h.state = StateInitialized
	h.mu.Unlock()
	close(done)
}

// pollSolution reads the solution until a read succeeds, the retry budget is
// spent or ctx is done.
func (h *Handle) pollSolution(ctx context.Context) (editor.SolutionInfo, bool) {
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		info, err := h.automation.Solution()
		if err == nil {
			h.logger.Debug("solution state read", "attempt", attempt, "path", info.FullPath, "open", info.IsOpen)
			return info, true
		}
		h.logger.Debug("solution not readable yet", "attempt", attempt, "error", err.Error())

		if attempt == h.config.MaxRetries {
			break
		}
		if !sleep(ctx, h.config.RetryInterval) {
			h.logger.Debug("initialization cancelled", "attempt", attempt)
			return editor.SolutionInfo{}, false
		}
	}

	h.logger.Info("gave up reading solution state", "attempts", h.config.MaxRetries+1)
	return editor.SolutionInfo{}, false
}

// reset discards cached solution state so the next Initialize polls again.
func (h *Handle) reset(ctx context.Context) {
	h.mu.Lock()
	if h.state == StateInitializing {
		done := h.done
		h.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		h.mu.Lock()
	}
	h.state = StateUninitialized
	h.solution = nil
	h.mu.Unlock()
}

// OpenSolution asks the instance to open the solution at path, re-reads the
// solution state and reports whether path is now the loaded solution.
func (h *Handle) OpenSolution(ctx context.Context, path string) bool {
	if h.skip("open solution") {
		return false
	}

	h.logger.Info("opening solution", "path", path)
	if err := h.automation.OpenSolution(path); err != nil {
		h.logger.Warn("open solution failed", "path", path, "error", err.Error())
		return false
	}

	h.reset(ctx)
	h.Initialize(ctx)

	info, ok := h.Solution()
	return ok && info.FullPath == path
}

// OpenFile opens path and, when line > 0, moves the caret there. A column
// >= 0 selects an exact position; otherwise the caret goes to the start of
// the line. It returns true only when a window was obtained and a line was
// requested.
func (h *Handle) OpenFile(path string, line, column int) bool {
	if h.skip("open file") {
		return false
	}

	win, err := h.automation.OpenFile(path)
	if err != nil {
		h.logger.Warn("open file failed", "path", path, "error", err.Error())
		return false
	}
	if win == nil {
		return false
	}
	defer win.Release()
	if line <= 0 {
		return false
	}

	sel, err := win.Selection()
	if err != nil || sel == nil {
		h.logger.Warn("no text selection for opened file", "path", path)
		return false
	}
	defer sel.Release()

	if column >= 0 {
		if err := sel.MoveToLineAndOffset(line, column); err != nil {
			h.logger.Warn("move to line and offset failed", "line", line, "column", column, "error", err.Error())
		}
		if err := sel.Collapse(); err != nil {
			h.logger.Debug("collapse selection failed", "error", err.Error())
		}
	} else if err := sel.GotoLine(line); err != nil {
		h.logger.Warn("goto line failed", "line", line, "error", err.Error())
	}
	return true
}

// Activate brings the instance's main window to the foreground. Failures are
// logged and otherwise ignored.
func (h *Handle) Activate() {
	if h.skip("activate") {
		return
	}
	if err := h.automation.ActivateMainWindow(); err != nil {
		h.logger.Debug("activate main window failed", "error", err.Error())
	}
}

// skip reports whether op cannot run because the handle is detached.
func (h *Handle) skip(op string) bool {
	if h.automation != nil {
		return false
	}
	h.logger.Debug("skipping "+op, "error", errors.ErrNoAutomation.Error())
	return true
}

// sleep waits d or until ctx is done, reporting whether the full interval elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
