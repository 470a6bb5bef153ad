package instance

import (
	"context"
	"strings"
	"time"

	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/instance/process"
	"github.com/Iron-Ham/vslaunch/internal/logging"
	"github.com/Iron-Ham/vslaunch/internal/registry"
)

// SpawnConfig controls how a new editor process is started and awaited.
type SpawnConfig struct {
	Executable string
	Args       []string

	// WindowTitleSuffix is how the main window title must end once the
	// editor is up, e.g. "Visual Studio".
	WindowTitleSuffix string

	// MaxRetries is the number of title checks after the first one.
	MaxRetries    int
	RetryInterval time.Duration

	// SettleDelay is waited after the window appears and before the
	// registry lookup; registration lags behind the window.
	SettleDelay time.Duration
}

// DefaultSpawnConfig returns the spawn settings used when nothing is configured.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Executable:        "devenv.exe",
		WindowTitleSuffix: "Visual Studio",
		MaxRetries:        60,
		RetryInterval:     100 * time.Millisecond,
		SettleDelay:       time.Second,
	}
}

// Lookup finds the registry entry of a process.
type Lookup interface {
	LookupByProcessID(ctx context.Context, pid int) (registry.Entry, bool)
}

// Spawner starts new editor instances.
type Spawner struct {
	starter process.Starter
	lookup  Lookup
	config  SpawnConfig
	handle  Config
	base    *logging.Logger
	logger  *logging.Logger
}

// NewSpawner creates a Spawner. Spawned handles use handleCfg for initialization.
func NewSpawner(starter process.Starter, lookup Lookup, cfg SpawnConfig, handleCfg Config, logger *logging.Logger) *Spawner {
	return &Spawner{
		starter: starter,
		lookup:  lookup,
		config:  cfg,
		handle:  handleCfg,
		base:    logging.OrNop(logger),
		logger:  logging.OrNop(logger).WithPhase("spawn"),
	}
}

// Spawn starts a new editor process and returns its uninitialized handle.
//
// An error matching errors.ErrSpawnFailed means the process started but never
// became reachable (it exited early, or no registry entry appeared); the
// caller may degrade. Any other error means the process could not be started.
func (s *Spawner) Spawn(ctx context.Context) (*Handle, error) {
	s.logger.Info("starting editor", "executable", s.config.Executable, "args", s.config.Args)

	proc, err := s.starter.Start(ctx, s.config.Executable, s.config.Args...)
	if err != nil {
		return nil, errors.Wrapf(err, "start %s", s.config.Executable)
	}
	pid := proc.PID()
	logger := s.logger.With("pid", pid)

	if !s.awaitWindow(ctx, proc, logger) {
		return nil, errors.NewInstanceError("editor exited before its window appeared",
			errors.Join(errors.ErrSpawnFailed, errors.ErrProcessExited)).WithPID(pid)
	}

	if !sleep(ctx, s.config.SettleDelay) {
		return nil, errors.NewInstanceError("spawn cancelled",
			errors.Join(errors.ErrSpawnFailed, ctx.Err())).WithPID(pid)
	}

	entry, ok := s.lookup.LookupByProcessID(ctx, pid)
	if !ok {
		logger.Warn("spawned editor not found in registry")
		return nil, errors.NewInstanceError("spawned editor not found in registry",
			errors.Join(errors.ErrSpawnFailed, errors.ErrInstanceNotFound)).WithPID(pid)
	}

	logger.Info("spawned editor registered", "identity", entry.Name)
	return NewHandle(entry.Name, entry.Automation, s.handle, s.base), nil
}

// awaitWindow polls the main window title until it carries the expected
// suffix or the retry budget is spent. It returns false only when the
// process exited; running out of retries still lets the registry lookup decide.
func (s *Spawner) awaitWindow(ctx context.Context, proc process.Process, logger *logging.Logger) bool {
	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		if proc.Exited() {
			logger.Warn("editor exited during startup", "attempt", attempt)
			return false
		}

		title := proc.MainWindowTitle()
		if title != "" && strings.HasSuffix(title, s.config.WindowTitleSuffix) {
			logger.Debug("main window appeared", "attempt", attempt, "title", title)
			return true
		}

		if attempt == s.config.MaxRetries {
			break
		}
		if !sleep(ctx, s.config.RetryInterval) {
			logger.Debug("window wait cancelled", "attempt", attempt)
			return !proc.Exited()
		}
	}

	logger.Info("main window did not appear, checking registry anyway", "attempts", s.config.MaxRetries+1)
	return !proc.Exited()
}
