// Package solution finds the solution file that owns a source file.
package solution

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

// ErrNotFound is returned when no ancestor directory holds a solution file.
var ErrNotFound = errors.New("no solution found")

// DefaultPatterns matches Visual Studio solution files.
var DefaultPatterns = []string{"*.sln"}

// Locator walks upward from a file looking for a solution file.
type Locator struct {
	patterns []glob.Glob
	logger   *logging.Logger
}

// NewLocator compiles the file name patterns a solution file must match.
func NewLocator(patterns []string, logger *logging.Logger) (*Locator, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid solution pattern %q", p)
		}
		compiled = append(compiled, g)
	}

	return &Locator{
		patterns: compiled,
		logger:   logging.OrNop(logger).WithPhase("locate"),
	}, nil
}

// Locate returns the nearest solution file in the directory of file or any
// of its ancestors. Within one directory the lexicographically first match
// wins. file must be an existing regular file.
func (l *Locator) Locate(file string) (string, error) {
	if file == "" {
		return "", errors.Wrap(ErrNotFound, "no target file")
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", file)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrap(err, "target file")
	}
	if info.IsDir() {
		return "", errors.Wrapf(ErrNotFound, "%s is a directory", abs)
	}

	dir := filepath.Dir(abs)
	for {
		if found, ok := l.search(dir); ok {
			l.logger.Debug("solution found", "file", abs, "solution", found)
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	l.logger.Debug("no solution found", "file", abs)
	return "", ErrNotFound
}

// search returns the first matching file in dir. Unreadable directories are skipped.
func (l *Locator) search(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug("skipping unreadable directory", "dir", dir, "error", err.Error())
		return "", false
	}

	// ReadDir returns entries sorted by name.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if l.matches(e.Name()) {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

func (l *Locator) matches(name string) bool {
	for _, g := range l.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
