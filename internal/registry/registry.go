// Package registry discovers running editor instances.
//
// A Registry enumerates every automation-capable object the OS knows about
// (on Windows, the Running Object Table). A Snapshot narrows that listing to
// one editor family by identity prefix and can find the entry belonging to a
// specific process id.
package registry

import (
	"context"
	"strconv"
	"strings"

	"github.com/Iron-Ham/vslaunch/internal/editor"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

// Entry is one live object visible through the registry.
type Entry struct {
	// Name is the opaque identity string, e.g. "!VisualStudio.DTE.17.0:4120".
	// It is stable only for the lifetime of the owning process.
	Name string
	// Automation is the instance's automation handle. It is nil when the
	// registered object does not expose the editor automation surface.
	Automation editor.Automation
}

// Registry enumerates all registered objects in registry order.
type Registry interface {
	Enumerate(ctx context.Context) ([]Entry, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(ctx context.Context) ([]Entry, error)

// Enumerate calls f.
func (f RegistryFunc) Enumerate(ctx context.Context) ([]Entry, error) {
	return f(ctx)
}

// Snapshot is a read-only view of one editor family in a Registry.
type Snapshot struct {
	registry Registry
	prefix   string
	logger   *logging.Logger
}

// NewSnapshot creates a Snapshot over reg that only reports entries whose
// identity starts with prefix.
func NewSnapshot(reg Registry, prefix string, logger *logging.Logger) *Snapshot {
	return &Snapshot{
		registry: reg,
		prefix:   prefix,
		logger:   logging.OrNop(logger).WithPhase("snapshot"),
	}
}

// List returns the editor entries currently registered, in registry order.
// Entries without an automation handle are skipped. If the registry cannot
// be queried, List reports no instances rather than failing.
func (s *Snapshot) List(ctx context.Context) []Entry {
	all, err := s.registry.Enumerate(ctx)
	if err != nil {
		s.logger.Warn("registry unavailable, treating as no running instances", "error", err.Error())
		return nil
	}

	var entries []Entry
	seen := make(map[string]bool)
	for _, e := range all {
		if !strings.HasPrefix(e.Name, s.prefix) || e.Automation == nil || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		entries = append(entries, e)
	}

	s.logger.Debug("registry snapshot taken", "total", len(all), "matching", len(entries))
	return entries
}

// LookupByProcessID returns the first editor entry whose identity ends with
// the decimal process id.
func (s *Snapshot) LookupByProcessID(ctx context.Context, pid int) (Entry, bool) {
	suffix := strconv.Itoa(pid)
	for _, e := range s.List(ctx) {
		if matchesPID(e.Name, suffix) {
			return e, true
		}
	}
	return Entry{}, false
}

// matchesPID reports whether name ends with the pid suffix and the suffix is
// not just the tail of a longer number (pid 12 must not match "...:412").
func matchesPID(name, suffix string) bool {
	if !strings.HasSuffix(name, suffix) {
		return false
	}
	rest := name[:len(name)-len(suffix)]
	if rest == "" {
		return true
	}
	last := rest[len(rest)-1]
	return last < '0' || last > '9'
}
