// Package resolver picks the editor instance a launch should use.
//
// Given a solution path, a Resolver prefers, in order: an instance that
// already has that solution loaded, an instance with no solution loaded,
// and finally a newly spawned instance. The set of known instances is owned
// by the Resolver and lives only as long as it does.
package resolver

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/instance"
	"github.com/Iron-Ham/vslaunch/internal/logging"
	"github.com/Iron-Ham/vslaunch/internal/registry"
)

// Lister lists the editor entries currently registered.
type Lister interface {
	List(ctx context.Context) []registry.Entry
}

// Spawner starts a new editor instance.
type Spawner interface {
	Spawn(ctx context.Context) (*instance.Handle, error)
}

// Config controls handle creation and initialization.
type Config struct {
	// Handle is the polling budget for handles created from the registry.
	Handle instance.Config

	// Concurrency bounds how many handles initialize at once. Values below 2
	// initialize sequentially on the calling goroutine.
	Concurrency int
}

// Resolver resolves solution paths to editor instances.
type Resolver struct {
	lister  Lister
	spawner Spawner
	config  Config
	base    *logging.Logger
	logger  *logging.Logger

	mu        sync.Mutex
	known     []*instance.Handle
	refreshed bool
}

// New creates a Resolver.
func New(lister Lister, spawner Spawner, cfg Config, logger *logging.Logger) *Resolver {
	return &Resolver{
		lister:  lister,
		spawner: spawner,
		config:  cfg,
		base:    logging.OrNop(logger),
		logger:  logging.OrNop(logger).WithPhase("resolve"),
	}
}

// Refresh replaces the known instances with a fresh registry listing.
// Handles for identities that were already known are kept, along with
// their initialization state.
func (r *Resolver) Refresh(ctx context.Context) {
	entries := r.lister.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := make(map[string]*instance.Handle, len(r.known))
	for _, h := range r.known {
		previous[h.Identity()] = h
	}

	known := make([]*instance.Handle, 0, len(entries))
	for _, e := range entries {
		if h, ok := previous[e.Name]; ok {
			known = append(known, h)
			continue
		}
		known = append(known, instance.NewHandle(e.Name, e.Automation, r.config.Handle, r.base))
	}
	r.known = known
	r.refreshed = true

	r.logger.Debug("instances refreshed", "count", len(known))
}

// Instances returns the known instances, most recently spawned first.
func (r *Resolver) Instances() []*instance.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*instance.Handle(nil), r.known...)
}

// InitializeAll initializes every known instance.
func (r *Resolver) InitializeAll(ctx context.Context) {
	handles := r.Instances()

	if r.config.Concurrency < 2 || len(handles) < 2 {
		for _, h := range handles {
			h.Initialize(ctx)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(r.config.Concurrency)
	for _, h := range handles {
		p.Go(func() {
			h.Initialize(ctx)
		})
	}
	p.Wait()
}

// Resolve returns the instance to use for the solution at path, opening the
// solution in it when needed. An empty path requests any usable instance and
// opens nothing.
//
// If no instance exists and a new one cannot be reached, Resolve returns a
// detached handle on which every operation is a no-op. It only returns an
// error when the editor process could not be started at all.
func (r *Resolver) Resolve(ctx context.Context, path string) (*instance.Handle, error) {
	r.mu.Lock()
	refreshed := r.refreshed
	r.mu.Unlock()
	if !refreshed {
		r.Refresh(ctx)
	}
	r.InitializeAll(ctx)

	h := r.match(path)
	if h != nil {
		r.logger.Info("reusing instance with solution loaded", "instance", h.Identity(), "solution", path)
		return h, nil
	}

	h = r.free()
	if h != nil {
		r.logger.Info("reusing instance without a solution", "instance", h.Identity())
	} else {
		spawned, err := r.spawn(ctx)
		if err != nil {
			return nil, err
		}
		if spawned.IsDetached() {
			return spawned, nil
		}
		h = spawned
	}

	if path != "" && !hosts(h, path) {
		if !h.OpenSolution(ctx, path) {
			r.logger.Warn("instance did not report the requested solution after opening it",
				"instance", h.Identity(), "solution", path)
		}
	}
	return h, nil
}

// match returns the first instance whose loaded solution is exactly path.
func (r *Resolver) match(path string) *instance.Handle {
	if path == "" {
		return nil
	}
	for _, h := range r.Instances() {
		if hosts(h, path) {
			return h
		}
	}
	return nil
}

// hosts reports whether h has exactly path loaded.
func hosts(h *instance.Handle, path string) bool {
	info, ok := h.Solution()
	return ok && info.IsOpen && info.FullPath == path
}

// free returns the first initialized instance with no solution loaded.
func (r *Resolver) free() *instance.Handle {
	for _, h := range r.Instances() {
		if h.IsInitialized() && !h.HasOpenSolution() {
			return h
		}
	}
	return nil
}

// spawn starts a new instance, initializes it and puts it first in the
// known instances. A spawn that started but never became reachable yields
// a detached handle.
func (r *Resolver) spawn(ctx context.Context) (*instance.Handle, error) {
	r.logger.Info("no reusable instance, spawning a new one")

	h, err := r.spawner.Spawn(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrSpawnFailed) {
			r.logger.Warn("spawned instance is not reachable", "error", err.Error())
			return instance.Detached(), nil
		}
		return nil, err
	}

	h.Initialize(ctx)

	r.mu.Lock()
	r.known = append([]*instance.Handle{h}, r.known...)
	r.mu.Unlock()
	return h, nil
}
