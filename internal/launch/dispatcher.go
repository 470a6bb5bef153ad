package launch

import (
	"context"
	"io"
	"path/filepath"

	"github.com/Iron-Ham/vslaunch/internal/instance"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

// Resolver is the instance bookkeeping a Dispatcher drives.
type Resolver interface {
	Refresh(ctx context.Context)
	InitializeAll(ctx context.Context)
	Instances() []*instance.Handle
	Resolve(ctx context.Context, path string) (*instance.Handle, error)
}

// Locator finds the solution that owns a file.
type Locator interface {
	Locate(file string) (string, error)
}

// Dispatcher runs parsed launch requests.
type Dispatcher struct {
	resolver Resolver
	locator  Locator
	render   *Renderer
	logger   *logging.Logger
}

// NewDispatcher creates a Dispatcher writing results to out and warnings to errOut.
func NewDispatcher(resolver Resolver, locator Locator, out, errOut io.Writer, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		locator:  locator,
		render:   NewRenderer(out, errOut),
		logger:   logging.OrNop(logger).WithPhase("dispatch"),
	}
}

// Run executes p.
func (d *Dispatcher) Run(ctx context.Context, p Params) error {
	if len(p.Unrecognized) > 0 {
		d.logger.Debug("ignoring arguments", "args", p.Unrecognized)
	}
	d.logger.Info("running command", "command", p.Command.String(),
		"solution", p.SolutionPath, "file", p.FilePath, "line", p.Line, "column", p.Column)

	switch p.Command {
	case CommandList:
		return d.list(ctx)
	case CommandLocateSolution:
		d.locateSolution(p)
		return nil
	default:
		return d.open(ctx, p)
	}
}

// open resolves an instance for the solution, opens the file and activates
// the instance's main window.
func (d *Dispatcher) open(ctx context.Context, p Params) error {
	d.resolver.Refresh(ctx)

	sln := p.SolutionPath
	if sln == "" && p.AutofindSolution && p.FilePath != "" {
		found, err := d.locator.Locate(p.FilePath)
		if err != nil {
			d.logger.Debug("no solution located", "file", p.FilePath, "error", err.Error())
		} else {
			d.logger.Info("solution located", "file", p.FilePath, "solution", found)
			sln = found
		}
	}

	h, err := d.resolver.Resolve(ctx, sln)
	if err != nil {
		return err
	}

	if p.FilePath != "" {
		file := p.FilePath
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}
		if !h.OpenFile(file, p.Line, p.Column) && p.Line > 0 {
			d.logger.Warn("file opened without positioning the caret", "file", file, "line", p.Line)
		}
	}
	h.Activate()

	if h.IsDetached() {
		d.render.Warning("no Visual Studio instance could be reached")
	}
	return nil
}

// list prints every initialized instance with its solution.
func (d *Dispatcher) list(ctx context.Context) error {
	d.resolver.Refresh(ctx)
	d.resolver.InitializeAll(ctx)

	d.render.Line("Listing running Visual Studio instances:")
	for _, h := range d.resolver.Instances() {
		if !h.IsInitialized() {
			continue
		}
		info, _ := h.Solution()
		d.render.Instance(h.Identity(), info.FullPath, h.HasOpenSolution())
	}
	return nil
}

// locateSolution prints the solution that owns the target file.
func (d *Dispatcher) locateSolution(p Params) {
	d.render.Line("Searching parent solution for %s", p.FilePath)

	found, err := d.locator.Locate(p.FilePath)
	if err != nil {
		d.logger.Debug("no solution located", "file", p.FilePath, "error", err.Error())
		d.render.Line("No solution found")
		return
	}
	d.render.Line("Solution found")
	d.render.Line("%s", found)
}
