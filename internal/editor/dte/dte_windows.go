//go:build windows

package dte

import (
	"errors"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/Iron-Ham/vslaunch/internal/editor"
)

// vsViewKindTextView is EnvDTE.Constants.vsViewKindTextView.
const vsViewKindTextView = "{7651A703-06E5-11D1-8EBD-00A0C90F26EA}"

var errNoDispatch = errors.New("property did not return an automation object")

// Automation drives one DTE instance.
type Automation struct {
	dte *ole.IDispatch
}

// New wraps a DTE IDispatch pointer. The Automation takes ownership of the reference.
func New(dte *ole.IDispatch) *Automation {
	return &Automation{dte: dte}
}

// Solution reads DTE.Solution and forces a read of FullName, which throws
// while a solution is still loading.
func (a *Automation) Solution() (editor.SolutionInfo, error) {
	var info editor.SolutionInfo
	err := withProperty(a.dte, "Solution", func(sol *ole.IDispatch) error {
		name, err := oleutil.GetProperty(sol, "FullName")
		if err != nil {
			return err
		}
		info.FullPath = name.ToString()
		_ = name.Clear()

		open, err := oleutil.GetProperty(sol, "IsOpen")
		if err != nil {
			return err
		}
		info.IsOpen, _ = open.Value().(bool)
		_ = open.Clear()
		return nil
	})
	return info, err
}

// OpenSolution calls DTE.Solution.Open(path).
func (a *Automation) OpenSolution(path string) error {
	return withProperty(a.dte, "Solution", func(sol *ole.IDispatch) error {
		return call(sol, "Open", path)
	})
}

// OpenFile calls DTE.ItemOperations.OpenFile(path, vsViewKindTextView).
func (a *Automation) OpenFile(path string) (editor.Window, error) {
	var win editor.Window
	err := withProperty(a.dte, "ItemOperations", func(ops *ole.IDispatch) error {
		v, err := oleutil.CallMethod(ops, "OpenFile", path, vsViewKindTextView)
		if err != nil {
			return err
		}
		defer v.Clear()

		// The variant's reference goes away with Clear; the window keeps its own.
		if disp := v.ToIDispatch(); disp != nil {
			disp.AddRef()
			win = &window{disp: disp}
		}
		return nil
	})
	return win, err
}

// ActivateMainWindow calls DTE.MainWindow.Activate().
func (a *Automation) ActivateMainWindow() error {
	return withProperty(a.dte, "MainWindow", func(w *ole.IDispatch) error {
		return call(w, "Activate")
	})
}

type window struct {
	disp *ole.IDispatch
}

// Selection returns Window.Document.Selection as a TextSelection.
func (w *window) Selection() (editor.Selection, error) {
	var sel editor.Selection
	err := withProperty(w.disp, "Document", func(doc *ole.IDispatch) error {
		return withProperty(doc, "Selection", func(s *ole.IDispatch) error {
			s.AddRef()
			sel = &selection{disp: s}
			return nil
		})
	})
	return sel, err
}

func (w *window) Release() {
	w.disp.Release()
}

type selection struct {
	disp *ole.IDispatch
}

func (s *selection) Release() {
	s.disp.Release()
}

func (s *selection) MoveToLineAndOffset(line, offset int) error {
	return call(s.disp, "MoveToLineAndOffset", line, offset, true)
}

func (s *selection) Collapse() error {
	return call(s.disp, "Collapse")
}

func (s *selection) GotoLine(line int) error {
	return call(s.disp, "GotoLine", line, true)
}

// withProperty reads an object-valued property, runs fn with it and releases it.
func withProperty(disp *ole.IDispatch, name string, fn func(*ole.IDispatch) error) error {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return err
	}
	defer v.Clear()

	obj := v.ToIDispatch()
	if obj == nil {
		return errNoDispatch
	}
	return fn(obj)
}

func call(disp *ole.IDispatch, method string, args ...interface{}) error {
	v, err := oleutil.CallMethod(disp, method, args...)
	if err != nil {
		return err
	}
	return v.Clear()
}
