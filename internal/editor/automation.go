// Package editor defines the automation surface vslaunch uses to drive a
// running editor instance.
//
// The interfaces here are deliberately narrow: they cover exactly the calls
// the instance handle makes (read the solution, open a solution, open a
// file, move the caret, raise the main window). The Windows DTE backend in
// editor/dte implements them over COM; tests implement them with fakes.
package editor

// SolutionInfo is the solution state read from an editor instance.
type SolutionInfo struct {
	// FullPath is the absolute path of the loaded solution file.
	// It is empty when no solution is loaded.
	FullPath string
	// IsOpen is false when the solution object exists but nothing is loaded.
	IsOpen bool
}

// Automation is an opaque capability for one running editor instance.
//
// Every method may fail while the editor is busy (for example while a
// solution is still loading). Callers treat those failures as transient.
type Automation interface {
	// Solution reads the solution object and its full path. It returns an
	// error until the solution is fully loaded.
	Solution() (SolutionInfo, error)

	// OpenSolution asks the editor to load the solution at path.
	OpenSolution(path string) error

	// OpenFile opens path in a text view. The returned Window is nil when
	// the editor opened the file without producing a window.
	OpenFile(path string) (Window, error)

	// ActivateMainWindow brings the editor's main window to the foreground.
	ActivateMainWindow() error
}

// Window is a document window returned by OpenFile. Callers Release it
// when done.
type Window interface {
	// Selection returns the text selection of the window's document.
	Selection() (Selection, error)
	// Release drops the reference to the window.
	Release()
}

// Selection is the caret/selection of an open text document. Callers
// Release it when done.
// Line and column numbers are 1-based for lines and 0-based for columns,
// matching the values accepted on the command line.
type Selection interface {
	// MoveToLineAndOffset moves the active point to line/offset.
	MoveToLineAndOffset(line, offset int) error
	// Collapse collapses the selection to the active point.
	Collapse() error
	// GotoLine moves to the start of line.
	GotoLine(line int) error
	// Release drops the reference to the selection.
	Release()
}
