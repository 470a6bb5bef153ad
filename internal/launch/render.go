package launch

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Iron-Ham/vslaunch/internal/util"
)

var (
	identityStyle = lipgloss.NewStyle().Bold(true)
	solutionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Italic(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

// Renderer writes line-oriented command output. Styling is applied only
// when the destination is a terminal.
type Renderer struct {
	out       io.Writer
	errOut    io.Writer
	styled    bool
	errStyled bool
	width     int
}

// NewRenderer creates a Renderer writing results to out and warnings to errOut.
func NewRenderer(out, errOut io.Writer) *Renderer {
	r := &Renderer{
		out:       out,
		errOut:    errOut,
		styled:    isTerminal(out),
		errStyled: isTerminal(errOut),
	}
	if r.styled {
		r.width = terminalWidth(out)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of a terminal writer, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// fit shortens text to the terminal width minus indent. Output that is not
// going to a terminal is never cut.
func (r *Renderer) fit(text string, indent int, truncate func(string, int) string) string {
	if r.width <= indent {
		return text
	}
	return truncate(text, r.width-indent)
}

func render(styled bool, s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// Line writes one plain line of output.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Instance writes one list entry: the identity, then the indented solution
// path or a no-solution marker.
func (r *Renderer) Instance(identity, solution string, hasSolution bool) {
	fmt.Fprintln(r.out, render(r.styled, identityStyle, r.fit(identity, 0, util.TruncateANSI)))
	if hasSolution {
		fmt.Fprintf(r.out, "\t%s\n", render(r.styled, solutionStyle, r.fit(solution, 8, util.TruncatePath)))
	} else {
		fmt.Fprintf(r.out, "\t%s\n", render(r.styled, mutedStyle, "No solution open"))
	}
}

// Warning writes a line to the error stream.
func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintln(r.errOut, render(r.errStyled, warningStyle, "warning: "+fmt.Sprintf(format, args...)))
}
