// Package util provides small text helpers shared by the output layer.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateANSI truncates s to maxWidth visual columns, keeping the head and
// ending with "..." when cut. ANSI escape codes and wide characters are
// measured correctly.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(ellipsis) {
		return ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// TruncatePath truncates a file path to maxWidth visual columns, keeping the
// tail so the file name stays visible: "...\src\App\App.sln".
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= len(ellipsis) {
		return ellipsis
	}
	width := lipgloss.Width(path)
	if width <= maxWidth {
		return path
	}
	return ansi.TruncateLeft(path, width-maxWidth+len(ellipsis), ellipsis)
}
