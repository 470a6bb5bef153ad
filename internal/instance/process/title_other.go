//go:build !windows

package process

// mainWindowTitle is always empty outside Windows.
func mainWindowTitle(int) string {
	return ""
}
