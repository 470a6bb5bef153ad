// Package testutil provides testing utilities for vslaunch tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTree creates a temporary directory containing the given files. The
// files map holds slash-separated relative paths to contents. Returns the
// root of the tree; it is removed when the test completes.
func SetupTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for path, content := range files {
		WriteFile(t, dir, path, content)
	}
	return dir
}

// WriteFile creates or replaces a file below root, creating parent directories.
// Returns the absolute path of the file.
func WriteFile(t *testing.T, root, path, content string) string {
	t.Helper()

	fullPath := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return fullPath
}

// Path joins a slash-separated relative path onto root.
func Path(root, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}

// SetupSolutionTree creates a tree with a solution file and a source file
// nested below it:
//
//	<root>/App.sln
//	<root>/src/App/Core/Widget.cs
//
// Returns the root, the solution path and the source file path.
func SetupSolutionTree(t *testing.T) (root, solution, source string) {
	t.Helper()

	root = SetupTree(t, map[string]string{
		"App.sln":                "Microsoft Visual Studio Solution File, Format Version 12.00\n",
		"src/App/Core/Widget.cs": "class Widget {}\n",
	})
	return root, Path(root, "App.sln"), Path(root, "src/App/Core/Widget.cs")
}
