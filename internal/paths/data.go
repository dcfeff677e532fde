// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDirName is the directory created inside a project to hold the catalog.
const DataDirName = ".spaceplace"

// ResolveDataDir resolves the catalog data directory from user input.
// It normalizes the input (accepting either a project dir or the data dir
// itself), appends .spaceplace if needed, and follows a redirect file so
// several checkouts can share one catalog.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.spaceplace"
//   - "/path/to/project/.spaceplace" -> "/path/to/project/.spaceplace"
//   - "/path/to/data" (containing any of markers) -> "/path/to/data"
//   - "" -> "./.spaceplace"
//
// Redirect handling:
//   - If .spaceplace/redirect exists, its contents name the real data
//     directory, relative to .spaceplace unless absolute.
func ResolveDataDir(path string, markers ...string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if filepath.Base(path) == DataDirName {
		return followRedirect(path)
	}

	// A directory that already holds catalog files is used as is.
	for _, marker := range markers {
		if marker == "" || filepath.IsAbs(marker) {
			continue
		}
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return followRedirect(path)
		}
	}

	return followRedirect(filepath.Join(path, DataDirName))
}

// followRedirect checks for a redirect file and follows it if present.
func followRedirect(dataDir string) string {
	redirectPath := filepath.Join(dataDir, "redirect")

	content, err := os.ReadFile(redirectPath) //nolint:gosec // redirect path is within the data dir
	if err != nil {
		return dataDir
	}

	redirectTarget := strings.TrimSpace(string(content))
	if redirectTarget == "" {
		return dataDir
	}
	if filepath.IsAbs(redirectTarget) {
		return filepath.Clean(redirectTarget)
	}

	return filepath.Clean(filepath.Join(dataDir, redirectTarget))
}
