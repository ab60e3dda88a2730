// # internal/registry/locator.go
package registry

import (
	"os"
	"path/filepath"
)

// FindLocalPackage checks each search path's node_modules for an installed
// copy of the package and returns its directory.
func FindLocalPackage(packageName string, searchPaths []string) (string, bool) {
	for _, searchPath := range searchPaths {
		candidate := filepath.Join(searchPath, "node_modules", packageName)
		if stat, err := os.Stat(candidate); err == nil && stat.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// DefaultSearchPaths returns the working directory and its two parents, the
// places a project-local node_modules usually sits.
func DefaultSearchPaths() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return []string{
		cwd,
		filepath.Join(cwd, ".."),
		filepath.Join(cwd, "../.."),
	}
}
