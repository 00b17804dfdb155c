package utils

import (
	"os"
	"path/filepath"
)

// Directory entries that mark a project root during the upward search.
var rootMarkers = []string{".git", "package.json", "tsconfig.json"}

// FindProjectRoot walks parent directories from the given file path and
// returns the first directory containing a project marker. The second
// return value is false when no marker is found before the filesystem root.
func FindProjectRoot(filePath string) (string, bool) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", false
	}

	dir := filepath.Dir(absPath)
	for i := 0; i < 64; i++ {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
