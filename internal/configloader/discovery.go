// Package configloader discovers and loads the nearest lintrc configuration
// for a file by walking up the directory tree.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// lintrcFileNames are the config file names we search for, in order of
// preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var lintrcFileNames = []string{
	".lintrc.yaml",
	".lintrc.yml",
}

// maxAscent caps the upward walk so unusual filesystem layouts (symlink
// cycles) cannot loop forever.
const maxAscent = 256

// ErrConfigNotFound is returned when the filesystem root is reached without
// finding a config file. The failure is scoped to the starting directory
// and is permanent until a config file appears there or above.
var ErrConfigNotFound = errors.New("no lintrc configuration found")

// FindConfig searches upward from startDir for the nearest lintrc file.
// The walk is a plain loop: it stops once the current directory equals its
// own parent (filesystem root) or the ascent cap is hit.
func FindConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for range maxAscent {
		for _, name := range lintrcFileNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched from %s to root", ErrConfigNotFound, startDir)
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: ascent cap reached from %s", ErrConfigNotFound, startDir)
}

// IsConfigFile reports whether path names a lintrc file.
func IsConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range lintrcFileNames {
		if base == name {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
