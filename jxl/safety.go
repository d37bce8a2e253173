package jxl

import (
	"os"
	"path/filepath"
)

// protectedDirs are never converted in place. Matching is against the
// fully resolved path and must be exact; subdirectories are fine.
var protectedDirs = []string{
	"/",
	"/etc",
	"/bin",
	"/sbin",
	"/usr",
	"/var",
	"/tmp",
	"/opt",
	"/boot",
	"/dev",
	"/proc",
	"/sys",
	"/home",
	"/root",
	"/System",
	"/Library",
	"/Applications",
	"/Users",
	"/private",
}

// IsProtected reports whether path resolves to a directory too risky
// for in-place conversion: a system root or the user's home directory.
// Paths that cannot be resolved count as protected.
func IsProtected(path string) bool {
	resolved, err := canonicalPath(path)
	if err != nil {
		return true
	}

	for _, dir := range protectedDirs {
		if resolved == dir {
			return true
		}
	}

	if home, err := os.UserHomeDir(); err == nil && resolved == filepath.Clean(home) {
		return true
	}

	return false
}

// canonicalPath resolves path to an absolute form with symlinks and
// relative segments eliminated.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
