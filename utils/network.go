package utils

import (
	"path/filepath"
	"strings"
)

// IsNetworkPath detects if a path sits on a network-mounted filesystem.
// Hashing thousands of images over SMB with a full worker pool mostly
// measures the network, so callers drop to a single worker for these.
func IsNetworkPath(path string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	// Common network mount prefixes on different platforms
	networkPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/media/",   // Linux removable/network media
		"/Volumes/", // macOS network volumes
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	return false
}
