package jxl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// IsJPEGFile checks if a path has a JPEG extension
func IsJPEGFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// Collect walks root and returns every JPEG file in walk order. Hidden
// files and hidden directories are skipped. The scan stops at MaxFiles
// and reports truncated=true; collected entries are still returned.
// Only a root that cannot be read is an error, unreadable
// subdirectories are logged and skipped.
func Collect(root string, recursive bool, log *zap.Logger) (files []FileEntry, truncated bool, err error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, false, fmt.Errorf("cannot read directory %s: %w", root, err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			log.Warn("skipping unreadable path", zap.String("path", path), zap.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !IsJPEGFile(name) {
			return nil
		}

		if len(files) >= MaxFiles {
			truncated = true
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return nil
		}

		files = append(files, FileEntry{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	if truncated {
		log.Warn("maximum file limit reached", zap.Int("limit", MaxFiles))
	}

	return files, truncated, nil
}
