package jxl

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestIsJPEGFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.JPG", true},
		{"photo.JPEG", true},
		{"photo.Jpg", true},
		{"photo.png", false},
		{"photo.jxl", false},
		{"photo.jpg.tmp", false},
		{"photo", false},
		{"jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsJPEGFile(tt.path); got != tt.expected {
				t.Errorf("IsJPEGFile(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func catalogFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"a.jpg":            "aaaa",
		"b.JPEG":           "bb",
		"notes.txt":        "text",
		"c.png":            "png",
		".hidden.jpg":      "hidden",
		"sub/d.jpg":        "dddd",
		"sub/nested/e.jpg": "ee",
		".thumbs/f.jpg":    "ffff",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	return dir
}

func collectPaths(t *testing.T, dir string, recursive bool) map[string]int64 {
	t.Helper()
	files, truncated, err := Collect(dir, recursive, zap.NewNop())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if truncated {
		t.Fatal("Small fixture should never hit the file limit")
	}
	got := make(map[string]int64, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f.Path)
		if err != nil {
			t.Fatalf("Unexpected path %q: %v", f.Path, err)
		}
		got[rel] = f.Size
	}
	return got
}

func TestCollectRecursive(t *testing.T) {
	dir := catalogFixture(t)

	got := collectPaths(t, dir, true)

	expected := map[string]int64{
		"a.jpg":            4,
		"b.JPEG":           2,
		"sub/d.jpg":        4,
		"sub/nested/e.jpg": 2,
	}
	if len(got) != len(expected) {
		t.Errorf("Found %d files, expected %d: %v", len(got), len(expected), got)
	}
	for rel, size := range expected {
		if got[rel] != size {
			t.Errorf("File %q: size %d, expected %d", rel, got[rel], size)
		}
	}
	if _, ok := got[".hidden.jpg"]; ok {
		t.Error("Hidden files should be skipped")
	}
	if _, ok := got[".thumbs/f.jpg"]; ok {
		t.Error("Files inside hidden directories should be skipped")
	}
}

func TestCollectNonRecursive(t *testing.T) {
	dir := catalogFixture(t)

	got := collectPaths(t, dir, false)

	if len(got) != 2 {
		t.Errorf("Found %d files, expected 2: %v", len(got), got)
	}
	if _, ok := got["sub/d.jpg"]; ok {
		t.Error("Subdirectory files should be skipped when not recursing")
	}
}

func TestCollectDeterministicOrder(t *testing.T) {
	dir := catalogFixture(t)

	first, _, err := Collect(dir, true, zap.NewNop())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	second, _, err := Collect(dir, true, zap.NewNop())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Repeated scans disagree on count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("Position %d differs between scans: %q vs %q", i, first[i].Path, second[i].Path)
		}
	}
}

func TestCollectEmptyDirectory(t *testing.T) {
	files, truncated, err := Collect(t.TempDir(), true, zap.NewNop())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if truncated {
		t.Error("Empty directory should not report truncation")
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %d", len(files))
	}
}

func TestCollectMissingDirectory(t *testing.T) {
	_, _, err := Collect(filepath.Join(t.TempDir(), "does-not-exist"), true, zap.NewNop())
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}
