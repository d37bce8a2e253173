package jxl

import (
	"io"
	"os"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// Tools is the narrow surface the pipeline needs from the external
// conversion stack. Every call blocks for the process's full duration
// and reports failure as false, never as an error; the pipeline treats
// these as recoverable per-file outcomes.
type Tools interface {
	Convert(input, output string) bool
	MigrateMetadata(src, dst string) bool
	CopyTimestamps(src, dst string) bool
	Validate(path string) bool
}

// CjxlTools drives the real cjxl, exiftool and djxl binaries. Tool
// output is discarded so it cannot corrupt the progress line; only the
// exit status matters.
type CjxlTools struct {
	cfg        *Config
	log        *zap.Logger
	hasDecoder bool
}

// NewCjxlTools probes for djxl once up front; the per-file validate
// path must not pay a PATH lookup per call.
func NewCjxlTools(cfg *Config, log *zap.Logger) *CjxlTools {
	_, err := exec.LookPath("djxl")
	return &CjxlTools{cfg: cfg, log: log, hasDecoder: err == nil}
}

// HasDecoder reports whether djxl is available for decode checks.
// Without it, Validate falls back to the signature check alone.
func (t *CjxlTools) HasDecoder() bool {
	return t.hasDecoder
}

// Convert encodes input to output with cjxl. Arguments are passed as
// an argv array, never through a shell, so paths with metacharacters
// are safe.
func (t *CjxlTools) Convert(input, output string) bool {
	args := []string{input, output}
	if t.cfg.Lossless {
		args = append(args, "-d", "0", "--lossless_jpeg=1")
	} else {
		args = append(args, "-d", strconv.FormatFloat(t.cfg.Distance, 'f', 1, 64))
	}
	args = append(args, "-e", strconv.Itoa(t.cfg.Effort), "-j", "2")

	if err := exec.Command("cjxl", args...).Run(); err != nil {
		t.log.Debug("cjxl failed", zap.String("input", input), zap.Error(err))
		return false
	}
	return true
}

// MigrateMetadata copies all EXIF/XMP/IPTC tags from src onto dst in
// place, without leaving an exiftool backup copy behind.
func (t *CjxlTools) MigrateMetadata(src, dst string) bool {
	cmd := exec.Command("exiftool", "-tagsfromfile", src, "-all:all", "-overwrite_original", dst)
	if err := cmd.Run(); err != nil {
		t.log.Debug("exiftool failed", zap.String("file", dst), zap.Error(err))
		return false
	}
	return true
}

// CopyTimestamps applies src's modification time to dst. Access time
// is not portably readable, so the modification time serves for both.
func (t *CjxlTools) CopyTimestamps(src, dst string) bool {
	info, err := os.Stat(src)
	if err != nil {
		return false
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime()) == nil
}

// Validate checks that path holds a plausible JXL file: non-empty with
// a recognized signature, and decodable when djxl is installed. With
// SkipHealthCheck set it always passes.
func (t *CjxlTools) Validate(path string) bool {
	if t.cfg.SkipHealthCheck {
		return true
	}

	if !HasJXLSignature(path) {
		return false
	}

	if t.hasDecoder {
		if err := exec.Command("djxl", path, os.DevNull).Run(); err != nil {
			t.log.Debug("djxl decode failed", zap.String("file", path), zap.Error(err))
			return false
		}
	}

	return true
}

// HasJXLSignature reports whether the file starts with a JXL
// codestream marker (FF 0A) or an ISOBMFF container header (00 00 00).
func HasJXLSignature(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	sig := make([]byte, 12)
	n, err := io.ReadFull(f, sig)
	if err != nil && n == 0 {
		return false
	}

	if n >= 2 && sig[0] == 0xFF && sig[1] == 0x0A {
		return true
	}
	if n >= 3 && sig[0] == 0x00 && sig[1] == 0x00 && sig[2] == 0x00 {
		return true
	}
	return false
}
