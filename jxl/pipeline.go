package jxl

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TempSuffix marks the sibling working file used in in-place mode so a
// failed conversion can never clobber the original.
const TempSuffix = ".jxl.tmp"

// OutputPath returns the input path with its extension replaced by
// .jxl; a path with no extension gets .jxl appended.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".jxl"
	}
	return strings.TrimSuffix(input, ext) + ".jxl"
}

// Result is what one trip through the pipeline produced. The worker
// that owns the file records it into the shared stats.
type Result struct {
	Entry      FileEntry
	Outcome    Outcome
	OutputPath string
	OutputSize int64
	Message    string
}

// Pipeline converts one file at a time through a fixed step sequence:
// skip check, convert, metadata, timestamps, health check, and for
// in-place mode an atomic swap. It holds no shared mutable state, so
// any number of workers can call Process concurrently.
type Pipeline struct {
	cfg     *Config
	tools   Tools
	journal *Journal
	log     *zap.Logger
}

// NewPipeline wires the pipeline together. journal may be nil, which
// disables resume checks and completion records.
func NewPipeline(cfg *Config, tools Tools, journal *Journal, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, tools: tools, journal: journal, log: log}
}

// Process runs the full conversion sequence for entry. Failures are
// reported through the outcome, never as errors; a failed file must
// not stop the batch.
func (p *Pipeline) Process(entry FileEntry) Result {
	output := OutputPath(entry.Path)
	res := Result{Entry: entry, Outcome: OutcomeSuccess, OutputPath: output}

	// Re-running over a half-converted tree should be cheap, so an
	// existing output means skip, not overwrite.
	if !p.cfg.InPlace {
		if _, err := os.Stat(output); err == nil {
			res.Outcome = OutcomeSkipped
			res.Message = "output already exists"
			return res
		}
	}

	if p.cfg.Resume && p.journal != nil && p.journal.IsDone(entry.Path) {
		res.Outcome = OutcomeSkipped
		res.Message = "already recorded in journal"
		return res
	}

	// In-place conversions write to a sibling temp file; the original
	// is only replaced after the new file passes its health check.
	working := output
	if p.cfg.InPlace {
		working = entry.Path + TempSuffix
	}

	p.log.Debug("converting",
		zap.String("input", entry.Path),
		zap.String("working", working),
		zap.Int64("size", entry.Size))

	if !p.tools.Convert(entry.Path, working) {
		p.removeArtifact(working)
		res.Outcome = OutcomeConversionFailed
		res.Message = "Conversion failed"
		return res
	}

	// Metadata and timestamps are best effort; the converted image is
	// already good without them.
	if !p.tools.MigrateMetadata(entry.Path, working) {
		p.log.Warn("metadata migration failed", zap.String("file", entry.Path))
	}
	if !p.tools.CopyTimestamps(entry.Path, working) {
		p.log.Warn("timestamp copy failed", zap.String("file", entry.Path))
	}

	if !p.tools.Validate(working) {
		p.removeArtifact(working)
		res.Outcome = OutcomeHealthCheckFailed
		res.Message = "Health check failed"
		return res
	}

	if p.cfg.InPlace {
		if err := os.Rename(working, output); err != nil {
			p.removeArtifact(working)
			res.Outcome = OutcomeRenameFailed
			res.Message = "Failed to replace original"
			return res
		}
		// The conversion already succeeded; losing the delete only
		// leaves the original behind.
		if err := os.Remove(entry.Path); err != nil {
			p.log.Warn("failed to delete original", zap.String("file", entry.Path), zap.Error(err))
		}
	}

	if info, err := os.Stat(output); err == nil {
		res.OutputSize = info.Size()
	}

	if p.journal != nil {
		if err := p.journal.MarkDone(entry.Path); err != nil {
			p.log.Warn("journal update failed", zap.String("file", entry.Path), zap.Error(err))
		}
	}

	p.log.Debug("converted",
		zap.String("output", output),
		zap.Int64("outputSize", res.OutputSize))

	return res
}

func (p *Pipeline) removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.log.Warn("failed to remove artifact", zap.String("file", path), zap.Error(err))
	}
}
