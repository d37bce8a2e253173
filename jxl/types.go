package jxl

// Limits and defaults for a conversion run.
const (
	// MaxFiles caps a single scan; anything beyond it is dropped with a warning.
	MaxFiles = 100000

	MaxWorkers     = 32
	DefaultWorkers = 4

	// DefaultDistance is visually lossless; 0 means mathematically lossless.
	DefaultDistance = 1.0
	DefaultEffort   = 7
)

// FileEntry is one candidate input file found by the catalog.
type FileEntry struct {
	Path string
	Size int64
}

// Config carries the settings for one conversion run. It is never
// mutated after startup, so workers share it without locking.
type Config struct {
	Dir             string
	InPlace         bool
	SkipHealthCheck bool
	Recursive       bool
	Verbose         bool
	DryRun          bool
	Workers         int
	Distance        float64
	Effort          int
	Lossless        bool
	Resume          bool
}

// Outcome classifies the result of processing one file.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeConversionFailed
	OutcomeHealthCheckFailed
	OutcomeRenameFailed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeConversionFailed:
		return "conversion failed"
	case OutcomeHealthCheckFailed:
		return "health check failed"
	case OutcomeRenameFailed:
		return "rename failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ClampWorkers forces a worker count into the supported range.
func ClampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
