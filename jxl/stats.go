package jxl

import (
	"sync"
	"time"
)

// Snapshot is a consistent copy of the run counters.
type Snapshot struct {
	Total        int
	Processed    int
	Success      int
	Failed       int
	Skipped      int
	HealthPassed int
	HealthFailed int
	BytesInput   int64
	BytesOutput  int64
	StartTime    time.Time
}

// Elapsed returns the wall time since the run started.
func (s Snapshot) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

// Stats accumulates outcomes across all workers. Every mutation goes
// through Record under one mutex so a concurrent reader never observes
// a half-applied update.
type Stats struct {
	mu   sync.Mutex
	view Snapshot
}

// NewStats returns a Stats tracking total files from now.
func NewStats(total int) *Stats {
	return &Stats{view: Snapshot{Total: total, StartTime: time.Now()}}
}

// Record applies one file's outcome as a single atomic group. Byte
// totals only move on success, mirroring what the summary reports.
func (st *Stats) Record(o Outcome, inputBytes, outputBytes int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.view.Processed++
	switch o {
	case OutcomeSuccess:
		st.view.Success++
		st.view.HealthPassed++
		st.view.BytesInput += inputBytes
		st.view.BytesOutput += outputBytes
	case OutcomeHealthCheckFailed:
		st.view.Failed++
		st.view.HealthFailed++
	case OutcomeConversionFailed, OutcomeRenameFailed:
		st.view.Failed++
	case OutcomeSkipped:
		st.view.Skipped++
	}
}

// Snapshot returns a copy of the current counters.
func (st *Stats) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.view
}
