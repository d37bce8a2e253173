package jxl

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Shard is one worker's contiguous, half-open slice [Start, End) of
// the catalog. Shards never overlap and together cover every file.
type Shard struct {
	Start int
	End   int
}

// MakeShards splits n files into at most count contiguous shards of
// near-equal size: n/count each, with the first n%count shards taking
// one extra. Fewer files than workers means fewer shards.
func MakeShards(n, count int) []Shard {
	if n <= 0 {
		return nil
	}
	if count > n {
		count = n
	}
	if count < 1 {
		count = 1
	}

	base := n / count
	extra := n % count

	shards := make([]Shard, 0, count)
	start := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		shards = append(shards, Shard{Start: start, End: start + size})
		start += size
	}
	return shards
}

// Pool runs one worker goroutine per shard over the catalog. The
// worker owning shard 0 is the only one allowed to redraw the progress
// display, so output never interleaves.
type Pool struct {
	Cfg      *Config
	Pipeline *Pipeline
	Stats    *Stats
	Log      *zap.Logger

	// OnResult is called by workers as each file finishes; OnProgress
	// only ever by the shard-0 worker with the aggregate processed
	// count. Either may be nil.
	OnResult   func(Result)
	OnProgress func(processed, total int)
}

// Run blocks until every worker has finished its shard or observed
// cancellation. Cancellation is cooperative: it is checked between
// files, and a tool call already in flight runs to completion.
func (p *Pool) Run(ctx context.Context, files []FileEntry) {
	shards := MakeShards(len(files), p.Cfg.Workers)

	var wg sync.WaitGroup
	for i, shard := range shards {
		wg.Add(1)
		go p.worker(ctx, &wg, i, shard, files)
	}
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, wg *sync.WaitGroup, id int, shard Shard, files []FileEntry) {
	defer wg.Done()

	for i := shard.Start; i < shard.End; i++ {
		select {
		case <-ctx.Done():
			p.Log.Info("worker stopping",
				zap.Int("worker", id),
				zap.Int("remaining", shard.End-i))
			return
		default:
		}

		res := p.Pipeline.Process(files[i])
		p.Stats.Record(res.Outcome, res.Entry.Size, res.OutputSize)

		if p.OnResult != nil {
			p.OnResult(res)
		}
		if id == 0 && p.OnProgress != nil {
			p.OnProgress(p.Stats.Snapshot().Processed, len(files))
		}
	}
}
