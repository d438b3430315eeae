package bench

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/inference-sim/topk-chui/mining"
	"github.com/inference-sim/topk-chui/mining/trace"
)

// DefaultSampleInterval is how often the memory watcher reads the heap.
const DefaultSampleInterval = 50 * time.Millisecond

// Budget bounds a single run.
type Budget struct {
	Timeout        time.Duration         // 0 = no deadline
	MemoryLimitMB  float64               // 0 = no ceiling
	SampleInterval time.Duration         // 0 = DefaultSampleInterval
	Memory         *mining.MemoryTracker // nil = a fresh tracker
	Trace          *trace.MiningTrace    // nil = no tracing
}

// RunOne mines db with miner under budget.
//
// A run that hits its deadline or memory ceiling is not an error: its stats
// carry RuntimeTimeout or RuntimeOutOfMemory and zeroes elsewhere, and the
// partial result is returned alongside. Cancellation of ctx itself is
// returned as an error.
func RunOne(ctx context.Context, miner mining.Miner, db *mining.Dataset, k int, budget Budget) (mining.Stats, *mining.Result, error) {
	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if budget.Timeout > 0 {
		var stop context.CancelFunc
		runCtx, stop = context.WithTimeout(runCtx, budget.Timeout)
		defer stop()
	}

	mem := budget.Memory
	if mem == nil {
		mem = mining.NewMemoryTracker()
	}
	var wg sync.WaitGroup
	watchCtx, stopWatch := context.WithCancel(runCtx)
	interval := budget.SampleInterval
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	// Without a ceiling the watcher still samples, so the peak is tracked.
	wg.Add(1)
	go func() {
		defer wg.Done()
		mem.Watch(watchCtx, interval, budget.MemoryLimitMB, cancel)
	}()

	res, err := mining.Run(runCtx, miner, db, k, mining.RunOptions{Memory: mem, Trace: budget.Trace})
	stopWatch()
	wg.Wait()

	if err == nil {
		return res.Stats, res, nil
	}
	switch {
	case errors.Is(context.Cause(runCtx), mining.ErrMemoryLimit):
		return mining.Stats{Algorithm: miner.Name(), RuntimeMillis: mining.RuntimeOutOfMemory}, res, nil
	case ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded):
		return mining.Stats{Algorithm: miner.Name(), RuntimeMillis: mining.RuntimeTimeout}, res, nil
	default:
		return res.Stats, res, err
	}
}
