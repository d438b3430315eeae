package mining

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/topk-chui/mining/trace"
)

// Miner is a search strategy for top-K closed high-utility itemsets.
//
// Mine searches db and offers every candidate that clears topk.MinUtility()
// to topk.Save. It must read the threshold from topk each time it prunes, as
// the threshold rises while the search runs. Implementations check ctx once
// per recursive call and return ctx.Err() when it is done.
type Miner interface {
	Name() string
	Mine(ctx context.Context, db *Dataset, topk *TopK) error
}

// RunOptions configures Run. The zero value is valid.
type RunOptions struct {
	Trace  *trace.MiningTrace // decision trace (nil = no tracing)
	Memory *MemoryTracker     // peak memory sampler (nil = a fresh tracker)
}

// Result is the output of one run: the final buffer content in SortItemsets
// order and the run statistics.
type Result struct {
	Itemsets []*Itemset
	Stats    Stats
}

// Run executes m over db with a fresh buffer of capacity k. This is the
// uniform entry point every caller uses regardless of the engine.
//
// When the search is interrupted through ctx, Run still returns the partial
// result together with the wrapped context error.
func Run(ctx context.Context, m Miner, db *Dataset, k int, opts RunOptions) (*Result, error) {
	if m == nil {
		panic("Run: miner must not be nil")
	}
	if db == nil {
		panic("Run: dataset must not be nil")
	}
	mem := opts.Memory
	if mem == nil {
		mem = NewMemoryTracker()
	}
	mem.Reset()
	mem.Sample()

	topk := NewTopK(k, opts.Trace)
	start := time.Now()
	logrus.Debugf("%s: mining %d transactions (max item %d), k=%d", m.Name(), db.Len(), db.MaxItemID, topk.K())

	err := m.Mine(ctx, db, topk)

	mem.Sample()
	result := &Result{
		Itemsets: topk.Itemsets(),
		Stats: Stats{
			Algorithm:        m.Name(),
			RuntimeMillis:    time.Since(start).Milliseconds(),
			PeakMemoryMB:     mem.PeakMB(),
			PatternCount:     topk.Len(),
			MinUtilThreshold: topk.MinUtility(),
		},
	}
	if err != nil {
		return result, fmt.Errorf("%s: %w", m.Name(), err)
	}
	logrus.Debugf("%s: done, %s", m.Name(), result.Stats)
	return result, nil
}
