package bench

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/topk-chui/mining"
	"github.com/inference-sim/topk-chui/mining/internal/testutil"
	"github.com/inference-sim/topk-chui/mining/uptree"
)

func TestRunOne_Completes(t *testing.T) {
	stats, res, err := RunOne(context.Background(), uptree.New(), testutil.WorkedExample(), 2, Budget{Timeout: time.Minute})

	require.NoError(t, err)
	assert.Equal(t, "U-TKU", stats.Algorithm)
	assert.Equal(t, 2, stats.PatternCount)
	assert.InDelta(t, 6.5, stats.MinUtilThreshold, 1e-9)
	assert.GreaterOrEqual(t, stats.RuntimeMillis, int64(0))
	assert.Len(t, res.Itemsets, 2)
}

func TestRunOne_Timeout_RecordsSentinel(t *testing.T) {
	// GIVEN a miner that only stops when cancelled and a short deadline
	budget := Budget{Timeout: 20 * time.Millisecond}

	// WHEN run
	stats, _, err := RunOne(context.Background(), blockingMiner{}, testutil.WorkedExample(), 3, budget)

	// THEN the run is a timeout, not an error
	require.NoError(t, err)
	assert.Equal(t, mining.RuntimeTimeout, stats.RuntimeMillis)
	assert.True(t, stats.TimedOut())
	assert.Equal(t, "Blocking", stats.Algorithm)
	assert.Zero(t, stats.PatternCount)
}

func TestRunOne_MemoryCeiling_RecordsSentinel(t *testing.T) {
	// GIVEN a heap reading far above the ceiling
	budget := Budget{
		Timeout:        time.Minute,
		MemoryLimitMB:  10,
		SampleInterval: time.Millisecond,
		Memory:         mining.NewMemoryTrackerFunc(func() uint64 { return 1 << 30 }),
	}

	// WHEN run
	stats, _, err := RunOne(context.Background(), blockingMiner{}, testutil.WorkedExample(), 3, budget)

	// THEN the watcher stops the run and it is recorded as out of memory
	require.NoError(t, err)
	assert.Equal(t, mining.RuntimeOutOfMemory, stats.RuntimeMillis)
	assert.True(t, stats.OutOfMemory())
}

func TestRunOne_ParentCancelled_ReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := RunOne(ctx, blockingMiner{}, testutil.WorkedExample(), 3, Budget{Timeout: time.Minute})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// spikeMiner flags a heap spike while it works and clears it before returning.
type spikeMiner struct{ spiking *atomic.Bool }

func (spikeMiner) Name() string { return "Spike" }

func (m spikeMiner) Mine(ctx context.Context, _ *mining.Dataset, _ *mining.TopK) error {
	m.spiking.Store(true)
	defer m.spiking.Store(false)
	select {
	case <-time.After(50 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestRunOne_NoCeiling_StillTracksPeak(t *testing.T) {
	// GIVEN a heap that is only large while the search runs, and no ceiling
	spiking := &atomic.Bool{}
	budget := Budget{
		Timeout:        time.Minute,
		SampleInterval: time.Millisecond,
		Memory: mining.NewMemoryTrackerFunc(func() uint64 {
			if spiking.Load() {
				return 64 << 20
			}
			return 1 << 20
		}),
	}

	// WHEN run
	stats, _, err := RunOne(context.Background(), spikeMiner{spiking: spiking}, testutil.WorkedExample(), 2, budget)

	// THEN the peak reflects the mid-run samples, not just the endpoints
	require.NoError(t, err)
	assert.Equal(t, "Spike", stats.Algorithm)
	assert.Equal(t, 64.0, stats.PeakMemoryMB)
}
