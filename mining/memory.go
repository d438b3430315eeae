package mining

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"
)

// ErrMemoryLimit is the cancellation cause used when a run crosses its
// memory ceiling.
var ErrMemoryLimit = errors.New("memory limit exceeded")

const bytesPerMB = 1024 * 1024

// MemoryTracker records the peak heap in use across explicit samples.
// Each run owns its tracker: Reset before the run, Sample during and after.
// Safe for concurrent use by the run and its watcher goroutine.
type MemoryTracker struct {
	mu       sync.Mutex
	peakMB   float64
	readHeap func() uint64
}

// NewMemoryTracker creates a tracker that reads the Go runtime heap.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{readHeap: heapInUse}
}

// NewMemoryTrackerFunc creates a tracker that reads heap bytes from read.
// The benchmark driver uses it to fake a heap in tests.
func NewMemoryTrackerFunc(read func() uint64) *MemoryTracker {
	if read == nil {
		panic("NewMemoryTrackerFunc: read must not be nil")
	}
	return &MemoryTracker{readHeap: read}
}

// Reset clears the recorded peak.
func (m *MemoryTracker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.peakMB = 0
}

// Sample reads current heap usage, updates the peak and returns the current
// value in MB.
func (m *MemoryTracker) Sample() float64 {
	current := float64(m.readHeap()) / bytesPerMB
	m.mu.Lock()
	defer m.mu.Unlock()
	if current > m.peakMB {
		m.peakMB = current
	}
	return current
}

// PeakMB returns the largest sample since the last Reset.
func (m *MemoryTracker) PeakMB() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peakMB
}

// Watch samples every interval until ctx is done. When limitMB is positive
// and a sample exceeds it, cancel is called with ErrMemoryLimit and Watch
// returns. Intended to run in its own goroutine beside a search.
func (m *MemoryTracker) Watch(ctx context.Context, interval time.Duration, limitMB float64, cancel context.CancelCauseFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if current := m.Sample(); limitMB > 0 && current > limitMB {
				cancel(ErrMemoryLimit)
				return
			}
		}
	}
}

func heapInUse() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
