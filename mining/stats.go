package mining

import "fmt"

// Sentinel runtimes assigned by the benchmark driver, never by an engine.
const (
	RuntimeTimeout     int64 = -1 // run exceeded its wall-clock budget
	RuntimeOutOfMemory int64 = -2 // run crossed the memory ceiling
)

// Stats records the performance of one engine run.
type Stats struct {
	Algorithm        string  // engine name, e.g. "U-TKU"
	RuntimeMillis    int64   // wall-clock runtime, or a sentinel
	PeakMemoryMB     float64 // peak heap in use sampled during the run
	PatternCount     int     // itemsets left in the Top-K buffer
	MinUtilThreshold float64 // final pruning threshold
}

// TimedOut reports whether the driver marked the run as a timeout.
func (s Stats) TimedOut() bool {
	return s.RuntimeMillis == RuntimeTimeout
}

// OutOfMemory reports whether the driver marked the run as out of memory.
func (s Stats) OutOfMemory() bool {
	return s.RuntimeMillis == RuntimeOutOfMemory
}

func (s Stats) String() string {
	return fmt.Sprintf("%s | Time: %dms | Mem: %.2fMB | Count: %d | MinUtil: %.5f",
		s.Algorithm, s.RuntimeMillis, s.PeakMemoryMB, s.PatternCount, s.MinUtilThreshold)
}
