// Package trace provides decision-trace recording for Top-K buffer analysis.
// This package has no dependencies on mining/. It stores pure data types.
package trace

// Outcome classifies what the Top-K buffer did with a candidate.
type Outcome string

const (
	// OutcomeAdmitted means the candidate entered the buffer.
	OutcomeAdmitted Outcome = "admitted"
	// OutcomeBelowThreshold means the buffer was full and the candidate did
	// not beat the pruning threshold.
	OutcomeBelowThreshold Outcome = "below-threshold"
	// OutcomeNotClosed means a buffered superset has the same expected support.
	OutcomeNotClosed Outcome = "not-closed"
	// OutcomeNotBetter means the candidate passed the closedness check but did
	// not beat the buffer minimum at admission time.
	OutcomeNotBetter Outcome = "not-better"
)

// SaveRecord captures a single Top-K save decision.
type SaveRecord struct {
	Items           []int
	Utility         float64
	ExpectedSupport float64
	Outcome         Outcome
	Evicted         []int   // items of the member evicted to make room (nil if none)
	Dominated       int     // buffered subsets removed because the candidate closes them
	Threshold       float64 // pruning threshold after the decision
}
