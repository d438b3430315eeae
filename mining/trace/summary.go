package trace

// TraceSummary aggregates statistics from a MiningTrace.
type TraceSummary struct {
	TotalDecisions int
	Outcomes       map[Outcome]int
	Evictions      int
	Dominated      int
	FinalThreshold float64
}

// Summarize computes aggregate statistics from a MiningTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(mt *MiningTrace) *TraceSummary {
	summary := &TraceSummary{
		Outcomes: make(map[Outcome]int),
	}
	if mt == nil {
		return summary
	}

	summary.TotalDecisions = len(mt.Saves)
	for _, s := range mt.Saves {
		summary.Outcomes[s.Outcome]++
		if s.Evicted != nil {
			summary.Evictions++
		}
		summary.Dominated += s.Dominated
		if s.Threshold > summary.FinalThreshold {
			summary.FinalThreshold = s.Threshold
		}
	}
	return summary
}
