package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every Top-K save decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// MiningTrace collects save decisions during one mining run.
type MiningTrace struct {
	Level TraceLevel
	Saves []SaveRecord
}

// NewMiningTrace creates a MiningTrace ready for recording.
// Returns nil for TraceLevelNone so callers can pass the result straight to
// the buffer, which skips recording for a nil trace.
func NewMiningTrace(level TraceLevel) *MiningTrace {
	if level == "" || level == TraceLevelNone {
		return nil
	}
	return &MiningTrace{
		Level: level,
		Saves: make([]SaveRecord, 0),
	}
}

// RecordSave appends a save decision record. Safe on a nil trace.
func (mt *MiningTrace) RecordSave(record SaveRecord) {
	if mt == nil {
		return
	}
	mt.Saves = append(mt.Saves, record)
}
