package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("decisions"))
	assert.True(t, IsValidTraceLevel(""))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestNewMiningTrace_NoneIsNil(t *testing.T) {
	assert.Nil(t, NewMiningTrace(TraceLevelNone))
	assert.Nil(t, NewMiningTrace(""))

	mt := NewMiningTrace(TraceLevelDecisions)
	require.NotNil(t, mt)
	assert.Equal(t, TraceLevelDecisions, mt.Level)
	assert.Empty(t, mt.Saves)
}

func TestRecordSave_NilTrace_NoPanic(t *testing.T) {
	var mt *MiningTrace
	assert.NotPanics(t, func() { mt.RecordSave(SaveRecord{Outcome: OutcomeAdmitted}) })
}

func TestSummarize(t *testing.T) {
	// GIVEN a trace with a mix of outcomes
	mt := NewMiningTrace(TraceLevelDecisions)
	mt.RecordSave(SaveRecord{Items: []int{1}, Outcome: OutcomeAdmitted, Threshold: 0})
	mt.RecordSave(SaveRecord{Items: []int{1, 2}, Outcome: OutcomeAdmitted, Dominated: 1, Threshold: 2})
	mt.RecordSave(SaveRecord{Items: []int{3}, Outcome: OutcomeAdmitted, Evicted: []int{4}, Threshold: 3.5})
	mt.RecordSave(SaveRecord{Items: []int{5}, Outcome: OutcomeBelowThreshold, Threshold: 3.5})
	mt.RecordSave(SaveRecord{Items: []int{2}, Outcome: OutcomeNotClosed, Threshold: 3.5})

	// WHEN summarized
	s := Summarize(mt)

	// THEN counts and the final threshold are aggregated
	assert.Equal(t, 5, s.TotalDecisions)
	assert.Equal(t, 3, s.Outcomes[OutcomeAdmitted])
	assert.Equal(t, 1, s.Outcomes[OutcomeBelowThreshold])
	assert.Equal(t, 1, s.Outcomes[OutcomeNotClosed])
	assert.Zero(t, s.Outcomes[OutcomeNotBetter])
	assert.Equal(t, 1, s.Evictions)
	assert.Equal(t, 1, s.Dominated)
	assert.Equal(t, 3.5, s.FinalThreshold)
}

func TestSummarize_NilTrace(t *testing.T) {
	s := Summarize(nil)

	require.NotNil(t, s)
	assert.Zero(t, s.TotalDecisions)
	assert.NotNil(t, s.Outcomes)
}
