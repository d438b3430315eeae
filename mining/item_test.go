package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workedExample() *Dataset {
	db := NewDataset()
	db.Add(NewTransaction([]Item{{ID: 2, Utility: 5, Probability: 1}, {ID: 1, Utility: 5, Probability: 1}}, 10))
	db.Add(NewTransaction([]Item{{ID: 3, Utility: 5, Probability: 1}, {ID: 2, Utility: 3, Probability: 0.5}}, 8))
	return db
}

func TestNewTransaction_SortsAndCaches(t *testing.T) {
	// GIVEN items out of ID order
	in := []Item{{ID: 7, Utility: 2, Probability: 0.5}, {ID: 3, Utility: 4, Probability: 1}}

	// WHEN a transaction is built
	tx := NewTransaction(in, 6)

	// THEN items are sorted by ID, the input is untouched and the EU is cached
	assert.Equal(t, []int{3, 7}, tx.IDs())
	assert.Equal(t, 7, in[0].ID)
	assert.Equal(t, 2, tx.Len())
	assert.Equal(t, 6.0, tx.Utility())
	assert.InDelta(t, 5.0, tx.ExpectedUtility(), 1e-12)
}

func TestNewTransaction_DuplicateID_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewTransaction([]Item{{ID: 1, Utility: 1, Probability: 1}, {ID: 1, Utility: 2, Probability: 1}}, 3)
	})
}

func TestTransaction_UtilityAndProbabilityOf(t *testing.T) {
	tx := NewTransaction([]Item{
		{ID: 1, Utility: 4, Probability: 0.9},
		{ID: 2, Utility: 2, Probability: 0.8},
		{ID: 3, Utility: 6, Probability: 0.5},
	}, 12)

	tests := []struct {
		name      string
		candidate []int
		contains  bool
		utility   float64
		prob      float64
	}{
		{"single", []int{3}, true, 3, 0.5},
		{"pair", []int{1, 3}, true, 10 * 0.45, 0.45},
		{"all", []int{1, 2, 3}, true, 12 * 0.36, 0.36},
		{"missing item", []int{2, 4}, false, 0, 0},
		{"empty", nil, true, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, tx.ContainsAll(tt.candidate))
			assert.InDelta(t, tt.utility, tx.UtilityOf(tt.candidate), 1e-12)
			assert.InDelta(t, tt.prob, tx.ProbabilityOf(tt.candidate), 1e-12)
		})
	}
}

func TestDataset_ETWU(t *testing.T) {
	// GIVEN the worked example
	db := workedExample()

	// WHEN ETWU is computed
	etwu := db.ETWU()

	// THEN each item sums the EU of the transactions containing it
	require.Len(t, etwu, 3)
	assert.InDelta(t, 10.0, etwu.Of(1), 1e-12)
	assert.InDelta(t, 16.5, etwu.Of(2), 1e-12)
	assert.InDelta(t, 6.5, etwu.Of(3), 1e-12)
	assert.Equal(t, 3, db.MaxItemID)
	assert.Equal(t, 2, db.Len())
}

func TestETWU_Less_TiesByID(t *testing.T) {
	etwu := ETWU{1: 5, 2: 3, 3: 5}

	assert.True(t, etwu.Less(2, 1))
	assert.True(t, etwu.Less(1, 3))
	assert.False(t, etwu.Less(3, 1))
}

func TestETWU_Of_UnknownItem_Panics(t *testing.T) {
	assert.Panics(t, func() { ETWU{}.Of(42) })
}

func TestDataset_Add_Nil_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDataset().Add(nil) })
}
