package efim

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/topk-chui/mining"
	"github.com/inference-sim/topk-chui/mining/internal/testutil"
)

func run(t *testing.T, db *mining.Dataset, k int) *mining.Result {
	t.Helper()
	res, err := mining.Run(context.Background(), New(), db, k, mining.RunOptions{})
	require.NoError(t, err)
	return res
}

func TestMiner_WorkedExample_AllClosedItemsets(t *testing.T) {
	// GIVEN the worked example and a K larger than its closed itemsets
	db := testutil.WorkedExample()

	// WHEN mined
	res := run(t, db, 10)

	// THEN the four closed itemsets come out and the buffer never filled
	want := []*mining.Itemset{
		mining.NewItemset([]int{1, 2}, 10, 1),
		mining.NewItemset([]int{2}, 6.5, 1.5),
		mining.NewItemset([]int{3}, 5, 1),
		mining.NewItemset([]int{2, 3}, 4, 0.5),
	}
	testutil.AssertItemsetsEqual(t, want, res.Itemsets)
	assert.Zero(t, res.Stats.MinUtilThreshold)
	assert.Equal(t, 4, res.Stats.PatternCount)
	assert.Equal(t, Name, res.Stats.Algorithm)
}

func TestMiner_GoldenCases(t *testing.T) {
	golden := testutil.LoadGoldenDataset(t)
	for _, tc := range golden.Cases {
		t.Run(fmt.Sprintf("%s/k=%d", tc.Dataset, tc.K), func(t *testing.T) {
			res := run(t, golden.Dataset(t, tc.Dataset), tc.K)
			testutil.AssertItemsetsEqual(t, tc.Expected(), res.Itemsets)
		})
	}
}

func TestMiner_MatchesBruteForce_SixTransactions(t *testing.T) {
	golden := testutil.LoadGoldenDataset(t)
	db := golden.Dataset(t, "six-transactions")
	for k := 1; k <= 15; k++ {
		res := run(t, db, k)
		testutil.AssertItemsetsEqual(t, testutil.BruteForceTopK(db, k), res.Itemsets)
	}
}

func TestMiner_BoundaryCases(t *testing.T) {
	tests := []struct {
		name string
		db   *mining.Dataset
		k    int
	}{
		{name: "k=0 rejects everything", db: testutil.WorkedExample(), k: 0},
		{name: "empty dataset", db: mining.NewDataset(), k: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.db, tt.k)
			assert.Empty(t, res.Itemsets)
			assert.Equal(t, 0, res.Stats.PatternCount)
		})
	}
}

func TestMiner_AllZeroUtilities_Terminates(t *testing.T) {
	// GIVEN transactions whose utilities are all zero
	db := testutil.BuildDataset(
		testutil.Row{Items: []int{1, 2, 3}, Utilities: []float64{0, 0, 0}, Probabilities: []float64{1, 0.5, 0.2}},
		testutil.Row{Items: []int{2, 3}, Utilities: []float64{0, 0}, Probabilities: []float64{0.4, 0.9}},
	)

	// WHEN mined
	res := run(t, db, 3)

	// THEN the search terminates with at most K zero-utility itemsets
	assert.LessOrEqual(t, len(res.Itemsets), 3)
	for _, s := range res.Itemsets {
		assert.Zero(t, s.Utility)
	}
}

func TestMiner_CancelledContext_ReturnsContextError(t *testing.T) {
	// GIVEN a context cancelled before the run starts
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN the engine runs
	res, err := mining.Run(ctx, New(), testutil.WorkedExample(), 3, mining.RunOptions{})

	// THEN the context error surfaces and the partial result is empty
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, res)
	assert.Empty(t, res.Itemsets)
}

func TestMiner_Deterministic(t *testing.T) {
	golden := testutil.LoadGoldenDataset(t)
	db := golden.Dataset(t, "random-eight")

	first := run(t, db, 10)
	for i := 0; i < 5; i++ {
		again := run(t, db, 10)
		require.Len(t, again.Itemsets, len(first.Itemsets))
		for j := range first.Itemsets {
			assert.Equal(t, first.Itemsets[j].Items, again.Itemsets[j].Items)
			assert.Equal(t, first.Itemsets[j].Utility, again.Itemsets[j].Utility)
		}
	}
}
