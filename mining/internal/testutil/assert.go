package testutil

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inference-sim/topk-chui/mining"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertItemsetsEqual compares two results as sets of (items, utility,
// support), ignoring order. Floats match within 1e-6.
func AssertItemsetsEqual(t *testing.T, want, got []*mining.Itemset) {
	t.Helper()
	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-6),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(byItems(want), byItems(got), opts); diff != "" {
		t.Errorf("itemsets mismatch (-want +got):\n%s", diff)
	}
}

func byItems(sets []*mining.Itemset) []mining.Itemset {
	out := make([]mining.Itemset, len(sets))
	for i, s := range sets {
		out[i] = *s
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
