package testutil

import (
	"sort"

	"github.com/inference-sim/topk-chui/mining"
)

// BruteForceTopK enumerates every itemset of db and returns the K closed
// itemsets of highest expected utility, ties broken by item sequence.
// Exponential in the number of distinct items; fixtures only.
func BruteForceTopK(db *mining.Dataset, k int) []*mining.Itemset {
	if k <= 0 {
		return nil
	}
	universe := make([]int, 0)
	for item := range db.ETWU() {
		universe = append(universe, item)
	}
	sort.Ints(universe)
	if len(universe) > 20 {
		panic("BruteForceTopK: too many items")
	}

	var all []*mining.Itemset
	for mask := 1; mask < 1<<len(universe); mask++ {
		var items []int
		for i, id := range universe {
			if mask&(1<<i) != 0 {
				items = append(items, id)
			}
		}
		s := mining.NewItemset(items, 0, 0)
		for _, t := range db.Transactions {
			s.Utility += t.UtilityOf(s.Items)
			s.ExpectedSupport += t.ProbabilityOf(s.Items)
		}
		if s.ExpectedSupport > 0 {
			all = append(all, s)
		}
	}

	closed := make([]*mining.Itemset, 0, len(all))
	for _, s := range all {
		if !hasEqualSupportSuperset(s, all) {
			closed = append(closed, s)
		}
	}
	mining.SortItemsets(closed)
	if len(closed) > k {
		closed = closed[:k]
	}
	return closed
}

func hasEqualSupportSuperset(s *mining.Itemset, all []*mining.Itemset) bool {
	for _, o := range all {
		if o.Size() > s.Size() && mining.Equal(o.ExpectedSupport, s.ExpectedSupport) && mining.IsSubsetSorted(s.Items, o.Items) {
			return true
		}
	}
	return false
}
