package mining

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Itemset is a candidate or result pattern: a sorted, duplicate-free item
// sequence with its expected utility and expected support.
type Itemset struct {
	Items           []int
	Utility         float64
	ExpectedSupport float64
}

// NewItemset copies items, sorts them ascending and removes duplicates.
func NewItemset(items []int, utility, expectedSupport float64) *Itemset {
	sorted := make([]int, len(items))
	copy(sorted, items)
	sort.Ints(sorted)
	n := 0
	for i, id := range sorted {
		if i > 0 && id == sorted[n-1] {
			continue
		}
		sorted[n] = id
		n++
	}
	return &Itemset{Items: sorted[:n], Utility: utility, ExpectedSupport: expectedSupport}
}

// Extend returns prefix with item appended, as a fresh slice.
// Engines build candidate patterns with it before calling NewItemset.
func Extend(prefix []int, item int) []int {
	out := make([]int, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = item
	return out
}

// Size returns the number of items.
func (s *Itemset) Size() int {
	return len(s.Items)
}

// Equal reports whether both itemsets hold the same item sequence.
// Utility and support are not compared.
func (s *Itemset) Equal(o *Itemset) bool {
	return compareItems(s.Items, o.Items) == 0
}

// Compare orders itemsets by utility; utilities within Epsilon tie (0).
func (s *Itemset) Compare(o *Itemset) int {
	switch {
	case Equal(s.Utility, o.Utility):
		return 0
	case s.Utility < o.Utility:
		return -1
	default:
		return 1
	}
}

// Key renders the item sequence as a map key, e.g. "1 2 5".
func (s *Itemset) Key() string {
	var sb strings.Builder
	for i, id := range s.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

func (s *Itemset) String() string {
	return fmt.Sprintf("%s #UTIL: %v #EXP_SUP: %.4f", s.Key(), s.Utility, s.ExpectedSupport)
}

// SortItemsets orders results deterministically: utility descending
// (epsilon-aware), then item sequence ascending.
func SortItemsets(sets []*Itemset) {
	sort.SliceStable(sets, func(i, j int) bool {
		if c := sets[i].Compare(sets[j]); c != 0 {
			return c > 0
		}
		return compareItems(sets[i].Items, sets[j].Items) < 0
	})
}

// compareItems compares two sorted item sequences lexicographically.
func compareItems(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
