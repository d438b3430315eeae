package mining

import (
	"fmt"
	"sort"
	"strconv"
)

// Item is one uncertain occurrence of an item inside a transaction.
type Item struct {
	ID          int     // item identifier (non-negative)
	Utility     float64 // raw utility of the item in its transaction
	Probability float64 // existence probability in [0, 1]
}

// ExpectedUtility returns Utility × Probability.
func (it Item) ExpectedUtility() float64 {
	return it.Utility * it.Probability
}

func (it Item) String() string {
	return strconv.Itoa(it.ID)
}

// Transaction is an immutable set of uncertain items sorted ascending by ID.
// The sorted order is what lets ContainsAll, UtilityOf and ProbabilityOf run
// as linear two-pointer merges.
type Transaction struct {
	items           []Item
	ids             []int
	utility         float64
	expectedUtility float64
}

// NewTransaction copies items, sorts them by ID and caches the ID slice and
// the expected transaction utility. transactionUtility is the raw TU column
// of the input file and is kept for reporting only.
// Panics if two items share an ID.
func NewTransaction(items []Item, transactionUtility float64) *Transaction {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	t := &Transaction{
		items:   sorted,
		ids:     make([]int, len(sorted)),
		utility: transactionUtility,
	}
	for i, it := range sorted {
		if i > 0 && sorted[i-1].ID == it.ID {
			panic(fmt.Sprintf("NewTransaction: duplicate item id %d", it.ID))
		}
		t.ids[i] = it.ID
		t.expectedUtility += it.ExpectedUtility()
	}
	return t
}

// Items returns the sorted items. Callers MUST NOT modify the returned slice.
func (t *Transaction) Items() []Item {
	return t.items
}

// IDs returns the sorted item IDs. Callers MUST NOT modify the returned slice.
func (t *Transaction) IDs() []int {
	return t.ids
}

// Len returns the number of items in the transaction.
func (t *Transaction) Len() int {
	return len(t.items)
}

// Utility returns the raw transaction utility read from the input.
func (t *Transaction) Utility() float64 {
	return t.utility
}

// ExpectedUtility returns the sum of the expected utilities of all items.
func (t *Transaction) ExpectedUtility() float64 {
	return t.expectedUtility
}

// ContainsAll reports whether every ID in candidate (sorted ascending) is in t.
func (t *Transaction) ContainsAll(candidate []int) bool {
	return IsSubsetSorted(candidate, t.ids)
}

// UtilityOf returns the expected utility of candidate in t:
// (Σ utility) × (Π probability) when t contains all of candidate, 0 otherwise.
// candidate must be sorted ascending.
func (t *Transaction) UtilityOf(candidate []int) float64 {
	sum, prod, ok := t.match(candidate)
	if !ok {
		return 0
	}
	return sum * prod
}

// ProbabilityOf returns Π probability of candidate in t, or 0 when t does not
// contain all of candidate. candidate must be sorted ascending.
func (t *Transaction) ProbabilityOf(candidate []int) float64 {
	_, prod, ok := t.match(candidate)
	if !ok {
		return 0
	}
	return prod
}

func (t *Transaction) match(candidate []int) (sum, prod float64, ok bool) {
	prod = 1.0
	i, j := 0, 0
	for i < len(candidate) && j < len(t.items) {
		id := t.items[j].ID
		switch {
		case id < candidate[i]:
			j++
		case id == candidate[i]:
			sum += t.items[j].Utility
			prod *= t.items[j].Probability
			i++
			j++
		default:
			return 0, 0, false
		}
	}
	if i != len(candidate) {
		return 0, 0, false
	}
	return sum, prod, true
}
