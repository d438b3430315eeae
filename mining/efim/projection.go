package efim

import (
	"sort"

	"github.com/inference-sim/topk-chui/mining"
)

// projected is a transaction restricted to the items that may still extend
// the current prefix. Items are kept in parallel slices, ascending by ETWU.
type projected struct {
	items         []int
	utilities     []float64
	probabilities []float64

	weight            float64 // bound on any extension within this transaction
	prefixUtility     float64 // Σ raw utility of the prefix
	prefixProbability float64 // Π probability of the prefix
}

// project converts db into level-zero projections.
func project(db *mining.Dataset, etwu mining.ETWU) []*projected {
	out := make([]*projected, 0, db.Len())
	for _, t := range db.Transactions {
		items := append([]mining.Item(nil), t.Items()...)
		sort.Slice(items, func(i, j int) bool { return etwu.Less(items[i].ID, items[j].ID) })

		p := &projected{
			items:             make([]int, len(items)),
			utilities:         make([]float64, len(items)),
			probabilities:     make([]float64, len(items)),
			weight:            t.ExpectedUtility(),
			prefixProbability: 1,
		}
		for i, it := range items {
			p.items[i] = it.ID
			p.utilities[i] = it.Utility
			p.probabilities[i] = it.Probability
		}
		out = append(out, p)
	}
	return out
}

// indexOf returns the position of item, or -1.
func (p *projected) indexOf(item int) int {
	for i, id := range p.items {
		if id == item {
			return i
		}
	}
	return -1
}

// extend projects p on the item at idx, keeping the later items accepted by
// keep. Returns nil when nothing is kept.
func (p *projected) extend(idx int, keep func(item int) bool) *projected {
	var next *projected
	remaining := 0.0
	for z := idx + 1; z < len(p.items); z++ {
		if !keep(p.items[z]) {
			continue
		}
		if next == nil {
			next = &projected{
				prefixUtility:     p.prefixUtility + p.utilities[idx],
				prefixProbability: p.prefixProbability * p.probabilities[idx],
			}
		}
		next.items = append(next.items, p.items[z])
		next.utilities = append(next.utilities, p.utilities[z])
		next.probabilities = append(next.probabilities, p.probabilities[z])
		remaining += p.utilities[z] * p.probabilities[z]
	}
	if next != nil {
		next.weight = next.prefixUtility*next.prefixProbability + remaining
	}
	return next
}
