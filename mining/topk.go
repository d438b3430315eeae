package mining

import (
	"container/heap"

	"github.com/inference-sim/topk-chui/mining/trace"
)

// TopK is the bounded buffer shared by every engine. It keeps the K closed
// itemsets of highest expected utility found so far and exposes the rising
// pruning threshold MinUtility.
//
// A TopK belongs to a single run and is mutated only by the goroutine that
// runs the search; it is not safe for concurrent use.
type TopK struct {
	k          int
	heap       *itemsetHeap
	index      *ClosedIndex
	minUtility float64
	trace      *trace.MiningTrace
}

// NewTopK creates an empty buffer of capacity k. tr may be nil.
func NewTopK(k int, tr *trace.MiningTrace) *TopK {
	h := &itemsetHeap{pos: make(map[*Itemset]int)}
	heap.Init(h)
	return &TopK{
		k:     k,
		heap:  h,
		index: NewClosedIndex(),
		trace: tr,
	}
}

// K returns the buffer capacity.
func (t *TopK) K() int {
	return t.k
}

// Len returns the number of buffered itemsets.
func (t *TopK) Len() int {
	return t.heap.Len()
}

// Full reports whether the buffer holds K itemsets.
func (t *TopK) Full() bool {
	return t.heap.Len() >= t.k
}

// MinUtility returns the current pruning threshold. It is 0 until the buffer
// first fills up, then the utility of the weakest buffered itemset.
func (t *TopK) MinUtility() float64 {
	return t.minUtility
}

// Itemsets returns a sorted copy of the buffer (see SortItemsets).
func (t *TopK) Itemsets() []*Itemset {
	out := make([]*Itemset, len(t.heap.sets))
	copy(out, t.heap.sets)
	SortItemsets(out)
	return out
}

// Save offers a candidate to the buffer and reports whether it was admitted.
//
// A candidate is rejected when the buffer is full and it does not beat the
// threshold, when a buffered superset has the same expected support, or when
// it does not beat the buffer minimum. Buffered subsets with the same
// expected support are removed before admission, so the buffer stays a
// closed antichain.
func (t *TopK) Save(c *Itemset) bool {
	if c == nil {
		panic("TopK.Save: candidate must not be nil")
	}
	if t.k <= 0 || (t.Full() && !Greater(c.Utility, t.minUtility)) {
		t.record(c, trace.OutcomeBelowThreshold, nil, 0)
		return false
	}

	members := t.index.Members(c.ExpectedSupport)
	for _, e := range members {
		if IsSubsetSorted(c.Items, e.Items) {
			t.record(c, trace.OutcomeNotClosed, nil, 0)
			return false
		}
	}
	dominated := 0
	for _, e := range append([]*Itemset(nil), members...) {
		if IsSubsetSorted(e.Items, c.Items) {
			t.heap.remove(e)
			t.index.Remove(e)
			dominated++
		}
	}

	evicted, ok := t.admit(c)
	if !ok {
		t.record(c, trace.OutcomeNotBetter, nil, dominated)
		return false
	}
	t.index.Add(c)
	var evictedItems []int
	if evicted != nil {
		t.index.Remove(evicted)
		evictedItems = evicted.Items
	}
	if t.Full() {
		t.minUtility = t.heap.min().Utility
	}
	t.record(c, trace.OutcomeAdmitted, evictedItems, dominated)
	return true
}

// admit inserts c, evicting the minimum when at capacity and c is strictly
// better. Returns the evicted itemset (nil if none) and whether c went in.
func (t *TopK) admit(c *Itemset) (*Itemset, bool) {
	if t.heap.Len() < t.k {
		heap.Push(t.heap, c)
		return nil, true
	}
	bottom := t.heap.min()
	if c.Compare(bottom) <= 0 {
		return nil, false
	}
	evicted := heap.Pop(t.heap).(*Itemset)
	heap.Push(t.heap, c)
	return evicted, true
}

func (t *TopK) record(c *Itemset, outcome trace.Outcome, evicted []int, dominated int) {
	if t.trace == nil {
		return
	}
	t.trace.RecordSave(trace.SaveRecord{
		Items:           c.Items,
		Utility:         c.Utility,
		ExpectedSupport: c.ExpectedSupport,
		Outcome:         outcome,
		Evicted:         evicted,
		Dominated:       dominated,
		Threshold:       t.minUtility,
	})
}

// itemsetHeap implements heap.Interface as a min-heap by utility.
// Ordering: utility (epsilon-aware, lower first) → item sequence (higher
// first), so ties evict the lexicographically larger itemset.
type itemsetHeap struct {
	sets []*Itemset
	pos  map[*Itemset]int
}

// Len implements heap.Interface
func (h *itemsetHeap) Len() int {
	return len(h.sets)
}

// Less implements heap.Interface
func (h *itemsetHeap) Less(i, j int) bool {
	a, b := h.sets[i], h.sets[j]
	if c := a.Compare(b); c != 0 {
		return c < 0
	}
	return compareItems(a.Items, b.Items) > 0
}

// Swap implements heap.Interface
func (h *itemsetHeap) Swap(i, j int) {
	h.sets[i], h.sets[j] = h.sets[j], h.sets[i]
	h.pos[h.sets[i]] = i
	h.pos[h.sets[j]] = j
}

// Push implements heap.Interface
func (h *itemsetHeap) Push(x interface{}) {
	s := x.(*Itemset)
	h.pos[s] = len(h.sets)
	h.sets = append(h.sets, s)
}

// Pop implements heap.Interface
func (h *itemsetHeap) Pop() interface{} {
	old := h.sets
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	h.sets = old[0 : n-1]
	delete(h.pos, s)
	return s
}

func (h *itemsetHeap) min() *Itemset {
	if len(h.sets) == 0 {
		return nil
	}
	return h.sets[0]
}

// remove drops s (matched by identity) from anywhere in the heap.
func (h *itemsetHeap) remove(s *Itemset) bool {
	i, ok := h.pos[s]
	if !ok {
		return false
	}
	heap.Remove(h, i)
	return true
}
