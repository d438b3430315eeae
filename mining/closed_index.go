package mining

import "sort"

// ClosedIndex groups the buffered itemsets by expected support so the
// closedness check only compares a candidate with itemsets of equal support.
//
// Supports are floats, so buckets are matched within Epsilon instead of being
// used as exact map keys. Buckets are kept sorted by support; a lookup
// binary-searches to the first bucket at or above support-Epsilon and checks
// it for an epsilon match.
type ClosedIndex struct {
	buckets []*supportBucket
	size    int
}

type supportBucket struct {
	support float64
	members []*Itemset
}

// NewClosedIndex creates an empty index.
func NewClosedIndex() *ClosedIndex {
	return &ClosedIndex{buckets: make([]*supportBucket, 0)}
}

// Len returns the number of indexed itemsets.
func (ci *ClosedIndex) Len() int {
	return ci.size
}

// Buckets returns the number of distinct support buckets.
func (ci *ClosedIndex) Buckets() int {
	return len(ci.buckets)
}

// Members returns the itemsets whose support equals support within Epsilon.
// The returned slice is the bucket's internal storage: callers MUST NOT
// modify it and must copy it before calling Remove while iterating.
func (ci *ClosedIndex) Members(support float64) []*Itemset {
	if i, ok := ci.find(support); ok {
		return ci.buckets[i].members
	}
	return nil
}

// Add indexes s under its expected support.
func (ci *ClosedIndex) Add(s *Itemset) {
	i, ok := ci.find(s.ExpectedSupport)
	if !ok {
		b := &supportBucket{support: s.ExpectedSupport}
		ci.buckets = append(ci.buckets, nil)
		copy(ci.buckets[i+1:], ci.buckets[i:])
		ci.buckets[i] = b
	}
	ci.buckets[i].members = append(ci.buckets[i].members, s)
	ci.size++
}

// Remove drops s (matched by identity) and deletes its bucket once empty.
// Returns false if s was not indexed.
func (ci *ClosedIndex) Remove(s *Itemset) bool {
	i, ok := ci.find(s.ExpectedSupport)
	if !ok {
		return false
	}
	b := ci.buckets[i]
	for j, m := range b.members {
		if m != s {
			continue
		}
		b.members = append(b.members[:j], b.members[j+1:]...)
		ci.size--
		if len(b.members) == 0 {
			ci.buckets = append(ci.buckets[:i], ci.buckets[i+1:]...)
		}
		return true
	}
	return false
}

// find returns the index of the bucket matching support, or the insertion
// position that keeps buckets sorted when there is none.
func (ci *ClosedIndex) find(support float64) (int, bool) {
	i := sort.Search(len(ci.buckets), func(i int) bool {
		return ci.buckets[i].support >= support-Epsilon
	})
	if i < len(ci.buckets) && Equal(ci.buckets[i].support, support) {
		return i, true
	}
	return i, false
}
