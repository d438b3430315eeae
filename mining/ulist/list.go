package ulist

import (
	"sort"

	"github.com/inference-sim/topk-chui/mining"
)

// Element is the occurrence of a pattern in one transaction.
type Element struct {
	TID         int     // transaction index in the dataset
	Utility     float64 // Σ raw utility of the pattern's items
	Probability float64 // Π probability of the pattern's items
	Remaining   float64 // Σ expected utility of the items ranked after the pattern
}

// UtilityList holds the elements of a pattern ordered by TID, with running
// aggregates kept in step by Add.
type UtilityList struct {
	Item     int // last item of the pattern
	Elements []Element

	SumExpectedUtility float64 // Σ Utility × Probability
	SumRemaining       float64 // Σ Remaining
	ExpectedSupport    float64 // Σ Probability
}

// NewUtilityList creates an empty list for item.
func NewUtilityList(item int) *UtilityList {
	return &UtilityList{Item: item}
}

// Add appends e. Elements must be added in ascending TID order.
func (l *UtilityList) Add(e Element) {
	l.Elements = append(l.Elements, e)
	l.SumExpectedUtility += e.Utility * e.Probability
	l.SumRemaining += e.Remaining
	l.ExpectedSupport += e.Probability
}

// Len returns the number of elements.
func (l *UtilityList) Len() int {
	return len(l.Elements)
}

// UpperBound bounds the expected utility of the pattern and all its
// extensions.
func (l *UtilityList) UpperBound() float64 {
	return l.SumExpectedUtility + l.SumRemaining
}

// find returns the element of tid, if any.
func (l *UtilityList) find(tid int) (Element, bool) {
	i := sort.Search(len(l.Elements), func(i int) bool { return l.Elements[i].TID >= tid })
	if i < len(l.Elements) && l.Elements[i].TID == tid {
		return l.Elements[i], true
	}
	return Element{}, false
}

// Join builds the list of prefix ∪ {x.Item, y.Item} from the lists of
// prefix+x and prefix+y. prefix is the list of the shared prefix, nil at the
// first level. The shared prefix is counted once: its utility is subtracted
// and its probability divided out. Returns nil when no transaction holds
// both patterns.
func Join(x, y, prefix *UtilityList) *UtilityList {
	var z *UtilityList
	i, j := 0, 0
	for i < len(x.Elements) && j < len(y.Elements) {
		ex, ey := x.Elements[i], y.Elements[j]
		switch {
		case ex.TID < ey.TID:
			i++
			continue
		case ex.TID > ey.TID:
			j++
			continue
		}
		i++
		j++

		prefixUtility, prefixProb := 0.0, 1.0
		if prefix != nil {
			if ep, ok := prefix.find(ex.TID); ok {
				prefixUtility, prefixProb = ep.Utility, ep.Probability
			}
		}
		prob := 0.0
		if mining.Greater(prefixProb, 0) {
			prob = ex.Probability * ey.Probability / prefixProb
		}
		if z == nil {
			z = NewUtilityList(y.Item)
		}
		z.Add(Element{
			TID:         ex.TID,
			Utility:     ex.Utility + ey.Utility - prefixUtility,
			Probability: prob,
			Remaining:   ey.Remaining,
		})
	}
	return z
}
