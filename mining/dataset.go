package mining

import "fmt"

// Dataset is the ordered collection of transactions mined by every engine.
// It is built once by a loader and read-only afterwards.
type Dataset struct {
	Transactions []*Transaction
	MaxItemID    int
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Transactions: make([]*Transaction, 0)}
}

// Add appends a transaction and tracks the largest item ID seen.
func (d *Dataset) Add(t *Transaction) {
	if t == nil {
		panic("Dataset.Add: transaction must not be nil")
	}
	d.Transactions = append(d.Transactions, t)
	if ids := t.IDs(); len(ids) > 0 && ids[len(ids)-1] > d.MaxItemID {
		d.MaxItemID = ids[len(ids)-1]
	}
}

// Len returns the number of transactions.
func (d *Dataset) Len() int {
	return len(d.Transactions)
}

// ETWU computes the expected transaction-weighted utilization of every item:
// the sum of ExpectedUtility over the transactions containing it. It bounds
// the expected utility of any itemset that contains the item.
func (d *Dataset) ETWU() ETWU {
	etwu := make(ETWU)
	for _, t := range d.Transactions {
		etu := t.ExpectedUtility()
		for _, id := range t.IDs() {
			etwu[id] += etu
		}
	}
	return etwu
}

// ETWU maps item ID to its expected transaction-weighted utilization.
type ETWU map[int]float64

// Of returns the ETWU of item. Panics if the item was never seen while the
// table was built: every engine only asks about items taken from the same
// dataset, so a miss is an internal invariant breach.
func (e ETWU) Of(item int) float64 {
	v, ok := e[item]
	if !ok {
		panic(fmt.Sprintf("ETWU.Of: item %d not in table", item))
	}
	return v
}

// Less orders items ascending by ETWU, then ascending by ID for determinism.
// Float != is safe: equal sums must tie to the ID order, not to an epsilon.
func (e ETWU) Less(a, b int) bool {
	ea, eb := e.Of(a), e.Of(b)
	if ea != eb {
		return ea < eb
	}
	return a < b
}
