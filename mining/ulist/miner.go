// Package ulist implements U-TKO, the utility-list join engine.
//
// Every pattern is represented by a list of its occurrences. Extensions are
// built by joining two sibling lists on TID, so the dataset is scanned only
// once to build the single-item lists.
package ulist

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/topk-chui/mining"
)

// Name is the registry name of the engine.
const Name = "U-TKO"

// Miner is the U-TKO engine. It holds no state between runs.
type Miner struct{}

// New creates the engine.
func New() *Miner {
	return &Miner{}
}

// Name implements mining.Miner.
func (m *Miner) Name() string {
	return Name
}

// Mine implements mining.Miner.
func (m *Miner) Mine(ctx context.Context, db *mining.Dataset, topk *mining.TopK) error {
	lists := buildLists(db, db.ETWU())
	logrus.Debugf("%s: built %d single-item lists", Name, len(lists))

	s := &search{ctx: ctx, topk: topk}
	return s.run(lists, nil, nil)
}

// buildLists returns one list per item, ordered ascending by ETWU (ties
// ascending ID). Remaining utilities follow the same order.
func buildLists(db *mining.Dataset, etwu mining.ETWU) []*UtilityList {
	order := make([]int, 0, len(etwu))
	for item := range etwu {
		order = append(order, item)
	}
	sort.Slice(order, func(i, j int) bool { return etwu.Less(order[i], order[j]) })

	rank := make(map[int]int, len(order))
	lists := make([]*UtilityList, len(order))
	for r, item := range order {
		rank[item] = r
		lists[r] = NewUtilityList(item)
	}

	ranked := make([]mining.Item, 0)
	for tid, t := range db.Transactions {
		ranked = append(ranked[:0], t.Items()...)
		sort.Slice(ranked, func(i, j int) bool { return rank[ranked[i].ID] < rank[ranked[j].ID] })

		remaining := 0.0
		for i := len(ranked) - 1; i >= 0; i-- {
			it := ranked[i]
			lists[rank[it.ID]].Add(Element{
				TID:         tid,
				Utility:     it.Utility,
				Probability: it.Probability,
				Remaining:   remaining,
			})
			remaining += it.ExpectedUtility()
		}
	}
	return lists
}

type search struct {
	ctx  context.Context
	topk *mining.TopK
}

// run explores the extensions of prefix. lists are the lists of prefix+X for
// every candidate X, in rank order; prefixList is the list of prefix.
func (s *search) run(lists []*UtilityList, prefix []int, prefixList *UtilityList) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	for i, x := range lists {
		if mining.Less(x.UpperBound(), s.topk.MinUtility()) {
			continue
		}
		pattern := mining.Extend(prefix, x.Item)
		if mining.GreaterOrEqual(x.SumExpectedUtility, s.topk.MinUtility()) {
			s.topk.Save(mining.NewItemset(pattern, x.SumExpectedUtility, x.ExpectedSupport))
		}
		if !mining.GreaterOrEqual(x.UpperBound(), s.topk.MinUtility()) {
			continue
		}

		var next []*UtilityList
		for _, y := range lists[i+1:] {
			// z's bound omits items ranked between x and y, so it cannot
			// prune joins through z; z itself is tested on the next call.
			if z := Join(x, y, prefixList); z != nil {
				next = append(next, z)
			}
		}
		if len(next) == 0 {
			continue
		}
		if err := s.run(next, pattern, x); err != nil {
			return err
		}
	}
	return nil
}
