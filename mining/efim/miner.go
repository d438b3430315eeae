// Package efim implements U-EFIM, the projection-based depth-first engine.
//
// Each level of the search works on projected transactions: the items left
// after the prefix, with the prefix's utility sum and probability product
// carried along. Two per-item bounds computed in one pass over the level
// drive the search: the local utility (exact expected utility of
// prefix+item) and the sub-tree utility (Σ weight of the transactions that
// hold the item), which bounds every extension of prefix+item.
package efim

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/topk-chui/mining"
)

// Name is the registry name of the engine.
const Name = "U-EFIM"

// Miner is the U-EFIM engine. It holds no state between runs.
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
	etwu := db.ETWU()
	level := project(db, etwu)
	logrus.Debugf("%s: projected %d transactions over %d items", Name, len(level), len(etwu))

	s := &search{ctx: ctx, etwu: etwu, topk: topk}
	return s.run(level, nil)
}

type search struct {
	ctx  context.Context
	etwu mining.ETWU
	topk *mining.TopK
}

func (s *search) run(level []*projected, prefix []int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	local := make(map[int]float64)
	subTree := make(map[int]float64)
	for _, t := range level {
		for j, id := range t.items {
			local[id] += (t.prefixUtility + t.utilities[j]) * (t.prefixProbability * t.probabilities[j])
			subTree[id] += t.weight
		}
	}

	secondary := make([]int, 0, len(subTree))
	for id, u := range subTree {
		if mining.GreaterOrEqual(u, s.topk.MinUtility()) {
			secondary = append(secondary, id)
		}
	}
	sort.Slice(secondary, func(i, j int) bool { return s.etwu.Less(secondary[i], secondary[j]) })

	keep := func(item int) bool {
		return mining.GreaterOrEqual(subTree[item], s.topk.MinUtility())
	}
	for _, x := range secondary {
		pattern := mining.Extend(prefix, x)
		if mining.GreaterOrEqual(local[x], s.topk.MinUtility()) {
			s.topk.Save(mining.NewItemset(pattern, local[x], expectedSupport(level, x)))
		}

		var next []*projected
		for _, t := range level {
			idx := t.indexOf(x)
			if idx < 0 {
				continue
			}
			if p := t.extend(idx, keep); p != nil {
				next = append(next, p)
			}
		}
		if len(next) == 0 {
			continue
		}
		if err := s.run(next, pattern); err != nil {
			return err
		}
	}
	return nil
}

// expectedSupport returns Σ prefix probability × probability of item over
// the transactions of level that hold it.
func expectedSupport(level []*projected, item int) float64 {
	sum := 0.0
	for _, t := range level {
		if idx := t.indexOf(item); idx >= 0 {
			sum += t.prefixProbability * t.probabilities[idx]
		}
	}
	return sum
}
