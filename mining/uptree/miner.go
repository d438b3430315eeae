// Package uptree implements U-TKU, the tree-growth engine.
//
// Transactions are inserted into an arena prefix tree ordered by descending
// ETWU. Every node accumulates the path utility of the transactions through
// it (the expected utility of the items from the root down to the node), so
// the sum over an item's chain bounds the expected utility of every pattern
// that ends with the item. Candidates that clear the threshold are verified
// against the dataset before they reach the Top-K buffer.
package uptree

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/topk-chui/mining"
)

// Name is the registry name of the engine.
const Name = "U-TKU"

// Miner is the U-TKU engine. It holds no state between runs.
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
	tree := buildTree(db, etwu, topk.MinUtility())
	logrus.Debugf("%s: global tree has %d nodes, %d items", Name, tree.Len(), len(tree.header))

	s := &search{ctx: ctx, db: db, etwu: etwu, topk: topk}
	return s.mine(tree, nil)
}

// buildTree inserts every transaction, restricted to items whose ETWU clears
// threshold, in descending ETWU order (ties ascending ID).
func buildTree(db *mining.Dataset, etwu mining.ETWU, threshold float64) *Tree {
	tree := newTree()
	items := make([]mining.Item, 0)
	path := make([]pathItem, 0)
	for _, t := range db.Transactions {
		items = items[:0]
		for _, it := range t.Items() {
			if mining.GreaterOrEqual(etwu.Of(it.ID), threshold) {
				items = append(items, it)
			}
		}
		sort.Slice(items, func(i, j int) bool {
			a, b := etwu.Of(items[i].ID), etwu.Of(items[j].ID)
			if a != b {
				return a > b
			}
			return items[i].ID < items[j].ID
		})

		path = path[:0]
		acc := 0.0
		for _, it := range items {
			acc += it.ExpectedUtility()
			path = append(path, pathItem{item: it.ID, utility: acc, probability: it.Probability})
		}
		if len(path) > 0 {
			tree.addPath(path)
		}
	}
	return tree
}

type search struct {
	ctx  context.Context
	db   *mining.Dataset
	etwu mining.ETWU
	topk *mining.TopK
}

// mine grows prefix with every item of tree, ascending by ETWU.
func (s *search) mine(tree *Tree, prefix []int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	items := tree.items()
	sort.Slice(items, func(i, j int) bool { return s.etwu.Less(items[i], items[j]) })

	for _, item := range items {
		if !mining.GreaterOrEqual(tree.estimate(item), s.topk.MinUtility()) {
			continue
		}
		pattern := mining.Extend(prefix, item)

		candidate := mining.NewItemset(pattern, 0, 0)
		candidate.Utility, candidate.ExpectedSupport = s.verify(candidate.Items)
		if mining.GreaterOrEqual(candidate.Utility, s.topk.MinUtility()) {
			s.topk.Save(candidate)
		}

		ct := tree.conditional(item)
		if ct.empty() {
			continue
		}
		if err := s.mine(ct, pattern); err != nil {
			return err
		}
	}
	return nil
}

// verify returns the exact expected utility and expected support of items
// (sorted ascending) over the whole dataset.
func (s *search) verify(items []int) (utility, support float64) {
	for _, t := range s.db.Transactions {
		if !t.ContainsAll(items) {
			continue
		}
		utility += t.UtilityOf(items)
		support += t.ProbabilityOf(items)
	}
	return utility, support
}
