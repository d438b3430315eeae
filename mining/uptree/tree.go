package uptree

import "slices"

// noNode marks an absent parent, child, sibling or link.
const noNode int32 = -1

// root is the arena index of the root node of every tree.
const root int32 = 0

// node is one arena slot. All links are arena indices, never pointers.
type node struct {
	item        int
	utility     float64 // accumulated node utility
	support     float64 // accumulated prefix probability product
	parent      int32
	firstChild  int32
	nextSibling int32
	link        int32 // next node carrying the same item
}

// chain is a header table entry: the first and last node of an item.
type chain struct {
	first, last int32
}

// pathItem is one step of a path inserted with addPath.
type pathItem struct {
	item        int
	utility     float64
	probability float64
}

// Tree is an arena-backed prefix tree. Nodes of the same item are chained
// through link, starting at the header table entry of the item.
type Tree struct {
	nodes  []node
	header map[int]chain
}

func newTree() *Tree {
	t := &Tree{
		nodes:  make([]node, 1, 64),
		header: make(map[int]chain),
	}
	t.nodes[root] = node{item: -1, parent: noNode, firstChild: noNode, nextSibling: noNode, link: noNode}
	return t
}

// Len returns the number of nodes, root excluded.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// empty reports whether the root has no children.
func (t *Tree) empty() bool {
	return t.nodes[root].firstChild == noNode
}

// addPath inserts path from the root, adding each step's utility to its node
// and the running probability product to its support.
func (t *Tree) addPath(path []pathItem) {
	cur := root
	prob := 1.0
	for _, step := range path {
		prob *= step.probability
		c := t.child(cur, step.item)
		if c == noNode {
			c = t.newChild(cur, step.item)
		}
		t.nodes[c].utility += step.utility
		t.nodes[c].support += prob
		cur = c
	}
}

func (t *Tree) child(parent int32, item int) int32 {
	for c := t.nodes[parent].firstChild; c != noNode; c = t.nodes[c].nextSibling {
		if t.nodes[c].item == item {
			return c
		}
	}
	return noNode
}

func (t *Tree) newChild(parent int32, item int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		item:        item,
		parent:      parent,
		firstChild:  noNode,
		nextSibling: t.nodes[parent].firstChild,
		link:        noNode,
	})
	t.nodes[parent].firstChild = idx

	if c, ok := t.header[item]; ok {
		t.nodes[c.last].link = idx
		c.last = idx
		t.header[item] = c
	} else {
		t.header[item] = chain{first: idx, last: idx}
	}
	return idx
}

// items returns the items of the header table in no particular order.
func (t *Tree) items() []int {
	out := make([]int, 0, len(t.header))
	for item := range t.header {
		out = append(out, item)
	}
	return out
}

// estimate sums the node utility over the chain of item.
func (t *Tree) estimate(item int) float64 {
	sum := 0.0
	for n := t.header[item].first; n != noNode; n = t.nodes[n].link {
		sum += t.nodes[n].utility
	}
	return sum
}

// support sums the prefix probability mass over the chain of item.
func (t *Tree) support(item int) float64 {
	sum := 0.0
	for n := t.header[item].first; n != noNode; n = t.nodes[n].link {
		sum += t.nodes[n].support
	}
	return sum
}

// conditional builds the tree of prefix paths ending at item. Every ancestor
// of an occurrence is inserted with the occurrence's utility and
// probability 1.
func (t *Tree) conditional(item int) *Tree {
	ct := newTree()
	var path []pathItem
	for n := t.header[item].first; n != noNode; n = t.nodes[n].link {
		w := t.nodes[n].utility
		path = path[:0]
		for p := t.nodes[n].parent; p != root; p = t.nodes[p].parent {
			path = append(path, pathItem{item: t.nodes[p].item, utility: w, probability: 1})
		}
		if len(path) == 0 {
			continue
		}
		slices.Reverse(path)
		ct.addPath(path)
	}
	return ct
}
