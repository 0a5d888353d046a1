package syntaxtree

import "github.com/coregx/lexgen/internal/sparse"

// FollowposTable maps each tree position to the set of positions that may
// follow it in some string matched by the pattern.
type FollowposTable struct {
	sets []*sparse.Set // indexed by position, 1-based; index 0 unused
}

// Followpos returns the sorted follow-set of position p.
func (f *FollowposTable) Followpos(p uint32) []uint32 {
	return f.sets[p].Sorted()
}

// ComputeFollowpos walks the tree in post-order: a Concat node propagates
// lastpos(left) -> firstpos(right) into followpos for every position in
// lastpos(left); a Star node propagates lastpos(child) -> firstpos(child)
// the same way. Every other node kind contributes nothing. Each position's
// follow-set is accumulated in a sparse.Set sized to the tree's (now
// fixed) position count, then frozen via Followpos for lookup.
func ComputeFollowpos(t *Tree) *FollowposTable {
	n := t.NumPositions()
	table := &FollowposTable{sets: make([]*sparse.Set, n+1)}
	for p := uint32(1); p <= n; p++ {
		table.sets[p] = sparse.New(n + 1)
	}

	var walk func(id NodeID)
	walk = func(id NodeID) {
		if id == InvalidNode {
			return
		}
		nd := t.nodes[id]
		switch nd.kind {
		case nodeConcat:
			walk(nd.left)
			walk(nd.right)
			for _, p := range t.Lastpos(nd.left) {
				for _, q := range t.Firstpos(nd.right) {
					table.sets[p].Insert(q)
				}
			}
		case nodeAlt:
			walk(nd.left)
			walk(nd.right)
		case nodeStar:
			walk(nd.child)
			for _, p := range t.Lastpos(nd.child) {
				for _, q := range t.Firstpos(nd.child) {
					table.sets[p].Insert(q)
				}
			}
		}
	}
	walk(t.root)
	return table
}
