// Package syntaxtree turns a postfix token stream into a marked-position
// syntax tree with computed nullable/firstpos/lastpos attributes, and the
// followpos table derived from it. Package dfa consumes a *Tree and a
// FollowposTable; it never sees the original token stream.
package syntaxtree

import (
	"fmt"

	"github.com/coregx/lexgen/internal/conv"
	"github.com/coregx/lexgen/regexsyntax"
)

// NodeID indexes a node in a Tree's arena. The arena-plus-integer-id
// discipline avoids a pointer graph and keeps per-node attributes
// (nullable, firstpos, lastpos) as parallel slices indexed by NodeID.
type NodeID uint32

// InvalidNode marks the absence of a node.
const InvalidNode NodeID = 0xFFFFFFFF

type nodeKind uint8

const (
	nodeLeaf nodeKind = iota
	nodeEpsilon
	nodeConcat
	nodeAlt
	nodeStar
)

// Symbol identifies what a leaf position matches: either an ordinary code
// point, or the reserved end-of-pattern marker.
type Symbol struct {
	Rune   rune
	Marker bool
}

func (s Symbol) String() string {
	if s.Marker {
		return "#"
	}
	return fmt.Sprintf("%q", s.Rune)
}

type node struct {
	kind nodeKind

	// nodeLeaf
	symbol   Symbol
	position uint32 // 1-based; 0 means "no position" (non-leaf nodes)

	// nodeConcat, nodeAlt
	left, right NodeID

	// nodeStar
	child NodeID
}

// Tree is the arena-owned marked syntax tree for one compiled pattern.
// Once built it is immutable; MalformedPostfix is the only error Build
// can return, since a well-formed postfix stream always yields exactly
// one node on the stack.
type Tree struct {
	nodes    []node
	nullable []bool
	firstpos [][]uint32
	lastpos  [][]uint32
	posSym   []Symbol // indexed by position, 1-based (index 0 unused)
	root     NodeID
}

// Root returns the tree's root node.
func (t *Tree) Root() NodeID { return t.root }

// NumPositions returns the number of leaf positions allocated, i.e. the
// highest valid position id.
func (t *Tree) NumPositions() uint32 {
	return uint32(len(t.posSym) - 1)
}

// Symbol returns the leaf symbol at position p (1-based).
func (t *Tree) Symbol(p uint32) Symbol { return t.posSym[p] }

// Nullable reports whether the language of node n contains the empty string.
func (t *Tree) Nullable(n NodeID) bool { return t.nullable[n] }

// Firstpos returns the firstpos set of node n as a sorted slice of
// positions. The returned slice must not be mutated.
func (t *Tree) Firstpos(n NodeID) []uint32 { return t.firstpos[n] }

// Lastpos returns the lastpos set of node n as a sorted slice of
// positions. The returned slice must not be mutated.
func (t *Tree) Lastpos(n NodeID) []uint32 { return t.lastpos[n] }

// builder accumulates tree nodes and their attributes while consuming a
// postfix token stream.
type builder struct {
	t *Tree
}

func newBuilder() *builder {
	return &builder{t: &Tree{posSym: []Symbol{{}}}} // position 0 is a dummy slot
}

func (b *builder) alloc(n node, nullable bool, firstpos, lastpos []uint32) NodeID {
	id := NodeID(conv.IntToUint32(len(b.t.nodes)))
	b.t.nodes = append(b.t.nodes, n)
	b.t.nullable = append(b.t.nullable, nullable)
	b.t.firstpos = append(b.t.firstpos, firstpos)
	b.t.lastpos = append(b.t.lastpos, lastpos)
	return id
}

// newLeaf allocates a fresh position and a leaf node for it.
func (b *builder) newLeaf(sym Symbol) NodeID {
	pos := conv.IntToUint32(len(b.t.posSym))
	b.t.posSym = append(b.t.posSym, sym)
	return b.alloc(node{kind: nodeLeaf, symbol: sym, position: pos}, false, []uint32{pos}, []uint32{pos})
}

// newEpsilon allocates a nullable leaf that contributes no position to
// firstpos/lastpos, the classical Aho-style formulation of A?. An explicit
// positioned ε leaf would inflate the DFA's position-set universe with
// positions that can never participate in a real transition.
func (b *builder) newEpsilon() NodeID {
	return b.alloc(node{kind: nodeEpsilon}, true, nil, nil)
}

func (b *builder) newConcat(left, right NodeID) NodeID {
	t := b.t
	nullable := t.nullable[left] && t.nullable[right]
	first := t.firstpos[left]
	if t.nullable[left] {
		first = unionSorted(first, t.firstpos[right])
	}
	last := t.lastpos[right]
	if t.nullable[right] {
		last = unionSorted(t.lastpos[left], last)
	}
	return b.alloc(node{kind: nodeConcat, left: left, right: right}, nullable, first, last)
}

func (b *builder) newAlt(left, right NodeID) NodeID {
	t := b.t
	nullable := t.nullable[left] || t.nullable[right]
	first := unionSorted(t.firstpos[left], t.firstpos[right])
	last := unionSorted(t.lastpos[left], t.lastpos[right])
	return b.alloc(node{kind: nodeAlt, left: left, right: right}, nullable, first, last)
}

func (b *builder) newStar(child NodeID) NodeID {
	t := b.t
	return b.alloc(node{kind: nodeStar, child: child}, true, t.firstpos[child], t.lastpos[child])
}

// duplicate deep-copies the subtree rooted at n, allocating fresh
// positions for every leaf it contains. Used by '+' desugaring
// (A+ -> A . A*), which must never let the two occurrences of A alias
// positions: aliased positions would conflate followpos contributions
// from what are semantically two distinct places in the matched string.
func (b *builder) duplicate(n NodeID) NodeID {
	orig := b.t.nodes[n]
	switch orig.kind {
	case nodeLeaf:
		return b.newLeaf(orig.symbol)
	case nodeEpsilon:
		return b.newEpsilon()
	case nodeConcat:
		return b.newConcat(b.duplicate(orig.left), b.duplicate(orig.right))
	case nodeAlt:
		return b.newAlt(b.duplicate(orig.left), b.duplicate(orig.right))
	case nodeStar:
		return b.newStar(b.duplicate(orig.child))
	default:
		panic("syntaxtree: unknown node kind")
	}
}

// Build consumes a postfix token stream (as produced by
// regexsyntax.ToPostfix) and constructs the corresponding marked syntax
// tree, desugaring '+' and '?' as it goes. pattern is carried through only
// for error messages.
func Build(pattern string, postfix []regexsyntax.Token) (*Tree, error) {
	b := newBuilder()
	var stack []NodeID

	pop := func() (NodeID, error) {
		if len(stack) == 0 {
			return InvalidNode, &regexsyntax.StructuralError{Pattern: pattern, Err: regexsyntax.ErrMalformedPostfix}
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case regexsyntax.TokLiteral:
			stack = append(stack, b.newLeaf(Symbol{Rune: tok.Rune, Marker: tok.Marker}))

		case regexsyntax.TokConcat:
			right, err := pop()
			if err != nil {
				return nil, err
			}
			left, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, b.newConcat(left, right))

		case regexsyntax.TokAlt:
			right, err := pop()
			if err != nil {
				return nil, err
			}
			left, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, b.newAlt(left, right))

		case regexsyntax.TokStar:
			child, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, b.newStar(child))

		case regexsyntax.TokPlus:
			// A+ -> A . A*, with A' a fresh, non-aliased duplicate of A.
			a, err := pop()
			if err != nil {
				return nil, err
			}
			dup := b.duplicate(a)
			stack = append(stack, b.newConcat(a, b.newStar(dup)))

		case regexsyntax.TokQuestion:
			// A? -> A | ε
			a, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, b.newAlt(a, b.newEpsilon()))

		default:
			return nil, &regexsyntax.StructuralError{Pattern: pattern, Err: regexsyntax.ErrMalformedPostfix}
		}
	}

	if len(stack) != 1 {
		return nil, &regexsyntax.StructuralError{Pattern: pattern, Err: regexsyntax.ErrMalformedPostfix}
	}
	b.t.root = stack[0]
	return b.t, nil
}

// unionSorted merges two ascending, duplicate-free slices into a new
// ascending, duplicate-free slice.
func unionSorted(a, b []uint32) []uint32 {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]uint32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
