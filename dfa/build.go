package dfa

import (
	"sort"

	"github.com/coregx/lexgen/internal/conv"
	"github.com/coregx/lexgen/internal/sparse"
	"github.com/coregx/lexgen/syntaxtree"
)

// Build performs direct (followpos-based) DFA construction:
// the start state is firstpos(root); for each discovered state T and each
// symbol a in the alphabet, the successor is the union of followpos(p)
// for every position p in T whose leaf symbol is a. States are
// canonicalized by their position set, discovered breadth-first in a
// single pass with no intermediate NFA. cfg.MaxStates <= 0 means
// unlimited.
func Build(tree *syntaxtree.Tree, fp *syntaxtree.FollowposTable, cfg Config) (*DFA, error) {
	n := tree.NumPositions()

	alphabet, symIndex := collectAlphabet(tree, n)

	d := &DFA{
		Alphabet:  alphabet,
		symIndex:  symIndex,
		Initial:   0,
		Accepting: make(map[StateID]bool),
	}

	discovered := make(map[string]StateID)

	addState := func(set PositionSet) StateID {
		id := StateID(conv.IntToUint32(len(d.States)))
		d.States = append(d.States, set)
		d.Trans = append(d.Trans, newRow(len(alphabet)))
		discovered[encodeKey(set)] = id
		return id
	}

	start := PositionSet(tree.Firstpos(tree.Root()))
	addState(start)

	// Per-symbol accumulators, reused across iterations and sized once the
	// position universe is fixed; this is the followpos-union case sparse
	// sets are meant for, unlike firstpos/lastpos which must accumulate
	// before the position count is final.
	accum := make([]*sparse.Set, len(alphabet))
	for i := range accum {
		accum[i] = sparse.New(n + 1)
	}

	for i := 0; i < len(d.States); i++ {
		if cfg.MaxStates > 0 && len(d.States) > cfg.MaxStates {
			return nil, ErrTooManyStates
		}
		T := d.States[i]
		for _, acc := range accum {
			acc.Clear()
		}
		for _, p := range T {
			sym := tree.Symbol(p)
			if sym.Marker {
				continue
			}
			idx := symIndex[sym.Rune]
			for _, q := range fp.Followpos(p) {
				accum[idx].Insert(q)
			}
		}
		for idx, acc := range accum {
			if acc.IsEmpty() {
				continue
			}
			u := acc.Sorted()
			key := encodeKey(u)
			target, ok := discovered[key]
			if !ok {
				target = addState(PositionSet(u))
			}
			d.Trans[i][idx] = target
		}
	}

	markAccepting(d, tree, n)

	return d, nil
}

// collectAlphabet gathers the sorted, de-duplicated set of non-marker
// runes appearing at any leaf position, and its rune->index map.
func collectAlphabet(tree *syntaxtree.Tree, n uint32) ([]rune, map[rune]int) {
	seen := make(map[rune]bool)
	for p := uint32(1); p <= n; p++ {
		sym := tree.Symbol(p)
		if !sym.Marker {
			seen[sym.Rune] = true
		}
	}
	alphabet := make([]rune, 0, len(seen))
	for r := range seen {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	symIndex := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		symIndex[r] = i
	}
	return alphabet, symIndex
}

func newRow(width int) []StateID {
	row := make([]StateID, width)
	for i := range row {
		row[i] = InvalidState
	}
	return row
}

// markAccepting flags every state whose position set contains a marker
// position. If the tree has no marker leaf at all (should not happen for
// a well-formed "pattern#" tree, but defensive against a caller that built
// a tree without one), fall back to marking states containing the
// highest-numbered position, matching the classic textbook treatment of
// the rightmost position as standing in for "end of pattern".
func markAccepting(d *DFA, tree *syntaxtree.Tree, n uint32) {
	hasMarker := false
	for p := uint32(1); p <= n; p++ {
		if tree.Symbol(p).Marker {
			hasMarker = true
			break
		}
	}
	for id, set := range d.States {
		for _, p := range set {
			sym := tree.Symbol(p)
			if (hasMarker && sym.Marker) || (!hasMarker && p == n) {
				d.Accepting[StateID(id)] = true
				break
			}
		}
	}
}
