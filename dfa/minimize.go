package dfa

import (
	"fmt"
	"sort"

	"github.com/coregx/lexgen/internal/conv"
)

// block is a set of old StateIDs belonging to the same partition class
// during Hopcroft refinement. Two blocks are compared by pointer identity
// while refinement is in progress (the worklist membership test), never
// by contents.
type block struct {
	states map[StateID]bool
}

// acceptSignature classifies a state for the *initial* partition: states
// that are not accepting form one class; accepting states are further
// split by which rule would win maximal-munch priority among their
// underlying positions, so that minimization of a combined multi-pattern
// automaton never merges two states that must remain
// distinguishable because different rules accept through them. A
// single-pattern DFA (EndMarkerRule == nil) only ever produces one
// accepting signature.
func acceptSignature(d *DFA, s StateID) string {
	if !d.Accepting[s] {
		return "reject"
	}
	if d.EndMarkerRule == nil {
		return "accept"
	}
	best := -1
	for _, p := range d.States[s] {
		if rule, ok := d.EndMarkerRule[p]; ok {
			if best == -1 || rule < best {
				best = rule
			}
		}
	}
	return fmt.Sprintf("accept:%d", best)
}

// Minimize performs Hopcroft partition refinement: states are
// grouped into an initial partition by acceptance signature, then
// repeatedly split using a worklist of splitter blocks until every
// remaining block is transition-consistent for every input symbol.
func Minimize(d *DFA) *DFA {
	n := len(d.States)
	if n == 0 {
		return d
	}

	initial := make(map[string]*block)
	for i := 0; i < n; i++ {
		s := StateID(i)
		sig := acceptSignature(d, s)
		b, ok := initial[sig]
		if !ok {
			b = &block{states: make(map[StateID]bool)}
			initial[sig] = b
		}
		b.states[s] = true
	}

	var partition, worklist []*block
	for _, b := range initial {
		partition = append(partition, b)
		worklist = append(worklist, b)
	}

	// preimage[c][target] = states s with Trans[s][c] == target.
	preimage := make([]map[StateID][]StateID, len(d.Alphabet))
	for c := range d.Alphabet {
		preimage[c] = make(map[StateID][]StateID)
		for s := 0; s < n; s++ {
			t := d.Trans[s][c]
			if t != InvalidState {
				preimage[c][t] = append(preimage[c][t], StateID(s))
			}
		}
	}

	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for c := range d.Alphabet {
			x := make(map[StateID]bool)
			for s := range a.states {
				for _, src := range preimage[c][s] {
					x[src] = true
				}
			}
			if len(x) == 0 {
				continue
			}

			for idx := 0; idx < len(partition); idx++ {
				y := partition[idx]
				inter := make(map[StateID]bool)
				diff := make(map[StateID]bool)
				for s := range y.states {
					if x[s] {
						inter[s] = true
					} else {
						diff[s] = true
					}
				}
				if len(inter) == 0 || len(diff) == 0 {
					continue
				}

				interBlock := &block{states: inter}
				diffBlock := &block{states: diff}
				partition[idx] = interBlock
				partition = append(partition, diffBlock)

				replaced := false
				for wi, w := range worklist {
					if w == y {
						worklist[wi] = interBlock
						worklist = append(worklist, diffBlock)
						replaced = true
						break
					}
				}
				if !replaced {
					if len(inter) <= len(diff) {
						worklist = append(worklist, interBlock)
					} else {
						worklist = append(worklist, diffBlock)
					}
				}
			}
		}
	}

	return buildFromPartition(d, partition)
}

// buildFromPartition assembles a new DFA whose states are the blocks of a
// converged partition, ordered deterministically with the block
// containing the original initial state placed first.
func buildFromPartition(d *DFA, partition []*block) *DFA {
	sort.Slice(partition, func(i, j int) bool {
		return minMember(partition[i]) < minMember(partition[j])
	})
	initialIdx := 0
	for i, b := range partition {
		if b.states[d.Initial] {
			initialIdx = i
			break
		}
	}
	partition[0], partition[initialIdx] = partition[initialIdx], partition[0]

	oldToNew := make(map[StateID]StateID, len(d.States))
	for newID, b := range partition {
		for old := range b.states {
			oldToNew[old] = StateID(newID)
		}
	}

	out := &DFA{
		Alphabet:      d.Alphabet,
		symIndex:      d.symIndex,
		Initial:       0,
		Accepting:     make(map[StateID]bool),
		EndMarkerRule: d.EndMarkerRule,
	}

	for _, b := range partition {
		rep := representative(b)
		merged := PositionSet(nil)
		for old := range b.states {
			merged = unionPositions(merged, d.States[old])
		}
		out.States = append(out.States, merged)

		row := newRow(len(d.Alphabet))
		for c := range d.Alphabet {
			target := d.Trans[rep][c]
			if target != InvalidState {
				row[c] = oldToNew[target]
			}
		}
		out.Trans = append(out.Trans, row)

		if d.Accepting[rep] {
			out.Accepting[StateID(conv.IntToUint32(len(out.States)-1))] = true
		}
	}

	return out
}

func minMember(b *block) StateID {
	min := StateID(InvalidState)
	for s := range b.states {
		if s < min {
			min = s
		}
	}
	return min
}

func representative(b *block) StateID {
	return minMember(b)
}

// unionPositions merges two sorted, duplicate-free position slices.
func unionPositions(a, b PositionSet) PositionSet {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(PositionSet, 0, len(a)+len(b))
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
