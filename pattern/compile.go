// Package pattern combines N independently-authored rule patterns into
// one tagged DFA that preserves declaration-order priority: each rule gets
// a unique end-marker symbol drawn from a reserved code-point range, the
// rules are joined by alternation into one combined regex, and the whole
// thing is compiled through regexsyntax -> syntaxtree -> dfa as a single
// pattern.
package pattern

import (
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/regexsyntax"
	"github.com/coregx/lexgen/syntaxtree"
)

// RuleInput is the minimal shape package pattern needs from a rule: enough
// to compile and to resolve priority, decoupled from the root package's
// richer lexgen.Rule so this package never has to import it.
type RuleInput struct {
	ID      uint32
	Order   uint32
	Pattern string
}

// Result is everything Compile produces: the combined automaton, the
// keyword fast path (nil if disabled or no rule qualified), and the rule
// list in the exact order used to assign end markers — EndMarkerRule
// values on the returned DFA are indices into this slice.
type Result struct {
	DFA     *dfa.DFA
	Keyword *KeywordIndex
	Rules   []RuleInput
}

// Compile synthesizes `(r_0 . m_0) | (r_1 . m_1) | ... | (r_{n-1} . m_{n-1})`
// from rules, where each m_i is a distinct reserved-range marker, and
// recompiles the combined pattern through regexsyntax -> syntaxtree -> dfa.
func Compile(rules []RuleInput, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	markerBase := cfg.MarkerBase
	markerEnd := markerBase + rune(len(rules))

	var combined []regexsyntax.Token
	for i, rule := range rules {
		tokens, err := regexsyntax.Tokenize(rule.Pattern)
		if err != nil {
			return nil, &CompositionError{RuleID: rule.ID, Err: err}
		}
		for _, tok := range tokens {
			if tok.Kind == regexsyntax.TokLiteral && !tok.Marker &&
				tok.Rune >= markerBase && tok.Rune < markerEnd {
				return nil, &CompositionError{RuleID: rule.ID, Err: ErrMarkerCollision}
			}
		}
		postfix, err := regexsyntax.ToPostfix(rule.Pattern, tokens)
		if err != nil {
			return nil, &CompositionError{RuleID: rule.ID, Err: err}
		}

		marker := regexsyntax.Token{Kind: regexsyntax.TokLiteral, Rune: markerBase + rune(i), Marker: true}
		piece := append(append([]regexsyntax.Token{}, postfix...), marker, regexsyntax.Op(regexsyntax.TokConcat))

		if i == 0 {
			combined = piece
			continue
		}
		combined = append(combined, piece...)
		combined = append(combined, regexsyntax.Op(regexsyntax.TokAlt))
	}

	tree, err := syntaxtree.Build("<combined-pattern>", combined)
	if err != nil {
		return nil, err
	}
	fp := syntaxtree.ComputeFollowpos(tree)

	d, err := dfa.Build(tree, fp, dfa.Config{MaxStates: cfg.MaxStates})
	if err != nil {
		return nil, err
	}

	d.EndMarkerRule = make(map[uint32]int)
	markerIndex := make(map[rune]int, len(rules))
	for i := range rules {
		markerIndex[markerBase+rune(i)] = i
	}
	for p := uint32(1); p <= tree.NumPositions(); p++ {
		sym := tree.Symbol(p)
		if sym.Marker {
			d.EndMarkerRule[p] = markerIndex[sym.Rune]
		}
	}

	if cfg.Minimize {
		d = dfa.Minimize(d)
	}

	result := &Result{DFA: d, Rules: rules}
	if cfg.EnableKeywordFastPath {
		result.Keyword = BuildKeywordIndex(rules, d)
	}
	return result, nil
}

// ResolveRule picks the winning rule for an accepting state: among the
// end-marker positions present in state's position set, it returns the
// index (into the Result's Rules slice) of the rule with the smallest
// Order.
func (r *Result) ResolveRule(state dfa.StateID) (int, bool) {
	return resolveRuleAt(r.DFA, r.Rules, state)
}

// resolveRuleAt is the shared core of ResolveRule: among the end-marker
// positions present in state's position set, it returns the index (into
// rules) of the rule with the smallest Order. BuildKeywordIndex calls this
// directly, at compile time, to precompute the authoritative winner for
// each keyword literal instead of trusting the literal's own declared rule.
func resolveRuleAt(d *dfa.DFA, rules []RuleInput, state dfa.StateID) (int, bool) {
	best := -1
	for _, p := range d.States[state] {
		i, ok := d.EndMarkerRule[p]
		if !ok {
			continue
		}
		if best == -1 || rules[i].Order < rules[best].Order {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
