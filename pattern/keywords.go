package pattern

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/regexsyntax"
)

// KeywordIndex accelerates rule resolution for lexemes that exactly equal
// one of a set of pure-literal rule patterns (e.g. "if", "else", "return"):
// a single Aho-Corasick automaton is built once over every qualifying
// rule's literal text, then consulted with one Find call per settled
// lexeme instead of walking position sets. The mapping from literal text
// to rule index is not the literal's own declared rule: BuildKeywordIndex
// walks each literal through the combined DFA once, at compile time, and
// records whichever rule resolveRuleAt says actually wins at that state,
// so Classify's answer always agrees with the declaration-order priority
// tiebreak, matching ResolveRule exactly without a per-token cross-check.
type KeywordIndex struct {
	automaton *ahocorasick.Automaton
	textToIdx map[string]int // literal text -> authoritative winning rule index
}

// BuildKeywordIndex scans rules for ones that are structurally a single
// literal string (no operators besides implicit concatenation), resolves
// each one's authoritative winning rule by walking its text through d from
// d.Initial, and indexes the qualifying literals into an Aho-Corasick
// automaton. Returns nil if no rule qualifies.
func BuildKeywordIndex(rules []RuleInput, d *dfa.DFA) *KeywordIndex {
	builder := ahocorasick.NewBuilder()
	textToIdx := make(map[string]int)
	any := false
	for _, rule := range rules {
		text, ok := literalText(rule.Pattern)
		if !ok || text == "" {
			continue
		}
		if _, dup := textToIdx[text]; dup {
			continue
		}
		winner, ok := resolveLiteralWinner(d, rules, text)
		if !ok {
			// text does not settle the combined DFA into an accepting
			// state at all (should not happen for a rule that compiled
			// successfully, but skip rather than index a bogus entry).
			continue
		}
		builder.AddPattern([]byte(text))
		textToIdx[text] = winner
		any = true
	}
	if !any {
		return nil
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &KeywordIndex{automaton: auto, textToIdx: textToIdx}
}

// resolveLiteralWinner walks text through d from d.Initial and, if it
// settles into an accepting state, returns the authoritative winning rule
// at that state via resolveRuleAt. Determinism of d guarantees that any
// scan-time walk of the same text lands in this same state, so the result
// computed here at build time remains correct for every later lookup.
func resolveLiteralWinner(d *dfa.DFA, rules []RuleInput, text string) (int, bool) {
	state := d.Initial
	for _, r := range text {
		next, ok := d.Step(state, r)
		if !ok {
			return 0, false
		}
		state = next
	}
	if !d.IsAccepting(state) {
		return 0, false
	}
	return resolveRuleAt(d, rules, state)
}

// Classify reports the rule index that lexeme exactly matches, if any.
// It performs one Aho-Corasick search over the lexeme and accepts only a
// match spanning the whole slice, since a partial keyword match must still
// fall back to the DFA's own position-set resolution.
func (k *KeywordIndex) Classify(lexeme []byte) (int, bool) {
	if k == nil || len(lexeme) == 0 {
		return 0, false
	}
	m := k.automaton.Find(lexeme, 0)
	if m == nil || m.Start != 0 || m.End != len(lexeme) {
		return 0, false
	}
	idx, ok := k.textToIdx[string(lexeme)]
	return idx, ok
}

// literalText reports whether pattern contains only literal characters and
// implicit/explicit concatenation (no alternation, repetition, grouping, or
// end markers), returning the decoded literal string when it does.
func literalText(pattern string) (string, bool) {
	tokens, err := regexsyntax.Tokenize(pattern)
	if err != nil {
		return "", false
	}
	var text []rune
	for _, tok := range tokens {
		switch tok.Kind {
		case regexsyntax.TokLiteral:
			if tok.Marker {
				return "", false
			}
			text = append(text, tok.Rune)
		case regexsyntax.TokConcat:
			// implicit concatenation between literals; contributes nothing
		default:
			return "", false
		}
	}
	if len(text) == 0 {
		return "", false
	}
	return string(text), true
}
