// Package scanner implements a maximal-munch scanning loop over a
// compiled multi-pattern DFA, with declaration-order priority tiebreak
// and one-code-point lexical-error recovery.
package scanner

import (
	"unicode/utf8"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/internal/classrun"
	"github.com/coregx/lexgen/pattern"
)

// RuleAction is the action associated with one compiled rule, addressed by
// the same index as pattern.Result.Rules.
type RuleAction struct {
	Skip bool   // true: a match is discarded, no token is emitted
	Tag  string // opaque token tag surfaced on emitted tokens
}

// Token is one scanned lexeme.
type Token struct {
	Tag    string
	Lexeme []byte
	Pos    int // byte offset of the lexeme's first byte in the scanned input
}

// Scanner drives a compiled DFA over a byte slice, producing a token
// stream via repeated Next calls. A Scanner owns its position exclusively
// and must not be shared across goroutines; the *dfa.DFA and
// *pattern.KeywordIndex it wraps are immutable and safe to share across
// independently-driven Scanners.
type Scanner struct {
	input    []byte
	pos      int
	compiled *pattern.Result
	actions  []RuleAction
	selfLoop []*classrun.Table // per-state ASCII self-loop table, nil if none
}

// New creates a Scanner over input using a compiled multi-pattern result.
// actions must be indexed the same way as compiled.Rules. enableRunAcceleration
// toggles the byte-class run acceleration fast path; disabling it only
// affects speed, never which tokens are produced.
func New(input []byte, compiled *pattern.Result, actions []RuleAction, enableRunAcceleration bool) *Scanner {
	s := &Scanner{
		input:    input,
		compiled: compiled,
		actions:  actions,
	}
	if enableRunAcceleration {
		s.selfLoop = buildSelfLoopTables(compiled.DFA)
	} else {
		s.selfLoop = make([]*classrun.Table, compiled.DFA.NumStates())
	}
	return s
}

// buildSelfLoopTables precomputes, for every state whose DFA has an ASCII
// byte that simply loops back to the same state, a membership table the
// scanner can hand to classrun.SkipWhile to bulk-advance through a run of
// such bytes instead of single-stepping the DFA. This never changes which
// rule wins or where a boundary falls: it only changes how many Step
// calls it takes to get there.
func buildSelfLoopTables(d *dfa.DFA) []*classrun.Table {
	tables := make([]*classrun.Table, d.NumStates())
	for s := 0; s < d.NumStates(); s++ {
		var members []byte
		for b := 0; b < utf8.RuneSelf; b++ {
			target, ok := d.Step(dfa.StateID(s), rune(b))
			if ok && target == dfa.StateID(s) {
				members = append(members, byte(b))
			}
		}
		if len(members) > 0 {
			tables[s] = classrun.BuildTable(members)
		}
	}
	return tables
}

// Next returns the next token, a *LexicalError for an unmatched position
// (recovered by skipping one code point), or ErrEOF once input is
// exhausted. Rules whose action is a skip never surface as a token: Next
// loops internally past them.
func (s *Scanner) Next() (Token, error) {
	for {
		if s.pos >= len(s.input) {
			return Token{}, ErrEOF
		}

		start := s.pos
		cur := s.compiled.DFA.Initial
		i := start
		lastAcceptPos := -1
		var lastAcceptState dfa.StateID

		for i < len(s.input) {
			if table := s.selfLoop[cur]; table != nil {
				if n := classrun.SkipWhile(s.input[i:], table); n > 0 {
					i += n
					if s.compiled.DFA.IsAccepting(cur) {
						lastAcceptPos = i
						lastAcceptState = cur
					}
					continue
				}
			}

			r, width := utf8.DecodeRune(s.input[i:])
			next, ok := s.compiled.DFA.Step(cur, r)
			if !ok {
				break
			}
			cur = next
			i += width
			if s.compiled.DFA.IsAccepting(cur) {
				lastAcceptPos = i
				lastAcceptState = cur
			}
		}

		if lastAcceptPos == -1 {
			r, width := utf8.DecodeRune(s.input[start:])
			s.pos = start + width
			return Token{}, &LexicalError{Pos: start, Rune: r}
		}

		lexeme := s.input[start:lastAcceptPos]

		// Keyword.Classify's answer is precomputed against the same
		// priority tiebreak ResolveRule performs (pattern.BuildKeywordIndex
		// resolves each literal's authoritative winner once, at compile
		// time), so a hit here always agrees with declaration-order
		// priority regardless of how keyword and non-keyword rules are
		// interleaved. A miss always falls through to the authoritative
		// position-set walk.
		ruleIdx, ok := s.compiled.Keyword.Classify(lexeme)
		if !ok {
			ruleIdx, ok = s.compiled.ResolveRule(lastAcceptState)
		}
		if !ok {
			r, width := utf8.DecodeRune(s.input[start:])
			s.pos = start + width
			return Token{}, &LexicalError{Pos: start, Rune: r}
		}

		s.pos = lastAcceptPos

		action := s.actions[ruleIdx]
		if action.Skip {
			continue
		}
		return Token{Tag: action.Tag, Lexeme: lexeme, Pos: start}, nil
	}
}
