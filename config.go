package lexgen

import "fmt"

// Config controls every optional behavior of Compile.
type Config struct {
	// Minimize runs Hopcroft minimization on the combined DFA.
	Minimize bool

	// EnableKeywordFastPath builds the Aho-Corasick keyword index that
	// accelerates classification of lexemes equal to a pure-literal
	// rule's pattern.
	EnableKeywordFastPath bool

	// EnableRunAcceleration enables the classrun byte-class run
	// skipping fast path in the scanner. It never changes which token
	// is emitted, only how fast.
	EnableRunAcceleration bool

	// MaxStates caps the number of states direct DFA construction may
	// discover before aborting with dfa.ErrTooManyStates.
	MaxStates int

	// MarkerBase is the first code point of the reserved end-marker
	// range. The whole range [MarkerBase, MarkerBase+len(rules)) must
	// stay disjoint from every code point a rule pattern can match.
	MarkerBase rune
}

// DefaultConfig returns the standard defaults: minimization on, the
// keyword fast path on, run acceleration on, a generous but finite state
// cap, and Unicode Supplementary Private Use Area-B as the marker base.
func DefaultConfig() Config {
	return Config{
		Minimize:              true,
		EnableKeywordFastPath: true,
		EnableRunAcceleration: true,
		MaxStates:             100000,
		MarkerBase:            0x100000,
	}
}

// Validate rejects configurations that cannot possibly produce a
// well-formed compiled scanner.
func (c Config) Validate() error {
	if c.MaxStates <= 0 {
		return fmt.Errorf("lexgen: MaxStates must be positive, got %d", c.MaxStates)
	}
	if c.MarkerBase < 0 || c.MarkerBase > 0x10FFFF {
		return fmt.Errorf("lexgen: MarkerBase %#x is not a valid code point", c.MarkerBase)
	}
	return nil
}
