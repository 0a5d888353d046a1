package syntaxtree

import "github.com/coregx/lexgen/regexsyntax"

// FromPattern runs the full front half of the pipeline over a single
// regex pattern string: tokenize, shunt to postfix, build the marked
// tree. It is a convenience used by dfa.Build's single-pattern callers
// and by tests; package pattern drives the stages directly when it needs
// to splice per-rule end markers into a combined regex before building
// one tree.
func FromPattern(pattern string) (*Tree, error) {
	tokens, err := regexsyntax.Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := regexsyntax.ToPostfix(pattern, tokens)
	if err != nil {
		return nil, err
	}
	return Build(pattern, postfix)
}
