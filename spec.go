// Package lexgen is the root of the lexical-analyzer-generator pipeline:
// it gives the spec-file parser's output contract a concrete shape
// (Spec, Rule, Action) and exposes Compile as the single top-level entry
// point chaining regexsyntax -> syntaxtree -> dfa -> pattern into a
// CompiledScanner.
package lexgen

import (
	"errors"
	"regexp"
)

// ErrDefinitionCycle is returned by Spec.Expand when named definitions
// refer to each other cyclically, e.g. "let a = {b}" and "let b = {a}".
var ErrDefinitionCycle = errors.New("lexgen: cyclic named-definition reference")

// ErrUnknownDefinition is returned when a rule or definition references a
// name that was never declared.
var ErrUnknownDefinition = errors.New("lexgen: reference to an undeclared named definition")

// Definition is one "let name = regex" declaration from the spec file.
type Definition struct {
	Name    string
	Pattern string
}

// Action is the opaque per-rule action blob: whether a match is
// discarded, the token tag to surface, and the action code, which this
// compiler never interprets. Dispatching the code is the code emitter's
// concern.
type Action struct {
	Skip bool
	Tag  string
	Code string
}

// Rule is one "rule name = regex { action }" alternative. Order is the
// rule's declaration position in the spec file; lower Order wins priority
// ties during scanning.
type Rule struct {
	ID      uint32
	Order   uint32
	Pattern string
	Action  Action
}

// Spec is the structured output a SpecProducer (the out-of-scope spec-file
// parser) is expected to hand this compiler.
type Spec struct {
	Header      string
	Trailer     string
	Definitions []Definition
	Rules       []Rule
	Entrypoint  string
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand performs named-definition textual substitution: every "{name}"
// occurrence in a rule's pattern (or in another
// definition's pattern) is replaced by "(" + that definition's expanded
// pattern + ")", to fixpoint. A cyclic reference is reported rather than
// looping forever.
func (s *Spec) Expand() ([]Rule, error) {
	byName := make(map[string]string, len(s.Definitions))
	for _, d := range s.Definitions {
		byName[d.Name] = d.Pattern
	}

	resolved := make(map[string]string, len(s.Definitions))
	var resolve func(name string, visiting map[string]bool) (string, error)
	resolve = func(name string, visiting map[string]bool) (string, error) {
		if v, ok := resolved[name]; ok {
			return v, nil
		}
		pattern, ok := byName[name]
		if !ok {
			return "", ErrUnknownDefinition
		}
		if visiting[name] {
			return "", ErrDefinitionCycle
		}
		visiting[name] = true
		expanded, err := substitute(pattern, resolve, visiting)
		delete(visiting, name)
		if err != nil {
			return "", err
		}
		resolved[name] = expanded
		return expanded, nil
	}

	for _, d := range s.Definitions {
		if _, err := resolve(d.Name, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	out := make([]Rule, len(s.Rules))
	for i, r := range s.Rules {
		expanded, err := substitute(r.Pattern, resolve, map[string]bool{})
		if err != nil {
			return nil, err
		}
		out[i] = r
		out[i].Pattern = expanded
	}
	return out, nil
}

// substitute replaces every "{name}" placeholder in pattern using resolve,
// parenthesizing each substitution so the surrounding regex's precedence
// cannot be altered by what it expands to.
func substitute(pattern string, resolve func(string, map[string]bool) (string, error), visiting map[string]bool) (string, error) {
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]
		expanded, err := resolve(name, visiting)
		if err != nil {
			firstErr = err
			return match
		}
		return "(" + expanded + ")"
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
