package lexgen

import (
	"github.com/coregx/lexgen/pattern"
	"github.com/coregx/lexgen/scanner"
)

// CompiledScanner is the finished product of Compile: a combined
// multi-pattern DFA, optionally minimized, paired with the per-rule
// actions needed to drive a scanner.Scanner over any input.
// A CompiledScanner is immutable and safe to share across goroutines;
// NewScanner hands out an independent, single-goroutine Scanner per call.
type CompiledScanner struct {
	result  *pattern.Result
	actions []scanner.RuleAction
	cfg     Config
}

// Compile is the single top-level entry point of the pipeline: it expands
// spec's named definitions (Spec.Expand), composes the resulting rules into
// one combined DFA (pattern.Compile, with minimization gated by
// cfg.Minimize), and returns a CompiledScanner ready to scan input via
// NewScanner.
func Compile(spec *Spec, cfg Config) (*CompiledScanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules, err := spec.Expand()
	if err != nil {
		return nil, err
	}

	ruleInputs := make([]pattern.RuleInput, len(rules))
	actions := make([]scanner.RuleAction, len(rules))
	for i, r := range rules {
		ruleInputs[i] = pattern.RuleInput{ID: r.ID, Order: r.Order, Pattern: r.Pattern}
		actions[i] = scanner.RuleAction{Skip: r.Action.Skip, Tag: r.Action.Tag}
	}

	pcfg := pattern.Config{
		Minimize:              cfg.Minimize,
		EnableKeywordFastPath: cfg.EnableKeywordFastPath,
		MaxStates:             cfg.MaxStates,
		MarkerBase:            cfg.MarkerBase,
	}
	result, err := pattern.Compile(ruleInputs, pcfg)
	if err != nil {
		return nil, err
	}

	return &CompiledScanner{result: result, actions: actions, cfg: cfg}, nil
}

// MustCompile is like Compile but panics on error, for specs known valid
// at init time (e.g. embedded via go:embed).
func MustCompile(spec *Spec, cfg Config) *CompiledScanner {
	cs, err := Compile(spec, cfg)
	if err != nil {
		panic("lexgen: Compile: " + err.Error())
	}
	return cs
}

// NewScanner returns a Scanner over input, driven by the combined DFA and
// actions cs was compiled with. cfg.EnableRunAcceleration (captured at
// Compile time) controls whether the scanner installs the byte-class run
// acceleration fast path; it never changes which tokens are produced.
func (cs *CompiledScanner) NewScanner(input []byte) *scanner.Scanner {
	return scanner.New(input, cs.result, cs.actions, cs.cfg.EnableRunAcceleration)
}
