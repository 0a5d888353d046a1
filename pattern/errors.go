package pattern

import (
	"errors"
	"fmt"
)

// ErrMarkerCollision is the sentinel for a reserved end-marker code point
// colliding with a rule's own literal alphabet.
var ErrMarkerCollision = errors.New("pattern: reserved end marker collides with rule alphabet")

// ErrNoRules is returned when Compile is given an empty rule set.
var ErrNoRules = errors.New("pattern: no rules to compile")

// CompositionError wraps a multi-pattern composition failure with the
// offending rule, following the same sentinel-plus-wrapper shape used
// throughout the pipeline.
type CompositionError struct {
	RuleID uint32
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("pattern: rule %d: %v", e.RuleID, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }
