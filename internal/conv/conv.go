// Package conv provides safe integer conversion helpers used throughout the
// compilation pipeline.
//
// Positions, node ids, and state ids are all counted with plain ints during
// construction but stored as narrower fixed-width types once frozen into a
// compiled DFA. These functions perform bounds checking before narrowing,
// panicking on overflow since that indicates a programming error (e.g. a
// pattern producing more tree positions than the generator is prepared to
// address) rather than a recoverable input error.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
