//go:build amd64

package classrun

import "golang.org/x/sys/cpu"

// hasWideStride gates an 8-byte-at-a-time unrolled stride versus the
// byte-at-a-time fallback. This is not a vectorized instruction sequence
// (no assembly stub ships with this package), just a pure-Go unrolled
// stride selected at init time from the CPU feature set.
var hasWideStride = cpu.X86.HasAVX2

func skipWhile(data []byte, table *Table) int {
	if !hasWideStride || len(data) < 8 {
		return skipWhileGeneric(data, table)
	}
	i := 0
	for ; i+8 <= len(data); i += 8 {
		chunk := data[i : i+8]
		if !table[chunk[0]] {
			return i
		}
		if !table[chunk[1]] {
			return i + 1
		}
		if !table[chunk[2]] {
			return i + 2
		}
		if !table[chunk[3]] {
			return i + 3
		}
		if !table[chunk[4]] {
			return i + 4
		}
		if !table[chunk[5]] {
			return i + 5
		}
		if !table[chunk[6]] {
			return i + 6
		}
		if !table[chunk[7]] {
			return i + 7
		}
	}
	rest := skipWhileGeneric(data[i:], table)
	return i + rest
}

func skipUntil(data []byte, table *Table) int {
	if !hasWideStride || len(data) < 8 {
		return skipUntilGeneric(data, table)
	}
	i := 0
	for ; i+8 <= len(data); i += 8 {
		chunk := data[i : i+8]
		if table[chunk[0]] {
			return i
		}
		if table[chunk[1]] {
			return i + 1
		}
		if table[chunk[2]] {
			return i + 2
		}
		if table[chunk[3]] {
			return i + 3
		}
		if table[chunk[4]] {
			return i + 4
		}
		if table[chunk[5]] {
			return i + 5
		}
		if table[chunk[6]] {
			return i + 6
		}
		if table[chunk[7]] {
			return i + 7
		}
	}
	rest := skipUntilGeneric(data[i:], table)
	return i + rest
}
