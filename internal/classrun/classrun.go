// Package classrun implements the scanner's byte-class run acceleration:
// bulk-advancing over a run of bytes that all belong to (or all avoid) a
// single DFA self-loop's symbol class, instead of taking one DFA
// transition per byte.
//
// This is purely an execution-speed optimization. SkipWhile and SkipUntil
// return exactly the boundary a byte-by-byte walk would have found; the
// scanner resumes its normal DFA loop from that offset as if every
// intervening byte had been stepped individually.
package classrun

// Table is a membership table over the 256 possible byte values, built
// once per DFA self-loop when a scanner is created.
type Table = [256]bool

// SkipWhile returns the length of the longest prefix of data whose bytes
// are all members of table.
func SkipWhile(data []byte, table *Table) int {
	return skipWhile(data, table)
}

// SkipUntil returns the offset of the first byte in data that is a member
// of table, or len(data) if none is.
func SkipUntil(data []byte, table *Table) int {
	return skipUntil(data, table)
}

// BuildTable constructs a membership table from an explicit set of bytes
// that belong to the class (e.g. the byte-sized code points reachable by a
// single DFA self-loop transition).
func BuildTable(members []byte) *Table {
	var t Table
	for _, b := range members {
		t[b] = true
	}
	return &t
}
