//go:build !amd64

package classrun

func skipWhile(data []byte, table *Table) int {
	return skipWhileGeneric(data, table)
}

func skipUntil(data []byte, table *Table) int {
	return skipUntilGeneric(data, table)
}
