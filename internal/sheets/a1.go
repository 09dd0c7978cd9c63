package sheets

import "strconv"

// CellA1 converts 1-based row/column coordinates to A1 notation,
// e.g. (2, 27) -> "AA2".
func CellA1(row, col int) string {
	return ColumnLetter(col) + strconv.Itoa(row)
}

// ColumnLetter converts a 1-based column index to its letter name.
func ColumnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}
