package sync

// expectedHeader is the schema property names in schema order followed
// by the id column as the final column.
func expectedHeader(propertyNames []string, idColumn string) []string {
	header := make([]string, 0, len(propertyNames)+1)
	header = append(header, propertyNames...)
	return append(header, idColumn)
}

// verifyHeader requires exact equality between the sheet's header row
// and the schema-derived header.
func verifyHeader(actual, expected []string) error {
	if len(actual) != len(expected) {
		return &HeaderMismatchError{Expected: expected, Actual: actual}
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return &HeaderMismatchError{Expected: expected, Actual: actual}
		}
	}
	return nil
}

// columnIndex returns the position of name in the header, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// buildRowIndex maps id-column values to 1-based sheet row numbers.
// dataRows excludes the header, so row i lands at sheet row i+2. Rows
// with an empty or absent id cell are not indexed; they count as
// not-yet-synced.
func buildRowIndex(dataRows [][]string, idIdx int) map[string]int {
	index := make(map[string]int, len(dataRows))
	for i, row := range dataRows {
		if idIdx < len(row) && row[idIdx] != "" {
			index[row[idIdx]] = i + 2
		}
	}
	return index
}
