package domain

// RawTable is an uploaded tabular dataset: an ordered header row plus
// row-major string cells, one row per transaction. Every row is padded to
// header width by the loader. A RawTable is immutable after load.
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RowCount returns the number of data rows.
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// Cell returns the value at (row, col), or "" when out of range.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
