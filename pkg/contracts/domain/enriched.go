package domain

import "time"

// EnrichedRow is one transaction after feature derivation: the original cells
// plus typed calendar fields and the corrected amount. Date is nil when the
// raw value did not parse; the row is still retained.
type EnrichedRow struct {
	Cells     []string   `json:"cells"`
	Date      *time.Time `json:"parsed_date,omitempty"`
	DayName   string     `json:"day_name,omitempty"`
	MonthName string     `json:"month_name,omitempty"`
	// MonthRank orders MonthName within the January..June vocabulary;
	// -1 marks months outside that vocabulary (kept but unordered).
	MonthRank int     `json:"month_rank"`
	Hour      int     `json:"hour"`
	Amount    float64 `json:"amount"`
}

// EnrichedTable is the output of the feature deriver: the raw columns, the
// resolved role mapping, and one EnrichedRow per input row. Row count always
// equals the raw table's row count.
type EnrichedTable struct {
	Columns []string      `json:"columns"`
	Roles   ColumnRoles   `json:"roles"`
	Rows    []EnrichedRow `json:"rows"`

	// LocationIndex and CategoryIndex are the cell positions of the
	// role-resolved location and category columns, or -1 when the resolved
	// name is absent from the header.
	LocationIndex int `json:"-"`
	CategoryIndex int `json:"-"`

	// Warnings carries non-fatal derivation notices for the UI, such as an
	// entirely missing time column.
	Warnings []string `json:"warnings,omitempty"`
}

// Location returns the location cell of row i, or "" when unavailable.
func (t *EnrichedTable) Location(i int) string {
	return t.roleCell(i, t.LocationIndex)
}

// Category returns the category cell of row i, or "" when unavailable.
func (t *EnrichedTable) Category(i int) string {
	return t.roleCell(i, t.CategoryIndex)
}

func (t *EnrichedTable) roleCell(i, col int) string {
	if i < 0 || i >= len(t.Rows) || col < 0 || col >= len(t.Rows[i].Cells) {
		return ""
	}
	return t.Rows[i].Cells[col]
}

// RowCount returns the number of enriched rows.
func (t *EnrichedTable) RowCount() int {
	return len(t.Rows)
}
