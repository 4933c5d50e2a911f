package exporter

import (
	"fmt"
	"strconv"

	"salesdash/pkg/contracts/domain"
)

// dateFormat is the date layout used in exported files.
const dateFormat = "2006-01-02"

// WriteViews exports the three aggregate views as CSV files in the writer's
// output directory: daily_revenue.csv, sales_by_location.csv and
// sales_by_category.csv.
func (w *CSVWriter) WriteViews(views domain.DashboardViews) error {
	daily := make([][]string, 0, len(views.DailyRevenue))
	for _, p := range views.DailyRevenue {
		daily = append(daily, []string{p.Date.Format(dateFormat), formatAmount(p.Total)})
	}
	if err := w.WriteSimpleCSV("daily_revenue.csv", []string{"Date", "Revenue"}, daily); err != nil {
		return fmt.Errorf("export daily revenue: %w", err)
	}

	if err := w.writeAggregate("sales_by_location.csv", "Location", views.ByLocation); err != nil {
		return err
	}
	return w.writeAggregate("sales_by_category.csv", "Category", views.ByCategory)
}

func (w *CSVWriter) writeAggregate(fileName, keyHeader string, points []domain.AggregatePoint) error {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{p.Key, formatAmount(p.Total)})
	}
	if err := w.WriteSimpleCSV(fileName, []string{keyHeader, "Revenue"}, records); err != nil {
		return fmt.Errorf("export %s: %w", fileName, err)
	}
	return nil
}

// WriteEnrichedTable exports the full enriched table, the original columns
// followed by the derived ones, as enriched_table.csv.
func (w *CSVWriter) WriteEnrichedTable(table *domain.EnrichedTable) error {
	headers := append([]string{}, table.Columns...)
	headers = append(headers, "ParsedDate", "DayName", "MonthName", "Hour", "Amount")

	records := make([][]string, 0, table.RowCount())
	for i := range table.Rows {
		row := &table.Rows[i]

		record := make([]string, 0, len(headers))
		record = append(record, row.Cells...)

		parsedDate := ""
		if row.Date != nil {
			parsedDate = row.Date.Format(dateFormat)
		}
		record = append(record, parsedDate, row.DayName, row.MonthName,
			strconv.Itoa(row.Hour), formatAmount(row.Amount))

		records = append(records, record)
	}

	if err := w.WriteSimpleCSV("enriched_table.csv", headers, records); err != nil {
		return fmt.Errorf("export enriched table: %w", err)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
