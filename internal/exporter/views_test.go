package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readExport(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.True(t, len(data) >= 3 && string(data[:3]) == string(utf8BOM), "expected UTF-8 BOM in %s", name)
	return string(data[3:])
}

func TestWriteViews(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	views := domain.DashboardViews{
		DailyRevenue: []domain.DailyRevenuePoint{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Total: 36},
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Total: 20},
		},
		ByLocation: []domain.AggregatePoint{
			{Key: "Downtown", Total: 56},
			{Key: "Uptown", Total: 15},
		},
		ByCategory: []domain.AggregatePoint{
			{Key: "Coffee", Total: 56},
			{Key: "Tea", Total: 15},
		},
	}

	require.NoError(t, writer.WriteViews(views))

	daily := readExport(t, dir, "daily_revenue.csv")
	assert.Equal(t, "Date,Revenue\n2024-01-01,36.00\n2024-01-02,20.00\n", daily)

	byLocation := readExport(t, dir, "sales_by_location.csv")
	assert.Equal(t, "Location,Revenue\nDowntown,56.00\nUptown,15.00\n", byLocation)

	byCategory := readExport(t, dir, "sales_by_category.csv")
	assert.Equal(t, "Category,Revenue\nCoffee,56.00\nTea,15.00\n", byCategory)
}

func TestWriteViews_Empty(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteViews(domain.DashboardViews{}))

	daily := readExport(t, dir, "daily_revenue.csv")
	assert.Equal(t, "Date,Revenue\n", daily)
}

func TestWriteEnrichedTable(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := &domain.EnrichedTable{
		Columns: []string{"Sale Date", "Total Bill"},
		Rows: []domain.EnrichedRow{
			{
				Cells:     []string{"01/01/2024", "360"},
				Date:      &date,
				DayName:   "Monday",
				MonthName: "January",
				MonthRank: 0,
				Hour:      8,
				Amount:    36,
			},
			{
				Cells:  []string{"bad", "x"},
				Hour:   domain.DefaultHour,
				Amount: 0,
			},
		},
	}

	require.NoError(t, writer.WriteEnrichedTable(table))

	got := readExport(t, dir, "enriched_table.csv")
	want := "Sale Date,Total Bill,ParsedDate,DayName,MonthName,Hour,Amount\n" +
		"01/01/2024,360,2024-01-01,Monday,January,8,36.00\n" +
		"bad,x,,,,12,0.00\n"
	assert.Equal(t, want, got)
}

func TestWriteCSV_NestedPath(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteCSV(filepath.Join("reports", "out.csv"), WriteOptions{
		Headers: []string{"A"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "reports", "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(data))
}
