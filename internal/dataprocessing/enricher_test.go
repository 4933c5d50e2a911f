package dataprocessing

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

func salesTable() *domain.RawTable {
	return &domain.RawTable{
		Columns: []string{"Sale Date", "Sale Time", "Store Location", "Product Category", "Total Bill"},
		Rows: [][]string{
			{"01/01/2024", "08:15", "Downtown", "Coffee", "360"},
			{"01/01/2024", "09:00", "Uptown", "Tea", "15"},
			{"02/01/2024", "08:30", "Downtown", "Coffee", "20"},
		},
	}
}

func TestEnricher_Enrich(t *testing.T) {
	table := salesTable()
	roles := Resolve(table.Columns)

	enricher := NewEnricher(slog.Default())
	enriched, err := enricher.Enrich(context.Background(), table, roles)
	require.NoError(t, err)

	require.Equal(t, table.RowCount(), enriched.RowCount())

	// Day-first parsing: 01/01 and 02/01 are January 1st and 2nd.
	require.NotNil(t, enriched.Rows[0].Date)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *enriched.Rows[0].Date)
	require.NotNil(t, enriched.Rows[2].Date)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *enriched.Rows[2].Date)

	assert.Equal(t, "Monday", enriched.Rows[0].DayName)
	assert.Equal(t, "January", enriched.Rows[0].MonthName)
	assert.Equal(t, 0, enriched.Rows[0].MonthRank)

	assert.Equal(t, 8, enriched.Rows[0].Hour)
	assert.Equal(t, 9, enriched.Rows[1].Hour)

	// Anomaly correction on the first row only.
	assert.Equal(t, 36.0, enriched.Rows[0].Amount)
	assert.Equal(t, 15.0, enriched.Rows[1].Amount)
	assert.Equal(t, 20.0, enriched.Rows[2].Amount)

	assert.Equal(t, "Downtown", enriched.Location(0))
	assert.Equal(t, "Tea", enriched.Category(1))
	assert.Empty(t, enriched.Warnings)
}

func TestEnricher_MissingDateColumn(t *testing.T) {
	table := salesTable()
	roles := Resolve(table.Columns)
	roles.Date = "Gone" // simulate external mutation between resolve and enrich

	enricher := NewEnricher(slog.Default())
	_, err := enricher.Enrich(context.Background(), table, roles)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypePreparation))
	assert.Contains(t, err.Error(), "Gone")
}

func TestEnricher_BadValuesDegradeNotDrop(t *testing.T) {
	table := &domain.RawTable{
		Columns: []string{"Sale Date", "Sale Time", "Store Location", "Product Category", "Total Bill"},
		Rows: [][]string{
			{"not-a-date", "late", "Downtown", "Coffee", "abc"},
			{"", "", "", "", ""},
			{"31/12/2024", "23:59", "Uptown", "Tea", "1,250.50"},
		},
	}
	roles := Resolve(table.Columns)

	enricher := NewEnricher(nil)
	enriched, err := enricher.Enrich(context.Background(), table, roles)
	require.NoError(t, err)
	require.Equal(t, 3, enriched.RowCount())

	// Row 0: everything unparseable degrades individually.
	assert.Nil(t, enriched.Rows[0].Date)
	assert.Empty(t, enriched.Rows[0].DayName)
	assert.Equal(t, -1, enriched.Rows[0].MonthRank)
	assert.Equal(t, domain.DefaultHour, enriched.Rows[0].Hour)
	assert.Equal(t, 0.0, enriched.Rows[0].Amount)

	// Row 1: empty cells behave like unparseable ones.
	assert.Nil(t, enriched.Rows[1].Date)
	assert.Equal(t, domain.DefaultHour, enriched.Rows[1].Hour)

	// Row 2: valid values parse, thousands separator tolerated.
	require.NotNil(t, enriched.Rows[2].Date)
	assert.Equal(t, 23, enriched.Rows[2].Hour)
	assert.Equal(t, 1250.50, enriched.Rows[2].Amount)
	// December is outside the ordered month vocabulary but kept as a label.
	assert.Equal(t, "December", enriched.Rows[2].MonthName)
	assert.Equal(t, -1, enriched.Rows[2].MonthRank)
}

func TestEnricher_MissingTimeColumnWarnsAndDefaults(t *testing.T) {
	table := &domain.RawTable{
		Columns: []string{"Sale Date", "Store Location", "Product Category", "Total Bill"},
		Rows: [][]string{
			{"01/01/2024", "Downtown", "Coffee", "10"},
			{"02/01/2024", "Uptown", "Tea", "20"},
		},
	}
	roles := Resolve(table.Columns)
	// No name contains "time": the role falls back positionally, and the
	// fallback column holds locations, not times.
	require.Equal(t, "Store Location", roles.Time)

	// Force the absent-column path.
	roles.Time = "Sale Time"

	enricher := NewEnricher(nil)
	enriched, err := enricher.Enrich(context.Background(), table, roles)
	require.NoError(t, err)

	require.Len(t, enriched.Warnings, 1)
	assert.Contains(t, enriched.Warnings[0], "Sale Time")
	for i := range enriched.Rows {
		assert.Equal(t, domain.DefaultHour, enriched.Rows[i].Hour)
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"morning", "08:15", 8},
		{"single digit", "9:05", 9},
		{"midnight", "00:00", 0},
		{"last hour", "23:59", 23},
		{"seconds present", "14:30:45", 14},
		{"no colon", "8", domain.DefaultHour},
		{"empty", "", domain.DefaultHour},
		{"garbage", "late:00", domain.DefaultHour},
		{"out of range high", "99:00", domain.DefaultHour},
		{"negative", "-1:00", domain.DefaultHour},
		{"padded token", " 7 :30", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseHour(tt.value)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 23)
		})
	}
}

func TestParseDayFirstDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"slash day first", "02/01/2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"dash day first", "2-1-2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"iso", "2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"with trailing time", "02/01/2024 08:15", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
		{"month out of range", "01/13/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDayFirstDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCorrectAmountAnomaly(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"anomalous value rewritten", 360, 36},
		{"already corrected stays", 36, 36},
		{"near miss untouched", 360.5, 360.5},
		{"other values untouched", 15, 15},
		{"zero untouched", 0, 0},
		{"negative untouched", -360, -360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CorrectAmountAnomaly(tt.amount))
			// Idempotent: a second application changes nothing.
			assert.Equal(t, tt.want, CorrectAmountAnomaly(CorrectAmountAnomaly(tt.amount)))
		})
	}
}

func TestMonthRank(t *testing.T) {
	assert.Equal(t, 0, monthRank("January"))
	assert.Equal(t, 5, monthRank("June"))
	assert.Equal(t, -1, monthRank("July"))
	assert.Equal(t, -1, monthRank("December"))
	assert.Equal(t, -1, monthRank(""))
}
