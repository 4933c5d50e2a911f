package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// WeekdayOrder is the ordered weekday vocabulary for the derived day name.
var WeekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MonthOrder is the ordered month vocabulary for the derived month name.
// It deliberately stops at June; widening it would change observed chart
// ordering. Months outside the vocabulary are kept as labels with rank -1.
var MonthOrder = []string{"January", "February", "March", "April", "May", "June"}

// dateLayouts are tried in order when parsing the date column. Day-first
// layouts come first; ISO dates are also accepted. Unpadded layouts match
// padded values too.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
	"2006/1/2",
}

const (
	// anomalousAmount is the known bad amount value present in source data.
	anomalousAmount = 360
	// correctedAmount replaces anomalousAmount wherever it occurs.
	correctedAmount = 36
)

// Enricher derives the typed calendar and amount features from a raw table.
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates an enricher. A nil logger falls back to slog.Default.
func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger.With(slog.String("component", "enricher"))}
}

// Enrich produces the enriched table: the raw cells plus parsed date, day
// name, month name, hour and corrected amount per row. It fails only when
// the role-resolved date column is absent from the table; every per-value
// failure degrades to a null or default on that row. The output row count
// always equals the input row count.
func (e *Enricher) Enrich(ctx context.Context, table *domain.RawTable, roles domain.ColumnRoles) (*domain.EnrichedTable, error) {
	dateIdx := table.ColumnIndex(roles.Date)
	if dateIdx < 0 {
		e.logger.ErrorContext(ctx, "date column missing at enrichment time",
			slog.String("column", roles.Date),
			slog.Any("available", table.Columns))
		return nil, apperrors.NewMissingDateColumnError(roles.Date)
	}

	enriched := &domain.EnrichedTable{
		Columns:       table.Columns,
		Roles:         roles,
		LocationIndex: table.ColumnIndex(roles.Location),
		CategoryIndex: table.ColumnIndex(roles.Category),
	}

	timeIdx := table.ColumnIndex(roles.Time)
	if timeIdx < 0 {
		e.logger.WarnContext(ctx, "time column missing, defaulting hour",
			slog.String("column", roles.Time),
			slog.Int("default_hour", domain.DefaultHour))
		enriched.Warnings = append(enriched.Warnings,
			"time column \""+roles.Time+"\" not found, using default hour 12")
	}

	amountIdx := table.ColumnIndex(roles.Amount)
	if amountIdx < 0 {
		e.logger.WarnContext(ctx, "amount column missing, amounts default to zero",
			slog.String("column", roles.Amount))
		enriched.Warnings = append(enriched.Warnings,
			"amount column \""+roles.Amount+"\" not found, amounts default to 0")
	}

	enriched.Rows = make([]domain.EnrichedRow, 0, table.RowCount())
	for i := range table.Rows {
		cells := make([]string, len(table.Rows[i]))
		copy(cells, table.Rows[i])

		row := domain.EnrichedRow{
			Cells:     cells,
			Hour:      domain.DefaultHour,
			MonthRank: -1,
		}

		if parsed, ok := parseDayFirstDate(table.Cell(i, dateIdx)); ok {
			row.Date = &parsed
			row.DayName = parsed.Weekday().String()
			row.MonthName = parsed.Month().String()
			row.MonthRank = monthRank(row.MonthName)
		}

		if timeIdx >= 0 {
			row.Hour = parseHour(table.Cell(i, timeIdx))
		}

		if amountIdx >= 0 {
			row.Amount = CorrectAmountAnomaly(parseAmount(table.Cell(i, amountIdx)))
		}

		enriched.Rows = append(enriched.Rows, row)
	}

	e.logger.InfoContext(ctx, "enrichment complete",
		slog.Int("row_count", len(enriched.Rows)),
		slog.Int("warning_count", len(enriched.Warnings)))

	return enriched, nil
}

// parseDayFirstDate parses a cell as a date using day-first layouts.
func parseDayFirstDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	// Tolerate trailing time components ("01/02/2024 08:15").
	if fields := strings.Fields(value); len(fields) > 1 {
		value = fields[0]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseHour extracts the hour as the integer before the first colon of the
// time cell. Missing values, values without a colon, and values outside
// 0..23 all default to DefaultHour; the row is never dropped.
func parseHour(value string) int {
	value = strings.TrimSpace(value)
	before, _, found := strings.Cut(value, ":")
	if !found {
		return domain.DefaultHour
	}

	hour, err := strconv.Atoi(strings.TrimSpace(before))
	if err != nil || hour < 0 || hour > 23 {
		return domain.DefaultHour
	}
	return hour
}

// parseAmount parses a monetary cell, tolerating thousands separators and a
// currency prefix. Unparseable values become 0.
func parseAmount(value string) float64 {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimPrefix(value, "$")

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}

// CorrectAmountAnomaly applies the fixed data-quality rule: the amount value
// 360 is a known entry error in the source data and is rewritten to 36.
// The rule is exact-match and idempotent; every other value passes through.
func CorrectAmountAnomaly(amount float64) float64 {
	if amount == anomalousAmount {
		return correctedAmount
	}
	return amount
}

// monthRank returns the position of a month name within MonthOrder, or -1
// when the month is outside the ordered vocabulary.
func monthRank(name string) int {
	for i, m := range MonthOrder {
		if m == name {
			return i
		}
	}
	return -1
}
