package dataprocessing

import (
	"sort"
	"time"

	"salesdash/pkg/contracts/domain"
)

// Aggregate computes the three chart views from the enriched table and the
// current filter state. It is a pure function: no hidden state, deterministic
// for a given (table, filters) pair, and an empty filtered set yields an
// empty view rather than an error.
//
// The daily revenue view filters on location and hour; the location and
// category views filter on location and category. The asymmetry mirrors the
// dashboard's widget model: the hour slider only drives the daily trend.
func Aggregate(table *domain.EnrichedTable, filters domain.FilterState) domain.DashboardViews {
	return domain.DashboardViews{
		DailyRevenue: dailyRevenue(table, filters),
		ByLocation:   sumByGroup(table, filters, table.Location),
		ByCategory:   sumByGroup(table, filters, table.Category),
	}
}

// dailyRevenue groups amount by parsed date for rows matching the selected
// location (if any) and the selected hour, sorted ascending by date. Rows
// without a parsed date cannot be placed on the date axis and are skipped.
func dailyRevenue(table *domain.EnrichedTable, filters domain.FilterState) []domain.DailyRevenuePoint {
	totals := make(map[time.Time]float64)
	for i := range table.Rows {
		row := &table.Rows[i]
		if filters.Location != domain.AllLocations && table.Location(i) != filters.Location {
			continue
		}
		if row.Hour != filters.Hour {
			continue
		}
		if row.Date == nil {
			continue
		}
		totals[*row.Date] += row.Amount
	}

	points := make([]domain.DailyRevenuePoint, 0, len(totals))
	for date, total := range totals {
		points = append(points, domain.DailyRevenuePoint{Date: date, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// sumByGroup groups amount by the key function for rows matching the selected
// location and category, sorted descending by total. Ties keep the order in
// which groups were first seen.
func sumByGroup(table *domain.EnrichedTable, filters domain.FilterState, key func(int) string) []domain.AggregatePoint {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for i := range table.Rows {
		if filters.Location != domain.AllLocations && table.Location(i) != filters.Location {
			continue
		}
		if filters.Category != domain.AllCategories && table.Category(i) != filters.Category {
			continue
		}

		k := key(i)
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += table.Rows[i].Amount
	}

	points := make([]domain.AggregatePoint, 0, len(order))
	for _, k := range order {
		points = append(points, domain.AggregatePoint{Key: k, Total: totals[k]})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Total > points[j].Total
	})
	return points
}

// Summarize computes the headline scalars over the full enriched table:
// total revenue, transaction count, mean transaction value, the parsed-date
// range, and the observed hour bounds for the hour slider.
func Summarize(table *domain.EnrichedTable) domain.Summary {
	summary := domain.Summary{
		TransactionCount: table.RowCount(),
		MinHour:          domain.DefaultHour,
		MaxHour:          domain.DefaultHour,
	}

	first := true
	for i := range table.Rows {
		row := &table.Rows[i]
		summary.TotalRevenue += row.Amount

		if first {
			summary.MinHour, summary.MaxHour = row.Hour, row.Hour
			first = false
		} else {
			if row.Hour < summary.MinHour {
				summary.MinHour = row.Hour
			}
			if row.Hour > summary.MaxHour {
				summary.MaxHour = row.Hour
			}
		}

		if row.Date == nil {
			continue
		}
		if summary.MinDate == nil || row.Date.Before(*summary.MinDate) {
			d := *row.Date
			summary.MinDate = &d
		}
		if summary.MaxDate == nil || row.Date.After(*summary.MaxDate) {
			d := *row.Date
			summary.MaxDate = &d
		}
	}

	if summary.TransactionCount > 0 {
		summary.MeanTransaction = summary.TotalRevenue / float64(summary.TransactionCount)
	}

	return summary
}

// DistinctLocations returns the distinct location values in first-seen order,
// for populating the location filter widget.
func DistinctLocations(table *domain.EnrichedTable) []string {
	return distinctValues(table, table.Location)
}

// DistinctCategories returns the distinct category values in first-seen order,
// for populating the category filter widget.
func DistinctCategories(table *domain.EnrichedTable) []string {
	return distinctValues(table, table.Category)
}

func distinctValues(table *domain.EnrichedTable, key func(int) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range table.Rows {
		v := key(i)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
