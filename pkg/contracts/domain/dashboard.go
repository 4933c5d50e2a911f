package domain

import "time"

// AllLocations and AllCategories are the unfiltered widget selections.
// An empty filter value means "no restriction".
const (
	AllLocations  = ""
	AllCategories = ""
)

// DefaultHour is the hour selected before the user touches the slider, and
// the fallback assigned to rows whose time value cannot be parsed.
const DefaultHour = 12

// FilterState is the current widget selection. Views are recomputed from
// scratch on every change; FilterState is never stored beyond one call.
type FilterState struct {
	Location string `json:"location" validate:"max=256"`
	Category string `json:"category" validate:"max=256"`
	Hour     int    `json:"hour" validate:"min=0,max=23"`
}

// DefaultFilters returns the initial widget state.
func DefaultFilters() FilterState {
	return FilterState{Location: AllLocations, Category: AllCategories, Hour: DefaultHour}
}

// DailyRevenuePoint is one (date, summed amount) pair of the daily revenue view.
type DailyRevenuePoint struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// AggregatePoint is one (group key, summed amount) pair of a bar-chart view.
type AggregatePoint struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// DashboardViews bundles the three aggregate views consumed by the charts.
// DailyRevenue is sorted ascending by date; ByLocation and ByCategory are
// sorted descending by total, ties keeping first-seen group order.
type DashboardViews struct {
	DailyRevenue []DailyRevenuePoint `json:"daily_revenue"`
	ByLocation   []AggregatePoint    `json:"by_location"`
	ByCategory   []AggregatePoint    `json:"by_category"`
}

// Summary holds the headline scalars shown above the charts, plus the
// observed hour bounds used to constrain the hour slider.
type Summary struct {
	TotalRevenue     float64    `json:"total_revenue"`
	TransactionCount int        `json:"transaction_count"`
	MeanTransaction  float64    `json:"mean_transaction"`
	MinDate          *time.Time `json:"min_date,omitempty"`
	MaxDate          *time.Time `json:"max_date,omitempty"`
	MinHour          int        `json:"min_hour"`
	MaxHour          int        `json:"max_hour"`
}
