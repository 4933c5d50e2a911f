// Package api contains the API contract definitions for the sales dashboard.
// Version v1 represents the current stable API version.
package api

import (
	"salesdash/pkg/contracts/domain"
)

// DataResponse is the generic success envelope wrapping a single payload.
type DataResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// TableResponse wraps the enriched table together with its row count.
type TableResponse struct {
	Status string                `json:"status"`
	Data   *domain.EnrichedTable `json:"data"`
	Count  int                   `json:"count"`
}

// DashboardResponse carries the recomputed views, the filter state they were
// computed under, and the dataset summary.
type DashboardResponse struct {
	Status  string                `json:"status"`
	Filters domain.FilterState    `json:"filters"`
	Views   domain.DashboardViews `json:"views"`
	Summary domain.Summary        `json:"summary"`
}

// HealthResponse is the payload of the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
