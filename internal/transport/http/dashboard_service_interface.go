package http

import (
	"context"
	"io"

	"salesdash/internal/services"
	"salesdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the service contract consumed by the
// dashboard handler. Kept as an interface so handler tests can substitute
// a mock service.
type DashboardServiceInterface interface {
	// Upload runs the pipeline on an uploaded file and returns the
	// resulting dataset metadata.
	Upload(ctx context.Context, filename string, r io.Reader) (*services.UploadResult, error)

	// Views recomputes the three aggregate views for the given filters.
	Views(ctx context.Context, filters domain.FilterState) (domain.DashboardViews, error)

	// Current returns the current dataset, or services.ErrNoDataset.
	Current() (*services.Dataset, error)
}
