package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/middleware"
	"salesdash/internal/services"
	apiv1 "salesdash/pkg/contracts/api/v1"
	"salesdash/pkg/contracts/domain"
)

// DashboardHandler exposes the upload and dashboard endpoints.
type DashboardHandler struct {
	service       DashboardServiceInterface
	logger        *slog.Logger
	maxUploadSize int64
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, maxUploadSize int64) *DashboardHandler {
	return &DashboardHandler{
		service:       service,
		logger:        logger.With(slog.String("component", "dashboard_handler")),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/dataset", h.UploadDataset)
	r.Get("/dataset/roles", h.GetRoles)
	r.Get("/dataset/table", h.GetTable)
	r.Get("/dashboard", h.GetDashboard)

	return r
}

// UploadDataset handles POST /api/dataset: a multipart upload carrying the
// sales file under the "file" field. The pipeline runs synchronously and the
// response includes the role mapping, summary and filter widget options.
func (h *DashboardHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.logger.WarnContext(r.Context(), "invalid multipart upload",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("file", "Upload must include a \"file\" form field"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("file_name", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("request_id", reqID))

	result, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upload pipeline failed",
			slog.String("file_name", header.Filename),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.renderError(w, r, apierrors.FromAppError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, apiv1.DataResponse{
		Status: "success",
		Data:   result,
	})
}

// GetDashboard handles GET /api/dashboard?location=&category=&hour=.
// It recomputes the three aggregate views from the current dataset.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	filters, apiErr := parseFilters(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}

	views, err := h.service.Views(r.Context(), filters)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	ds, err := h.service.Current()
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.DashboardResponse{
		Status:  "success",
		Filters: filters,
		Views:   views,
		Summary: ds.Summary,
	})
}

// GetRoles handles GET /api/dataset/roles: the detected column mapping.
func (h *DashboardHandler) GetRoles(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Current()
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.DataResponse{
		Status: "success",
		Data:   ds.Roles,
	})
}

// GetTable handles GET /api/dataset/table: the full enriched table for
// tabular display.
func (h *DashboardHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Current()
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.TableResponse{
		Status: "success",
		Data:   ds.Table,
		Count:  ds.Table.RowCount(),
	})
}

// parseFilters extracts the filter state from query parameters. Absent
// parameters keep the defaults (all locations, all categories, hour 12).
func parseFilters(r *http.Request) (domain.FilterState, *apierrors.APIError) {
	filters := domain.DefaultFilters()

	query := r.URL.Query()
	filters.Location = query.Get("location")
	filters.Category = query.Get("category")

	if raw := query.Get("hour"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			return filters, apierrors.ErrValidation("hour", "Hour must be an integer")
		}
		if hour < 0 || hour > 23 {
			return filters, apierrors.ErrValidation("hour", "Hour must be between 0 and 23")
		}
		filters.Hour = hour
	}

	return filters, nil
}

func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNoDataset) {
		h.renderError(w, r, apierrors.ErrDatasetMissing)
		return
	}
	h.renderError(w, r, apierrors.FromAppError(err))
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apierrors.NewErrorResponse(apiErr))
}
