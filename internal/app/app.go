// Package app wires configuration, logging, the dashboard service and the
// HTTP transport into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salesdash/internal/config"
	"salesdash/internal/infrastructure"
	"salesdash/internal/middleware"
	"salesdash/internal/services"
	transporthttp "salesdash/internal/transport/http"
	"salesdash/pkg/contracts"
	apiv1 "salesdash/pkg/contracts/api/v1"
)

// App holds the assembled application.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *services.DashboardService
	server  *http.Server
}

// New assembles the application from configuration.
func New(cfg *config.Config) (*App, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	service := services.NewDashboardService(logger)

	app := &App{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// router builds the middleware chain and mounts the API routes.
func (a *App) router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.NewRateLimiter(a.cfg.Server.RateLimitRPS, a.cfg.Server.RateLimitBurst, a.logger).Handler)
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		Logger:         a.logger,
	}))
	r.Use(middleware.Timeout(a.cfg.Server.RequestTimeout, a.logger))
	r.Use(middleware.Compress(5))

	handler := transporthttp.NewDashboardHandler(a.service, a.logger, a.cfg.Upload.MaxSizeBytes)
	r.Mount("/api", handler.Routes())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, apiv1.HealthResponse{
			Status:  "ok",
			Version: contracts.Version,
		})
	})

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return infrastructure.CloseLogFile()
}
