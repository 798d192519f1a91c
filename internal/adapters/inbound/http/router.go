package http

import (
	"net/http"

	"github.com/architeacher/inventory/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/inventory/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/inventory/internal/config"
	"github.com/architeacher/inventory/internal/usecases"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	baseURL     = "/v1"
	metricsPath = "/metrics"
)

type RouterConfig struct {
	App            *usecases.Application
	Logger         logger.Logger
	MetricsClient  metrics.Client
	TracerProvider otelTrace.TracerProvider
	Config         *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	// Core middlewares - always applied
	router.Use(middleware.RequestTracking())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))

	if cfg.Config.Telemetry.Traces.Enabled && cfg.TracerProvider != nil {
		router.Use(middleware.Tracer(cfg.TracerProvider))
		cfg.Logger.Info().Msg("distributed tracing enabled")
	}

	if cfg.Config.Telemetry.Metrics.Enabled {
		router.Use(middleware.NewMetricsMiddleware(cfg.MetricsClient).Middleware)
		cfg.Logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.LogHealthChecks))
		cfg.Logger.Info().
			Bool("log_health_checks", cfg.Config.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	if cfg.Config.Telemetry.Metrics.Enabled {
		router.Method(http.MethodGet, metricsPath, cfg.MetricsClient.Handler())
	}

	deviceHandler := handlers.NewDeviceHandler(cfg.App)
	healthHandler := handlers.NewHealthHandler(cfg.App)

	router.Route(baseURL, func(r chi.Router) {
		r.Use(middleware.Serialize())

		r.Get("/health", healthHandler.Health)
		r.Get("/health/live", healthHandler.Liveness)
		r.Get("/health/ready", healthHandler.Readiness)

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", deviceHandler.ListDevices)
			r.Post("/", deviceHandler.AddDevice)

			r.Route("/{deviceId}", func(r chi.Router) {
				r.Get("/", deviceHandler.GetDevice)
				r.Patch("/", deviceHandler.EditDevice)
				r.Delete("/", deviceHandler.RemoveDevice)
				r.Post("/power-on", deviceHandler.PowerOn)
				r.Post("/power-off", deviceHandler.PowerOff)
			})
		})
	})

	return router
}
