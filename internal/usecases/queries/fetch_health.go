package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/decorator"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	FetchHealthReportQuery struct{}

	HealthResult struct {
		Status       string                            `json:"status"`
		Version      string                            `json:"version"`
		Uptime       string                            `json:"uptime"`
		Devices      int                               `json:"devices"`
		Capacity     int                               `json:"capacity"`
		Dependencies map[string]ports.DependencyStatus `json:"dependencies"`
	}

	FetchHealthReportQueryHandler = decorator.QueryHandler[FetchHealthReportQuery, *HealthResult]

	fetchHealthReportQueryHandler struct {
		store     ports.StoreHealthChecker
		storeName string
		version   string
		inventory ports.InventoryService
		startTime time.Time
	}
)

func NewFetchHealthReportQueryHandler(
	store ports.StoreHealthChecker,
	storeName string,
	version string,
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchHealthReportQueryHandler {
	return decorator.ApplyQueryDecorators[FetchHealthReportQuery, *HealthResult](
		fetchHealthReportQueryHandler{
			store:     store,
			storeName: storeName,
			version:   version,
			inventory: svc,
			startTime: time.Now(),
		},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h fetchHealthReportQueryHandler) Execute(ctx context.Context, _ FetchHealthReportQuery) (*HealthResult, error) {
	start := time.Now()
	storeErr := h.store.Ping(ctx)
	latency := time.Since(start)

	storeStatus := ports.DependencyStatus{
		Healthy: storeErr == nil,
		Latency: fmt.Sprintf("%dms", latency.Milliseconds()),
	}

	if storeErr != nil {
		storeStatus.Message = storeErr.Error()
	}

	overallStatus := "healthy"
	if !storeStatus.Healthy {
		overallStatus = "unhealthy"
	}

	return &HealthResult{
		Status:       overallStatus,
		Version:      h.version,
		Uptime:       time.Since(h.startTime).String(),
		Devices:      h.inventory.Count(),
		Capacity:     h.inventory.Capacity(),
		Dependencies: map[string]ports.DependencyStatus{h.storeName: storeStatus},
	}, nil
}
