package queries

import (
	"context"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/decorator"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	GetDeviceQuery struct {
		ID string
	}

	GetDeviceQueryHandler = decorator.QueryHandler[GetDeviceQuery, model.Device]

	getDeviceQueryHandler struct {
		inventory ports.InventoryService
	}
)

func NewGetDeviceQueryHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetDeviceQueryHandler {
	return decorator.ApplyQueryDecorators[GetDeviceQuery, model.Device](
		getDeviceQueryHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getDeviceQueryHandler) Execute(ctx context.Context, query GetDeviceQuery) (model.Device, error) {
	return h.inventory.GetDevice(ctx, query.ID)
}
