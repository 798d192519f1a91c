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
	// ListDevicesQuery selects devices; a nil Spec lists everything.
	ListDevicesQuery struct {
		Spec model.Specification
	}

	DeviceList struct {
		Devices  []model.Device
		Total    int
		Capacity int
	}

	ListDevicesQueryHandler = decorator.QueryHandler[ListDevicesQuery, *DeviceList]

	listDevicesQueryHandler struct {
		inventory ports.InventoryService
	}
)

func NewListDevicesQueryHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListDevicesQueryHandler {
	return decorator.ApplyQueryDecorators[ListDevicesQuery, *DeviceList](
		listDevicesQueryHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listDevicesQueryHandler) Execute(ctx context.Context, query ListDevicesQuery) (*DeviceList, error) {
	return &DeviceList{
		Devices:  model.Filter(h.inventory.ListDevices(ctx), query.Spec),
		Total:    h.inventory.Count(),
		Capacity: h.inventory.Capacity(),
	}, nil
}
