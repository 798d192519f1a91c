package commands

import (
	"context"

	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/decorator"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	RemoveDeviceCommand struct {
		ID string
	}

	RemoveDeviceCommandHandler = decorator.CommandHandler[RemoveDeviceCommand, struct{}]

	removeDeviceCommandHandler struct {
		inventory ports.InventoryService
	}
)

func NewRemoveDeviceCommandHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) RemoveDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[RemoveDeviceCommand, struct{}](
		removeDeviceCommandHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h removeDeviceCommandHandler) Handle(ctx context.Context, cmd RemoveDeviceCommand) (struct{}, error) {
	return struct{}{}, h.inventory.RemoveDevice(ctx, cmd.ID)
}
