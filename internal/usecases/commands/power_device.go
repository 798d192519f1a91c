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
	PowerOnDeviceCommand struct {
		ID string
	}

	PowerOffDeviceCommand struct {
		ID string
	}

	PowerOnDeviceCommandHandler  = decorator.CommandHandler[PowerOnDeviceCommand, struct{}]
	PowerOffDeviceCommandHandler = decorator.CommandHandler[PowerOffDeviceCommand, struct{}]

	powerOnDeviceCommandHandler struct {
		inventory ports.InventoryService
	}

	powerOffDeviceCommandHandler struct {
		inventory ports.InventoryService
	}
)

func NewPowerOnDeviceCommandHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) PowerOnDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[PowerOnDeviceCommand, struct{}](
		powerOnDeviceCommandHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func NewPowerOffDeviceCommandHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) PowerOffDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[PowerOffDeviceCommand, struct{}](
		powerOffDeviceCommandHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h powerOnDeviceCommandHandler) Handle(ctx context.Context, cmd PowerOnDeviceCommand) (struct{}, error) {
	return struct{}{}, h.inventory.PowerOn(ctx, cmd.ID)
}

func (h powerOffDeviceCommandHandler) Handle(ctx context.Context, cmd PowerOffDeviceCommand) (struct{}, error) {
	return struct{}{}, h.inventory.PowerOff(ctx, cmd.ID)
}
