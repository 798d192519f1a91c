package commands

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
	// EditDeviceCommand renames and/or re-identifies a device. Nil fields are left unchanged.
	EditDeviceCommand struct {
		ID      string
		NewID   *string
		NewName *string
	}

	EditDeviceCommandHandler = decorator.CommandHandler[EditDeviceCommand, model.Device]

	editDeviceCommandHandler struct {
		inventory ports.InventoryService
	}
)

func NewEditDeviceCommandHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) EditDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[EditDeviceCommand, model.Device](
		editDeviceCommandHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h editDeviceCommandHandler) Handle(ctx context.Context, cmd EditDeviceCommand) (model.Device, error) {
	if err := h.inventory.EditDevice(ctx, cmd.ID, cmd.NewID, cmd.NewName); err != nil {
		return nil, err
	}

	id := cmd.ID
	if cmd.NewID != nil {
		id = *cmd.NewID
	}

	return h.inventory.GetDevice(ctx, id)
}
