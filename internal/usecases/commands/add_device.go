package commands

import (
	"context"
	"fmt"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/decorator"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	// AddDeviceCommand carries the union of the variant fields; Kind selects which apply.
	AddDeviceCommand struct {
		Kind              model.Kind
		ID                string
		Name              string
		BatteryPercentage *int
		OperatingSystem   *string
		IPAddress         string
		NetworkName       string
	}

	AddDeviceCommandHandler = decorator.CommandHandler[AddDeviceCommand, model.Device]

	addDeviceCommandHandler struct {
		inventory ports.InventoryService
	}
)

func NewAddDeviceCommandHandler(
	svc ports.InventoryService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) AddDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[AddDeviceCommand, model.Device](
		addDeviceCommandHandler{inventory: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h addDeviceCommandHandler) Handle(ctx context.Context, cmd AddDeviceCommand) (model.Device, error) {
	device, err := cmd.Device()
	if err != nil {
		return nil, err
	}

	if err := h.inventory.AddDevice(ctx, device); err != nil {
		return nil, err
	}

	return h.inventory.GetDevice(ctx, device.ID())
}

// Device builds the typed device the command describes.
func (cmd AddDeviceCommand) Device() (model.Device, error) {
	validation := model.NewValidationErrors()

	if !cmd.Kind.IsValid() {
		validation.Add("type", fmt.Sprintf("unsupported device type %q", cmd.Kind), "invalid_type")

		return nil, validation
	}

	switch cmd.Kind {
	case model.KindSmartwatch:
		if cmd.BatteryPercentage == nil {
			validation.Add("batteryPercentage", "battery percentage is required for a smartwatch", "required")

			return nil, validation
		}

		watch, err := model.NewWatch(cmd.ID, cmd.Name, *cmd.BatteryPercentage)
		if err != nil {
			return nil, err
		}

		return watch, nil
	case model.KindComputer:
		var opts []model.ComputerOption
		if cmd.OperatingSystem != nil {
			opts = append(opts, model.WithOperatingSystem(*cmd.OperatingSystem))
		}

		computer, err := model.NewComputer(cmd.ID, cmd.Name, opts...)
		if err != nil {
			return nil, err
		}

		return computer, nil
	default:
		if cmd.IPAddress == "" {
			validation.Add("ipAddress", "IP address is required for an embedded controller", "required")
		}

		if cmd.NetworkName == "" {
			validation.Add("networkName", "network name is required for an embedded controller", "required")
		}

		if validation.HasErrors() {
			return nil, validation
		}

		controller, err := model.NewEmbeddedController(cmd.ID, cmd.Name, cmd.IPAddress, cmd.NetworkName)
		if err != nil {
			return nil, err
		}

		return controller, nil
	}
}
