package ports

import (
	"context"

	"github.com/architeacher/inventory/internal/domain/model"
)

type (
	DeviceLoader interface {
		// LoadAll reads every device from the backing store, skipping records that cannot be decoded.
		LoadAll(ctx context.Context) ([]model.Device, error)
	}

	DeviceSaver interface {
		// SaveAll overwrites the backing store with the given devices, in order.
		SaveAll(ctx context.Context, devices []model.Device) error
	}

	// DeviceRepository defines the bulk persistence contract of the inventory.
	DeviceRepository interface {
		DeviceLoader
		DeviceSaver
	}
)
