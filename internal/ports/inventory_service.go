package ports

import (
	"context"

	"github.com/architeacher/inventory/internal/domain/model"
)

// InventoryService defines the operations external callers may run against the inventory.
type InventoryService interface {
	// AddDevice appends a device unless the inventory is full or the ID is taken.
	AddDevice(ctx context.Context, device model.Device) error

	// RemoveDevice deletes the device with the given ID.
	RemoveDevice(ctx context.Context, id string) error

	// EditDevice changes the ID and/or name of a device; nil arguments are left unchanged.
	EditDevice(ctx context.Context, id string, newID, newName *string) error

	// PowerOn switches a device on. Unknown IDs are ignored.
	PowerOn(ctx context.Context, id string) error

	// PowerOff switches a device off. Unknown IDs are ignored.
	PowerOff(ctx context.Context, id string) error

	// GetDevice returns a copy of the device with the given ID.
	GetDevice(ctx context.Context, id string) (model.Device, error)

	// ListDevices returns copies of all devices in insertion order.
	ListDevices(ctx context.Context) []model.Device

	// Count returns the number of devices held.
	Count() int

	// Capacity returns the maximum number of devices the inventory accepts.
	Capacity() int
}
