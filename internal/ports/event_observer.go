package ports

import (
	"context"

	"github.com/architeacher/inventory/internal/domain/model"
)

// EventObserver receives the non-fatal events of the inventory: skipped records,
// rejected operations and low battery warnings.
type EventObserver interface {
	model.BatteryNotifier

	// RecordSkipped reports a stored record that could not be decoded.
	RecordSkipped(ctx context.Context, record string, reason error)

	// OperationRejected reports a mutation that was refused and left the inventory unchanged.
	OperationRejected(ctx context.Context, operation, deviceID string, reason error)
}
