package repos

import (
	"context"

	"github.com/architeacher/inventory/internal/codec"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
)

type (
	// RecordObserver is told about stored records a repository had to skip.
	RecordObserver interface {
		RecordSkipped(ctx context.Context, record string, reason error)
	}

	nopRecordObserver struct{}

	// recordRow is the tabular shape of a device shared by the SQL stores.
	recordRow struct {
		Position int    `db:"position"`
		ID       string `db:"id"`
		Kind     string `db:"kind"`
		Record   string `db:"record"`
		// On is nil for rows written before the power state was stored.
		On *bool `db:"is_on"`
	}
)

var _ RecordObserver = (ports.EventObserver)(nil)

func (nopRecordObserver) RecordSkipped(context.Context, string, error) {}

func observerOrNop(observer RecordObserver) RecordObserver {
	if observer == nil {
		return nopRecordObserver{}
	}

	return observer
}

func decodeRecords(ctx context.Context, records []string, observer RecordObserver) []model.Device {
	return codec.DecodeAll(records, func(record string, reason error) {
		observer.RecordSkipped(ctx, record, reason)
	})
}

func toRows(devices []model.Device) []recordRow {
	rows := make([]recordRow, len(devices))

	for i, device := range devices {
		on := device.IsOn()

		rows[i] = recordRow{
			Position: i,
			ID:       device.ID(),
			Kind:     device.Kind().String(),
			Record:   codec.Encode(device),
			On:       &on,
		}
	}

	return rows
}

// decodeRows decodes every row's record and restores its stored power state.
func decodeRows(ctx context.Context, rows []recordRow, observer RecordObserver) []model.Device {
	devices := make([]model.Device, 0, len(rows))

	for _, row := range rows {
		device, err := codec.Decode(row.Record)
		if err != nil {
			observer.RecordSkipped(ctx, row.Record, err)

			continue
		}

		if row.On != nil {
			model.RestorePower(device, *row.On)
		}

		devices = append(devices, device)
	}

	return devices
}
