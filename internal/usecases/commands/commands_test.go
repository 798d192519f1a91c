package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/infrastructure"
	"github.com/architeacher/inventory/internal/services"
	"github.com/architeacher/inventory/internal/usecases/commands"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	devices []model.Device
	saves   int
}

func (r *memoryRepository) LoadAll(context.Context) ([]model.Device, error) {
	return r.devices, nil
}

func (r *memoryRepository) SaveAll(_ context.Context, devices []model.Device) error {
	r.saves++
	r.devices = devices

	return nil
}

func newInventory(t *testing.T, devices ...model.Device) (*services.InventoryService, *memoryRepository) {
	t.Helper()

	repo := &memoryRepository{devices: devices}

	svc, err := services.NewInventoryService(context.Background(), repo, services.WithCapacity(3))
	require.NoError(t, err)

	return svc, repo
}

func seeded(t *testing.T) []model.Device {
	t.Helper()

	watch, err := model.NewWatch("SW-1", "Tracker", 80)
	require.NoError(t, err)

	computer, err := model.NewComputer("P-2", "Box")
	require.NoError(t, err)

	return []model.Device{watch, computer}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestAddDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.NewTestLogger()
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	cases := []struct {
		name         string
		cmd          commands.AddDeviceCommand
		expectedErr  error
		expectedKind model.Kind
		validation   bool
	}{
		{
			name:         "smartwatch",
			cmd:          commands.AddDeviceCommand{Kind: model.KindSmartwatch, ID: "SW-3", Name: "Runner", BatteryPercentage: intPtr(55)},
			expectedKind: model.KindSmartwatch,
		},
		{
			name:         "computer without system",
			cmd:          commands.AddDeviceCommand{Kind: model.KindComputer, ID: "P-3", Name: "Spare"},
			expectedKind: model.KindComputer,
		},
		{
			name:         "embedded controller",
			cmd:          commands.AddDeviceCommand{Kind: model.KindEmbedded, ID: "ED-3", Name: "Sensor", IPAddress: "999.1.1.1", NetworkName: "MD Ltd. Lab"},
			expectedKind: model.KindEmbedded,
		},
		{
			name:       "unknown type",
			cmd:        commands.AddDeviceCommand{Kind: "phone", ID: "X-1", Name: "Phone"},
			validation: true,
		},
		{
			name:       "smartwatch without battery",
			cmd:        commands.AddDeviceCommand{Kind: model.KindSmartwatch, ID: "SW-3", Name: "Runner"},
			validation: true,
		},
		{
			name:       "controller without network",
			cmd:        commands.AddDeviceCommand{Kind: model.KindEmbedded, ID: "ED-3", Name: "Sensor", IPAddress: "10.0.0.1"},
			validation: true,
		},
		{
			name:        "battery out of range",
			cmd:         commands.AddDeviceCommand{Kind: model.KindSmartwatch, ID: "SW-3", Name: "Runner", BatteryPercentage: intPtr(101)},
			expectedErr: model.ErrBatteryOutOfRange,
		},
		{
			name:        "malformed ip",
			cmd:         commands.AddDeviceCommand{Kind: model.KindEmbedded, ID: "ED-3", Name: "Sensor", IPAddress: "10.0.0", NetworkName: "MD Ltd."},
			expectedErr: model.ErrInvalidIPAddress,
		},
		{
			name:        "duplicate id",
			cmd:         commands.AddDeviceCommand{Kind: model.KindComputer, ID: "P-2", Name: "Clone"},
			expectedErr: model.ErrDuplicateDevice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, repo := newInventory(t, seeded(t)...)
			handler := commands.NewAddDeviceCommandHandler(svc, log, mc, tp)

			device, err := handler.Handle(context.Background(), tc.cmd)

			switch {
			case tc.validation:
				var validationErr *model.ValidationErrors
				require.ErrorAs(t, err, &validationErr)
				require.True(t, validationErr.HasErrors())
				require.Nil(t, device)
				require.Zero(t, repo.saves)
			case tc.expectedErr != nil:
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, device)
				require.Zero(t, repo.saves)
			default:
				require.NoError(t, err)
				require.Equal(t, tc.cmd.ID, device.ID())
				require.Equal(t, tc.expectedKind, device.Kind())
				require.Equal(t, 3, svc.Count())
				require.Equal(t, 1, repo.saves)
			}
		})
	}
}

func TestAddDeviceCommandHandler_Capacity(t *testing.T) {
	t.Parallel()

	svc, _ := newInventory(t, seeded(t)...)
	handler := commands.NewAddDeviceCommandHandler(svc, logger.NewTestLogger(), noop.NewMetricsClient(), infrastructure.NewNoopTracerProvider())

	_, err := handler.Handle(context.Background(), commands.AddDeviceCommand{Kind: model.KindComputer, ID: "P-3", Name: "Third"})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), commands.AddDeviceCommand{Kind: model.KindComputer, ID: "P-4", Name: "Fourth"})
	require.ErrorIs(t, err, model.ErrCapacityExceeded)
	require.Equal(t, 3, svc.Count())
}

func TestEditDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		cmd          commands.EditDeviceCommand
		expectedID   string
		expectedName string
		expectedErr  error
	}{
		{
			name:         "rename",
			cmd:          commands.EditDeviceCommand{ID: "SW-1", NewName: strPtr("Runner")},
			expectedID:   "SW-1",
			expectedName: "Runner",
		},
		{
			name:         "re-identify",
			cmd:          commands.EditDeviceCommand{ID: "SW-1", NewID: strPtr("SW-9")},
			expectedID:   "SW-9",
			expectedName: "Tracker",
		},
		{
			name:        "absent",
			cmd:         commands.EditDeviceCommand{ID: "SW-404", NewName: strPtr("Ghost")},
			expectedErr: model.ErrDeviceNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newInventory(t, seeded(t)...)
			handler := commands.NewEditDeviceCommandHandler(svc, logger.NewTestLogger(), noop.NewMetricsClient(), infrastructure.NewNoopTracerProvider())

			device, err := handler.Handle(context.Background(), tc.cmd)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedID, device.ID())
			require.Equal(t, tc.expectedName, device.Name())
		})
	}
}

func TestRemoveDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	svc, repo := newInventory(t, seeded(t)...)
	handler := commands.NewRemoveDeviceCommandHandler(svc, logger.NewTestLogger(), noop.NewMetricsClient(), infrastructure.NewNoopTracerProvider())

	_, err := handler.Handle(context.Background(), commands.RemoveDeviceCommand{ID: "SW-1"})
	require.NoError(t, err)
	require.Equal(t, 1, svc.Count())

	_, err = handler.Handle(context.Background(), commands.RemoveDeviceCommand{ID: "SW-1"})
	require.ErrorIs(t, err, model.ErrDeviceNotFound)
	require.Equal(t, 1, repo.saves)
}

func TestPowerCommandHandlers(t *testing.T) {
	t.Parallel()

	svc, _ := newInventory(t, seeded(t)...)
	log := logger.NewTestLogger()
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	powerOn := commands.NewPowerOnDeviceCommandHandler(svc, log, mc, tp)
	powerOff := commands.NewPowerOffDeviceCommandHandler(svc, log, mc, tp)
	ctx := context.Background()

	_, err := powerOn.Handle(ctx, commands.PowerOnDeviceCommand{ID: "SW-1"})
	require.NoError(t, err)

	watch, err := svc.GetDevice(ctx, "SW-1")
	require.NoError(t, err)
	require.True(t, watch.IsOn())

	_, err = powerOn.Handle(ctx, commands.PowerOnDeviceCommand{ID: "P-2"})
	require.ErrorIs(t, err, model.ErrEmptySystem)

	var powerErr *model.PowerError
	require.True(t, errors.As(err, &powerErr))
	require.Equal(t, model.KindComputer, powerErr.Kind)

	_, err = powerOn.Handle(ctx, commands.PowerOnDeviceCommand{ID: "SW-404"})
	require.NoError(t, err)

	_, err = powerOff.Handle(ctx, commands.PowerOffDeviceCommand{ID: "SW-1"})
	require.NoError(t, err)

	watch, err = svc.GetDevice(ctx, "SW-1")
	require.NoError(t, err)
	require.False(t, watch.IsOn())
}
