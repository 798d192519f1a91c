package services_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/architeacher/inventory/internal/adapters/repos"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/services"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type (
	memoryRepository struct {
		devices []model.Device
		loadErr error
		saveErr error
		saves   int
	}

	rejection struct {
		operation string
		deviceID  string
		reason    error
	}

	recordingObserver struct {
		lowBattery map[string]int
		skipped    []string
		rejected   []rejection
	}
)

func (r *memoryRepository) LoadAll(context.Context) ([]model.Device, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}

	return r.devices, nil
}

func (r *memoryRepository) SaveAll(_ context.Context, devices []model.Device) error {
	if r.saveErr != nil {
		return r.saveErr
	}

	r.saves++
	r.devices = devices

	return nil
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{lowBattery: map[string]int{}}
}

func (o *recordingObserver) NotifyLowBattery(deviceID string, level int) {
	o.lowBattery[deviceID] = level
}

func (o *recordingObserver) RecordSkipped(_ context.Context, record string, _ error) {
	o.skipped = append(o.skipped, record)
}

func (o *recordingObserver) OperationRejected(_ context.Context, operation, deviceID string, reason error) {
	o.rejected = append(o.rejected, rejection{operation: operation, deviceID: deviceID, reason: reason})
}

func mustWatch(t *testing.T, id string, battery int) *model.Watch {
	t.Helper()

	watch, err := model.NewWatch(id, "Watch "+id, battery)
	require.NoError(t, err)

	return watch
}

func mustComputer(t *testing.T, id string, opts ...model.ComputerOption) *model.Computer {
	t.Helper()

	computer, err := model.NewComputer(id, "Computer "+id, opts...)
	require.NoError(t, err)

	return computer
}

func mustController(t *testing.T, id, network string) *model.EmbeddedController {
	t.Helper()

	controller, err := model.NewEmbeddedController(id, "Controller "+id, "192.168.1.1", network)
	require.NoError(t, err)

	return controller
}

func newService(t *testing.T, repo *memoryRepository, opts ...services.Option) *services.InventoryService {
	t.Helper()

	svc, err := services.NewInventoryService(context.Background(), repo, opts...)
	require.NoError(t, err)

	return svc
}

func listIDs(svc *services.InventoryService) []string {
	devices := svc.ListDevices(context.Background())
	ids := make([]string, len(devices))

	for i, device := range devices {
		ids[i] = device.ID()
	}

	return ids
}

func TestNewInventoryService(t *testing.T) {
	t.Parallel()

	t.Run("load failure aborts construction", func(t *testing.T) {
		t.Parallel()

		svc, err := services.NewInventoryService(context.Background(), &memoryRepository{loadErr: model.ErrStoreNotFound})
		require.ErrorIs(t, err, model.ErrStoreNotFound)
		require.Nil(t, svc)
	})

	t.Run("truncates to capacity and reports the overflow", func(t *testing.T) {
		t.Parallel()

		var devices []model.Device
		for i := range 5 {
			devices = append(devices, mustWatch(t, fmt.Sprintf("SW-%d", i), 50))
		}

		observer := newRecordingObserver()
		svc := newService(t, &memoryRepository{devices: devices}, services.WithCapacity(3), services.WithObserver(observer))

		require.Equal(t, 3, svc.Capacity())
		require.Equal(t, []string{"SW-0", "SW-1", "SW-2"}, listIDs(svc))
		require.Len(t, observer.rejected, 2)
		require.ErrorIs(t, observer.rejected[0].reason, model.ErrCapacityExceeded)
		require.Equal(t, "SW-3", observer.rejected[0].deviceID)
	})

	t.Run("skips duplicate ids before truncating", func(t *testing.T) {
		t.Parallel()

		observer := newRecordingObserver()
		svc := newService(t, &memoryRepository{devices: []model.Device{
			mustWatch(t, "SW-1", 50),
			mustWatch(t, "SW-1", 60),
			mustComputer(t, "P-2"),
		}}, services.WithCapacity(2), services.WithObserver(observer))

		require.Equal(t, []string{"SW-1", "P-2"}, listIDs(svc))
		require.Equal(t, []string{"SW-1,Watch SW-1,60%"}, observer.skipped)
		require.Empty(t, observer.rejected)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &memoryRepository{}, services.WithCapacity(0), services.WithObserver(nil))

		require.Equal(t, services.DefaultCapacity, svc.Capacity())
		require.Zero(t, svc.Count())
	})
}

func TestInventoryService_AddDevice(t *testing.T) {
	t.Parallel()

	t.Run("appends and persists", func(t *testing.T) {
		t.Parallel()

		repo := &memoryRepository{}
		svc := newService(t, repo)

		require.NoError(t, svc.AddDevice(context.Background(), mustWatch(t, "SW-1", 80)))
		require.NoError(t, svc.AddDevice(context.Background(), mustComputer(t, "P-2")))

		require.Equal(t, []string{"SW-1", "P-2"}, listIDs(svc))
		require.Equal(t, 2, repo.saves)
		require.Len(t, repo.devices, 2)
	})

	t.Run("rejects the sixteenth device", func(t *testing.T) {
		t.Parallel()

		repo := &memoryRepository{}
		observer := newRecordingObserver()
		svc := newService(t, repo, services.WithObserver(observer))

		for i := range services.DefaultCapacity {
			require.NoError(t, svc.AddDevice(context.Background(), mustWatch(t, fmt.Sprintf("SW-%d", i), 50)))
		}

		err := svc.AddDevice(context.Background(), mustWatch(t, "SW-99", 50))
		require.ErrorIs(t, err, model.ErrCapacityExceeded)
		require.Equal(t, 15, svc.Count())
		require.Equal(t, 15, repo.saves)
		require.Equal(t, []rejection{{operation: "add", deviceID: "SW-99", reason: model.ErrCapacityExceeded}}, observer.rejected)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 80)}}
		svc := newService(t, repo)

		err := svc.AddDevice(context.Background(), mustComputer(t, "SW-1"))
		require.ErrorIs(t, err, model.ErrDuplicateDevice)
		require.Equal(t, 1, svc.Count())
		require.Zero(t, repo.saves)
	})

	t.Run("rejects nil", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &memoryRepository{})

		require.ErrorIs(t, svc.AddDevice(context.Background(), nil), model.ErrInvalidDevice)
	})

	t.Run("keeps no reference to the caller's device", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &memoryRepository{})
		watch := mustWatch(t, "SW-1", 80)

		require.NoError(t, svc.AddDevice(context.Background(), watch))
		watch.SetName("Changed outside")

		stored, err := svc.GetDevice(context.Background(), "SW-1")
		require.NoError(t, err)
		require.Equal(t, "Watch SW-1", stored.Name())
	})

	t.Run("save failure leaves the inventory unchanged", func(t *testing.T) {
		t.Parallel()

		repo := &memoryRepository{saveErr: errDiskFull}
		svc := newService(t, repo)

		err := svc.AddDevice(context.Background(), mustWatch(t, "SW-1", 80))
		require.ErrorIs(t, err, model.ErrStoreUnavailable)
		require.ErrorIs(t, err, errDiskFull)
		require.Zero(t, svc.Count())
	})
}

func TestInventoryService_RemoveDevice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		id            string
		expectedErr   error
		expectedIDs   []string
		expectedSaves int
	}{
		{
			name:          "removes and persists",
			id:            "P-2",
			expectedIDs:   []string{"SW-1", "ED-3"},
			expectedSaves: 1,
		},
		{
			name:        "nonexistent id leaves the collection unchanged",
			id:          "P-99",
			expectedErr: model.ErrDeviceNotFound,
			expectedIDs: []string{"SW-1", "P-2", "ED-3"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &memoryRepository{devices: []model.Device{
				mustWatch(t, "SW-1", 80),
				mustComputer(t, "P-2"),
				mustController(t, "ED-3", "MD Ltd. Net"),
			}}
			observer := newRecordingObserver()
			svc := newService(t, repo, services.WithObserver(observer))

			var err error
			require.NotPanics(t, func() {
				err = svc.RemoveDevice(context.Background(), tc.id)
			})

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Len(t, observer.rejected, 1)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tc.expectedIDs, listIDs(svc))
			require.Equal(t, tc.expectedSaves, repo.saves)
		})
	}
}

func TestInventoryService_EditDevice(t *testing.T) {
	t.Parallel()

	ptr := func(s string) *string { return &s }

	cases := []struct {
		name         string
		id           string
		newID        *string
		newName      *string
		expectedErr  error
		expectedID   string
		expectedName string
	}{
		{
			name:         "only name",
			id:           "SW-1",
			newName:      ptr("Renamed"),
			expectedID:   "SW-1",
			expectedName: "Renamed",
		},
		{
			name:         "only id",
			id:           "SW-1",
			newID:        ptr("SW-10"),
			expectedID:   "SW-10",
			expectedName: "Watch SW-1",
		},
		{
			name:         "both",
			id:           "SW-1",
			newID:        ptr("SW-11"),
			newName:      ptr("Both"),
			expectedID:   "SW-11",
			expectedName: "Both",
		},
		{
			name:         "same id is not a duplicate",
			id:           "SW-1",
			newID:        ptr("SW-1"),
			expectedID:   "SW-1",
			expectedName: "Watch SW-1",
		},
		{
			name:         "nothing",
			id:           "SW-1",
			expectedID:   "SW-1",
			expectedName: "Watch SW-1",
		},
		{
			name:        "absent device",
			id:          "SW-404",
			newName:     ptr("Ghost"),
			expectedErr: model.ErrDeviceNotFound,
		},
		{
			name:        "colliding id",
			id:          "SW-1",
			newID:       ptr("P-2"),
			expectedErr: model.ErrDuplicateDevice,
		},
		{
			name:        "blank id",
			id:          "SW-1",
			newID:       ptr("  "),
			expectedErr: model.ErrInvalidDeviceID,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 80), mustComputer(t, "P-2")}}
			svc := newService(t, repo)

			err := svc.EditDevice(context.Background(), tc.id, tc.newID, tc.newName)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Equal(t, []string{"SW-1", "P-2"}, listIDs(svc))
				require.Zero(t, repo.saves)

				return
			}

			require.NoError(t, err)
			require.Equal(t, 1, repo.saves)

			device, err := svc.GetDevice(context.Background(), tc.expectedID)
			require.NoError(t, err)
			require.Equal(t, tc.expectedName, device.Name())

			watch, ok := device.(*model.Watch)
			require.True(t, ok)
			require.Equal(t, 80, watch.Battery())
		})
	}
}

func TestInventoryService_PowerOn(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		device        func(t *testing.T) model.Device
		expectedErr   error
		expectedOn    bool
		expectedSaves int
	}{
		{
			name:        "empty watch",
			device:      func(t *testing.T) model.Device { return mustWatch(t, "SW-1", 0) },
			expectedErr: model.ErrEmptyBattery,
		},
		{
			name:          "charged watch",
			device:        func(t *testing.T) model.Device { return mustWatch(t, "SW-1", 15) },
			expectedOn:    true,
			expectedSaves: 1,
		},
		{
			name:        "computer without system",
			device:      func(t *testing.T) model.Device { return mustComputer(t, "P-1") },
			expectedErr: model.ErrEmptySystem,
		},
		{
			name:          "computer with system",
			device:        func(t *testing.T) model.Device { return mustComputer(t, "P-1", model.WithOperatingSystem("Linux")) },
			expectedOn:    true,
			expectedSaves: 1,
		},
		{
			name:        "controller on a foreign network",
			device:      func(t *testing.T) model.Device { return mustController(t, "ED-1", "Guest") },
			expectedErr: model.ErrConnection,
		},
		{
			name:          "controller on the company network",
			device:        func(t *testing.T) model.Device { return mustController(t, "ED-1", "MD Ltd. Lab") },
			expectedOn:    true,
			expectedSaves: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			device := tc.device(t)
			repo := &memoryRepository{devices: []model.Device{device}}
			svc := newService(t, repo)

			err := svc.PowerOn(context.Background(), device.ID())
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				var powerErr *model.PowerError
				require.ErrorAs(t, err, &powerErr)
				require.Equal(t, device.ID(), powerErr.DeviceID)
			} else {
				require.NoError(t, err)
			}

			stored, err := svc.GetDevice(context.Background(), device.ID())
			require.NoError(t, err)
			require.Equal(t, tc.expectedOn, stored.IsOn())
			require.Equal(t, tc.expectedSaves, repo.saves)
		})
	}
}

func TestInventoryService_PowerOnDrainsBattery(t *testing.T) {
	t.Parallel()

	observer := newRecordingObserver()
	repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 15)}}
	svc := newService(t, repo, services.WithObserver(observer))

	require.NoError(t, svc.PowerOn(context.Background(), "SW-1"))

	stored, err := svc.GetDevice(context.Background(), "SW-1")
	require.NoError(t, err)
	require.Equal(t, 5, stored.(*model.Watch).Battery())
	require.Equal(t, "SW-1,Watch SW-1,5%", repo.devices[0].Encode())
	require.Equal(t, 5, observer.lowBattery["SW-1"])
}

func TestInventoryService_LowBatteryOnEntry(t *testing.T) {
	t.Parallel()

	t.Run("loaded watch below the threshold", func(t *testing.T) {
		t.Parallel()

		observer := newRecordingObserver()
		repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-8", 5), mustWatch(t, "SW-7", 60)}}
		newService(t, repo, services.WithObserver(observer))

		require.Equal(t, map[string]int{"SW-8": 5}, observer.lowBattery)
	})

	t.Run("added watch below the threshold", func(t *testing.T) {
		t.Parallel()

		observer := newRecordingObserver()
		svc := newService(t, &memoryRepository{}, services.WithObserver(observer))

		require.NoError(t, svc.AddDevice(context.Background(), mustWatch(t, "SW-9", 15)))
		require.NoError(t, svc.AddDevice(context.Background(), mustWatch(t, "SW-10", 20)))

		require.Equal(t, map[string]int{"SW-9": 15}, observer.lowBattery)
	})

	t.Run("rejected add stays silent", func(t *testing.T) {
		t.Parallel()

		observer := newRecordingObserver()
		svc := newService(t, &memoryRepository{saveErr: errDiskFull}, services.WithObserver(observer))

		require.ErrorIs(t, svc.AddDevice(context.Background(), mustWatch(t, "SW-9", 15)), model.ErrStoreUnavailable)
		require.Empty(t, observer.lowBattery)
	})
}

func TestInventoryService_PowerOnSaveFailureSuppressesNotification(t *testing.T) {
	t.Parallel()

	observer := newRecordingObserver()
	repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 25)}}
	svc := newService(t, repo, services.WithObserver(observer))
	repo.saveErr = errDiskFull

	require.ErrorIs(t, svc.PowerOn(context.Background(), "SW-1"), model.ErrStoreUnavailable)
	require.Empty(t, observer.lowBattery)

	repo.saveErr = nil

	require.NoError(t, svc.PowerOn(context.Background(), "SW-1"))
	require.Equal(t, map[string]int{"SW-1": 15}, observer.lowBattery)
}

func TestInventoryService_PowerOnSaveFailure(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 80)}}
	svc := newService(t, repo)
	repo.saveErr = errDiskFull

	err := svc.PowerOn(context.Background(), "SW-1")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)

	stored, err := svc.GetDevice(context.Background(), "SW-1")
	require.NoError(t, err)
	require.False(t, stored.IsOn())
	require.Equal(t, 80, stored.(*model.Watch).Battery())
}

func TestInventoryService_PowerOff(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{devices: []model.Device{mustComputer(t, "P-1", model.WithOperatingSystem("Linux"))}}
	svc := newService(t, repo)

	require.NoError(t, svc.PowerOn(context.Background(), "P-1"))
	require.NoError(t, svc.PowerOff(context.Background(), "P-1"))

	stored, err := svc.GetDevice(context.Background(), "P-1")
	require.NoError(t, err)
	require.False(t, stored.IsOn())
	require.Equal(t, 2, repo.saves)
}

func TestInventoryService_PowerAbsentDevice(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	svc := newService(t, repo)

	require.NoError(t, svc.PowerOn(context.Background(), "SW-404"))
	require.NoError(t, svc.PowerOff(context.Background(), "SW-404"))
	require.Zero(t, repo.saves)
}

func TestInventoryService_Reads(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{devices: []model.Device{mustWatch(t, "SW-1", 80)}}
	svc := newService(t, repo)

	_, err := svc.GetDevice(context.Background(), "P-1")
	require.ErrorIs(t, err, model.ErrDeviceNotFound)

	listed := svc.ListDevices(context.Background())
	listed[0].SetName("Mutated copy")

	stored, err := svc.GetDevice(context.Background(), "SW-1")
	require.NoError(t, err)
	require.Equal(t, "Watch SW-1", stored.Name())
	require.Zero(t, repo.saves)
}

func TestInventoryService_FileStoreEndToEnd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "devices.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"SW-1,Tracker,80%\nP-2,Box,Linux\nED-3,Sensor,192.168.1.1,HomeMD Ltd.Net\n",
	), 0o600))

	repo, err := repos.NewFileRepository(path, nil)
	require.NoError(t, err)

	svc, err := services.NewInventoryService(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, 3, svc.Count())

	ctx := context.Background()
	require.NoError(t, svc.PowerOn(ctx, "SW-1"))
	require.NoError(t, svc.PowerOn(ctx, "ED-3"))
	require.NoError(t, svc.PowerOn(ctx, "P-2"))

	watch, err := svc.GetDevice(ctx, "SW-1")
	require.NoError(t, err)
	require.Equal(t, 70, watch.(*model.Watch).Battery())

	for _, id := range []string{"SW-1", "P-2", "ED-3"} {
		device, err := svc.GetDevice(ctx, id)
		require.NoError(t, err)
		require.True(t, device.IsOn(), id)
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "SW-1,Tracker,70%\nP-2,Box,Linux\nED-3,Sensor,192.168.1.1,HomeMD Ltd.Net\n", string(content))

	reloaded, err := services.NewInventoryService(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, []string{"SW-1", "P-2", "ED-3"}, listIDs(reloaded))
}
