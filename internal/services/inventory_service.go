package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
)

// DefaultCapacity is the number of devices an inventory holds unless configured otherwise.
const DefaultCapacity = 15

const (
	opLoad     = "load"
	opAdd      = "add"
	opRemove   = "remove"
	opEdit     = "edit"
	opPowerOn  = "power_on"
	opPowerOff = "power_off"
)

type (
	Option func(*InventoryService)

	// InventoryService owns the in-memory device collection. Every successful
	// mutation is persisted with a full SaveAll before it becomes visible.
	// It performs no locking: callers serialize access.
	InventoryService struct {
		repo     ports.DeviceRepository
		observer ports.EventObserver
		capacity int
		devices  []model.Device
	}

	nopObserver struct{}

	lowBatteryEvent struct {
		deviceID string
		level    int
	}

	// pendingNotifications holds battery events raised on a working copy until it is committed.
	pendingNotifications []lowBatteryEvent
)

var _ ports.InventoryService = (*InventoryService)(nil)

func WithCapacity(capacity int) Option {
	return func(s *InventoryService) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

func WithObserver(observer ports.EventObserver) Option {
	return func(s *InventoryService) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// NewInventoryService loads the inventory from repo. Records with an ID seen
// earlier and records beyond the capacity are dropped and reported.
func NewInventoryService(ctx context.Context, repo ports.DeviceRepository, opts ...Option) (*InventoryService, error) {
	s := &InventoryService{
		repo:     repo,
		observer: nopObserver{},
		capacity: DefaultCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	loaded, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading devices: %w", err)
	}

	s.devices = make([]model.Device, 0, min(len(loaded), s.capacity))

	for _, device := range loaded {
		if s.indexOf(device.ID()) >= 0 {
			s.observer.RecordSkipped(ctx, device.Encode(), fmt.Errorf("%w: %s", model.ErrDuplicateDevice, device.ID()))

			continue
		}

		if len(s.devices) >= s.capacity {
			s.observer.OperationRejected(ctx, opLoad, device.ID(), model.ErrCapacityExceeded)

			continue
		}

		s.attach(device, s.observer)
		s.devices = append(s.devices, device)
		s.notifyIfLow(device)
	}

	return s, nil
}

func (s *InventoryService) Capacity() int {
	return s.capacity
}

func (s *InventoryService) Count() int {
	return len(s.devices)
}

func (s *InventoryService) AddDevice(ctx context.Context, device model.Device) error {
	if device == nil {
		return model.ErrInvalidDevice
	}

	if len(s.devices) >= s.capacity {
		return s.reject(ctx, opAdd, device.ID(), model.ErrCapacityExceeded)
	}

	if s.indexOf(device.ID()) >= 0 {
		return s.reject(ctx, opAdd, device.ID(), model.ErrDuplicateDevice)
	}

	added := device.Clone()

	err := s.apply(ctx, opAdd, added.ID(), func(devices []model.Device) ([]model.Device, error) {
		return append(devices, added), nil
	})
	if err != nil {
		return err
	}

	s.notifyIfLow(added)

	return nil
}

func (s *InventoryService) RemoveDevice(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return s.reject(ctx, opRemove, id, model.ErrDeviceNotFound)
	}

	return s.apply(ctx, opRemove, id, func(devices []model.Device) ([]model.Device, error) {
		return slices.Delete(devices, idx, idx+1), nil
	})
}

func (s *InventoryService) EditDevice(ctx context.Context, id string, newID, newName *string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return s.reject(ctx, opEdit, id, model.ErrDeviceNotFound)
	}

	if newID != nil && *newID != id && s.indexOf(*newID) >= 0 {
		return s.reject(ctx, opEdit, id, model.ErrDuplicateDevice)
	}

	return s.apply(ctx, opEdit, id, func(devices []model.Device) ([]model.Device, error) {
		device := devices[idx]

		if newName != nil {
			device.SetName(*newName)
		}

		if newID != nil {
			if err := device.SetID(*newID); err != nil {
				return nil, err
			}
		}

		return devices, nil
	})
}

func (s *InventoryService) PowerOn(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	return s.apply(ctx, opPowerOn, id, func(devices []model.Device) ([]model.Device, error) {
		if err := devices[idx].PowerOn(); err != nil {
			return nil, err
		}

		return devices, nil
	})
}

func (s *InventoryService) PowerOff(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	return s.apply(ctx, opPowerOff, id, func(devices []model.Device) ([]model.Device, error) {
		devices[idx].PowerOff()

		return devices, nil
	})
}

func (s *InventoryService) GetDevice(_ context.Context, id string) (model.Device, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrDeviceNotFound, id)
	}

	return s.devices[idx].Clone(), nil
}

func (s *InventoryService) ListDevices(_ context.Context) []model.Device {
	return cloneAll(s.devices)
}

// apply runs mutate on a copy of the collection and commits the copy only once it is saved.
// Battery notifications raised by mutate reach the observer only after the commit.
func (s *InventoryService) apply(
	ctx context.Context,
	operation, id string,
	mutate func([]model.Device) ([]model.Device, error),
) error {
	var pending pendingNotifications

	working := cloneAll(s.devices)
	for _, device := range working {
		s.attach(device, &pending)
	}

	next, err := mutate(working)
	if err != nil {
		return err
	}

	if err := s.repo.SaveAll(ctx, next); err != nil {
		return fmt.Errorf("%w: %s %s: %w", model.ErrStoreUnavailable, operation, id, err)
	}

	for _, device := range next {
		s.attach(device, s.observer)
	}

	s.devices = next
	pending.flush(s.observer)

	return nil
}

func (s *InventoryService) reject(ctx context.Context, operation, id string, reason error) error {
	s.observer.OperationRejected(ctx, operation, id, reason)

	return fmt.Errorf("%w: %s", reason, id)
}

func (s *InventoryService) attach(device model.Device, notifier model.BatteryNotifier) {
	if watch, ok := device.(*model.Watch); ok {
		watch.SetNotifier(notifier)
	}
}

// notifyIfLow reports a watch that enters the inventory already below the threshold.
func (s *InventoryService) notifyIfLow(device model.Device) {
	if watch, ok := device.(*model.Watch); ok && watch.Battery() < model.LowBatteryThreshold {
		s.observer.NotifyLowBattery(watch.ID(), watch.Battery())
	}
}

func (s *InventoryService) indexOf(id string) int {
	return slices.IndexFunc(s.devices, func(d model.Device) bool {
		return d.ID() == id
	})
}

func cloneAll(devices []model.Device) []model.Device {
	clones := make([]model.Device, len(devices))

	for i, device := range devices {
		clones[i] = device.Clone()
	}

	return clones
}

func (p *pendingNotifications) NotifyLowBattery(deviceID string, level int) {
	*p = append(*p, lowBatteryEvent{deviceID: deviceID, level: level})
}

func (p pendingNotifications) flush(notifier model.BatteryNotifier) {
	for _, event := range p {
		notifier.NotifyLowBattery(event.deviceID, event.level)
	}
}

func (nopObserver) NotifyLowBattery(string, int) {}

func (nopObserver) RecordSkipped(context.Context, string, error) {}

func (nopObserver) OperationRejected(context.Context, string, string, error) {}
