package model

import (
	"fmt"
	"strconv"
)

const (
	MinBattery = 0
	MaxBattery = 100

	// LowBatteryThreshold is the level under which the notifier fires.
	LowBatteryThreshold = 20
	// MinPowerOnBattery is the lowest level from which a watch may be switched on.
	MinPowerOnBattery = 11
	// PowerOnBatteryCost is consumed by every successful power-on.
	PowerOnBatteryCost = 10
)

type (
	// BatteryNotifier is told whenever a watch battery drops below LowBatteryThreshold.
	BatteryNotifier interface {
		NotifyLowBattery(deviceID string, level int)
	}

	BatteryNotifierFunc func(deviceID string, level int)

	WatchOption func(*Watch)

	Watch struct {
		base
		battery  int
		notifier BatteryNotifier
	}
)

func (f BatteryNotifierFunc) NotifyLowBattery(deviceID string, level int) {
	f(deviceID, level)
}

func WithBatteryNotifier(n BatteryNotifier) WatchOption {
	return func(w *Watch) {
		w.notifier = n
	}
}

func NewWatch(id, name string, battery int, opts ...WatchOption) (*Watch, error) {
	b, err := newBase(id, name)
	if err != nil {
		return nil, err
	}

	w := &Watch{base: b}

	for _, opt := range opts {
		opt(w)
	}

	if err := w.SetBattery(battery); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Watch) Kind() Kind {
	return KindSmartwatch
}

func (w *Watch) Battery() int {
	return w.battery
}

// SetBattery rejects levels outside [MinBattery, MaxBattery] without changing the watch.
func (w *Watch) SetBattery(level int) error {
	if level < MinBattery || level > MaxBattery {
		return fmt.Errorf("%w: %d", ErrBatteryOutOfRange, level)
	}

	w.battery = level

	if w.battery < LowBatteryThreshold && w.notifier != nil {
		w.notifier.NotifyLowBattery(w.id, w.battery)
	}

	return nil
}

func (w *Watch) SetNotifier(n BatteryNotifier) {
	w.notifier = n
}

func (w *Watch) PowerOn() error {
	if w.battery < MinPowerOnBattery {
		return &PowerError{DeviceID: w.id, Kind: KindSmartwatch, Err: ErrEmptyBattery}
	}

	if err := w.SetBattery(max(MinBattery, w.battery-PowerOnBatteryCost)); err != nil {
		return err
	}

	w.on = true

	return nil
}

func (w *Watch) Encode() string {
	return encodeFields(w.id, w.name, strconv.Itoa(w.battery)+"%")
}

func (w *Watch) Clone() Device {
	c := *w

	return &c
}

func (w *Watch) String() string {
	return fmt.Sprintf("Smartwatch - ID: %s, Name: %s, Battery: %d%%, On: %t", w.id, w.name, w.battery, w.on)
}
