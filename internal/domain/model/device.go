package model

import (
	"fmt"
	"strings"
)

// RecordDelimiter separates the fields of an encoded device record.
// Fields are not escaped.
const RecordDelimiter = ","

type (
	// Device is implemented by Watch, Computer and EmbeddedController only.
	Device interface {
		ID() string
		Name() string
		IsOn() bool
		Kind() Kind

		SetID(id string) error
		SetName(name string)

		// PowerOn validates the variant precondition and switches the device on.
		// A rejected transition returns a *PowerError and leaves the device untouched.
		PowerOn() error
		PowerOff()

		// Encode renders the canonical delimited record for the device.
		Encode() string
		Clone() Device
		String() string

		isDevice()
		setPower(on bool)
	}

	base struct {
		id   string
		name string
		on   bool
	}
)

func newBase(id, name string) (base, error) {
	if strings.TrimSpace(id) == "" {
		return base{}, fmt.Errorf("%w: identifier must not be blank", ErrInvalidDeviceID)
	}

	return base{id: id, name: name}, nil
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Name() string {
	return b.name
}

func (b *base) IsOn() bool {
	return b.on
}

func (b *base) SetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: identifier must not be blank", ErrInvalidDeviceID)
	}

	b.id = id

	return nil
}

func (b *base) SetName(name string) {
	b.name = name
}

func (b *base) PowerOff() {
	b.on = false
}

func (b *base) isDevice() {}

func (b *base) setPower(on bool) {
	b.on = on
}

// RestorePower applies a persisted power state to a freshly decoded device.
// It skips the variant's power-on checks and side effects.
func RestorePower(device Device, on bool) {
	device.setPower(on)
}

func encodeFields(fields ...string) string {
	return strings.Join(fields, RecordDelimiter)
}
