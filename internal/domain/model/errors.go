package model

import (
	"errors"
	"fmt"
)

var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrDuplicateDevice  = errors.New("device already exists")
	ErrCapacityExceeded = errors.New("inventory capacity exceeded")
	ErrInvalidDevice    = errors.New("invalid device")
	ErrInvalidDeviceID  = errors.New("invalid device ID")
	ErrInvalidKind      = errors.New("invalid device kind")

	ErrBatteryOutOfRange = errors.New("battery percentage out of range")
	ErrInvalidIPAddress  = errors.New("invalid IP address")

	ErrEmptyBattery = errors.New("battery too low to power on")
	ErrEmptySystem  = errors.New("operating system is not installed")
	ErrConnection   = errors.New("unable to connect to the network")

	ErrMalformedRecord    = errors.New("malformed record")
	ErrFieldCount         = fmt.Errorf("%w: field count out of range", ErrMalformedRecord)
	ErrInvalidIdentifier  = fmt.Errorf("%w: invalid identifier", ErrMalformedRecord)
	ErrUnrecognizedRecord = fmt.Errorf("%w: unrecognized device record", ErrMalformedRecord)

	ErrStoreNotFound    = errors.New("backing store not found")
	ErrStoreUnavailable = errors.New("backing store unavailable")
)

// PowerError reports a rejected power-on transition. Err is one of
// ErrEmptyBattery, ErrEmptySystem or ErrConnection.
type PowerError struct {
	DeviceID string
	Kind     Kind
	Err      error
}

func (e *PowerError) Error() string {
	return fmt.Sprintf("cannot power on %s device %s: %v", e.Kind, e.DeviceID, e.Err)
}

func (e *PowerError) Unwrap() error {
	return e.Err
}

type ValidationError struct {
	Field   string
	Message string
	Code    string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message, code string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}
