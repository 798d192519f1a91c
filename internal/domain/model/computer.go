package model

import (
	"fmt"
	"strings"
)

type (
	ComputerOption func(*Computer)

	Computer struct {
		base
		operatingSystem *string
	}
)

func WithOperatingSystem(os string) ComputerOption {
	return func(c *Computer) {
		c.SetOperatingSystem(os)
	}
}

func NewComputer(id, name string, opts ...ComputerOption) (*Computer, error) {
	b, err := newBase(id, name)
	if err != nil {
		return nil, err
	}

	c := &Computer{base: b}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Computer) Kind() Kind {
	return KindComputer
}

// OperatingSystem reports the installed system and whether one is set at all.
func (c *Computer) OperatingSystem() (string, bool) {
	if c.operatingSystem == nil {
		return "", false
	}

	return *c.operatingSystem, true
}

func (c *Computer) SetOperatingSystem(os string) {
	c.operatingSystem = &os
}

func (c *Computer) ClearOperatingSystem() {
	c.operatingSystem = nil
}

func (c *Computer) hasSystem() bool {
	return c.operatingSystem != nil && strings.TrimSpace(*c.operatingSystem) != ""
}

func (c *Computer) PowerOn() error {
	if !c.hasSystem() {
		return &PowerError{DeviceID: c.id, Kind: KindComputer, Err: ErrEmptySystem}
	}

	c.on = true

	return nil
}

// Encode omits the operating system field when it is absent or blank.
func (c *Computer) Encode() string {
	if !c.hasSystem() {
		return encodeFields(c.id, c.name)
	}

	return encodeFields(c.id, c.name, *c.operatingSystem)
}

func (c *Computer) Clone() Device {
	cp := *c

	if c.operatingSystem != nil {
		os := *c.operatingSystem
		cp.operatingSystem = &os
	}

	return &cp
}

func (c *Computer) String() string {
	os, _ := c.OperatingSystem()

	return fmt.Sprintf("PC - ID: %s, Name: %s, OS: %s, On: %t", c.id, c.name, os, c.on)
}
