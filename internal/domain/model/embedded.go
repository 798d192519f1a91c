package model

import (
	"fmt"
	"regexp"
	"strings"
)

// RequiredNetworkMarker must appear in the network name for Connect to succeed.
const RequiredNetworkMarker = "MD Ltd."

// ipAddressPattern checks the dotted-quad shape only; octets above 255 are accepted.
var ipAddressPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

type EmbeddedController struct {
	base
	ipAddress   string
	networkName string
}

func NewEmbeddedController(id, name, ipAddress, networkName string) (*EmbeddedController, error) {
	b, err := newBase(id, name)
	if err != nil {
		return nil, err
	}

	e := &EmbeddedController{base: b, networkName: networkName}

	if err := e.SetIPAddress(ipAddress); err != nil {
		return nil, err
	}

	return e, nil
}

func ValidIPAddress(ip string) bool {
	return ipAddressPattern.MatchString(ip)
}

func (e *EmbeddedController) Kind() Kind {
	return KindEmbedded
}

func (e *EmbeddedController) IPAddress() string {
	return e.ipAddress
}

func (e *EmbeddedController) SetIPAddress(ip string) error {
	if !ValidIPAddress(ip) {
		return fmt.Errorf("%w: %q", ErrInvalidIPAddress, ip)
	}

	e.ipAddress = ip

	return nil
}

func (e *EmbeddedController) NetworkName() string {
	return e.networkName
}

func (e *EmbeddedController) SetNetworkName(name string) {
	e.networkName = name
}

// Connect succeeds only on networks carrying RequiredNetworkMarker.
func (e *EmbeddedController) Connect() error {
	if !strings.Contains(e.networkName, RequiredNetworkMarker) {
		return fmt.Errorf("%w: %q", ErrConnection, e.networkName)
	}

	return nil
}

func (e *EmbeddedController) PowerOn() error {
	if err := e.Connect(); err != nil {
		return &PowerError{DeviceID: e.id, Kind: KindEmbedded, Err: err}
	}

	e.on = true

	return nil
}

func (e *EmbeddedController) Encode() string {
	return encodeFields(e.id, e.name, e.ipAddress, e.networkName)
}

func (e *EmbeddedController) Clone() Device {
	c := *e

	return &c
}

func (e *EmbeddedController) String() string {
	return fmt.Sprintf(
		"Embedded - ID: %s, Name: %s, IP: %s, Network: %s, On: %t",
		e.id, e.name, e.ipAddress, e.networkName, e.on,
	)
}
