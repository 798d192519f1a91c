// Package codec maps between flat delimited device records and typed devices.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/architeacher/inventory/internal/domain/model"
)

const (
	MinFields = 2
	MaxFields = 5

	tagSeparator   = "-"
	batterySuffix  = "%"
	smartwatchArgs = 1
	embeddedArgs   = 2
)

// SkipFunc is told about every record DecodeAll could not turn into a device.
type SkipFunc func(record string, reason error)

// Tag returns the variant tag of an identifier: everything before the first "-",
// or the whole identifier when it has no separator.
func Tag(id string) string {
	tag, _, _ := strings.Cut(id, tagSeparator)

	return tag
}

// Decode parses a single record. Structural problems are reported as errors wrapping
// model.ErrMalformedRecord; field validation failures wrap the model's validation errors.
func Decode(record string) (model.Device, error) {
	fields := strings.Split(record, model.RecordDelimiter)
	if len(fields) < MinFields || len(fields) > MaxFields {
		return nil, fmt.Errorf("%w: got %d", model.ErrFieldCount, len(fields))
	}

	id := fields[0]
	tag := Tag(id)

	// Always holds for a non-blank id since tag is derived from id itself.
	if strings.TrimSpace(id) == "" || !strings.HasPrefix(id, tag) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidIdentifier, id)
	}

	name := fields[1]
	args := fields[2:]

	switch {
	case tag == model.TagSmartwatch && len(args) == smartwatchArgs:
		battery, ok := parseBattery(args[0])
		if !ok {
			break
		}

		watch, err := model.NewWatch(id, name, battery)
		if err != nil {
			return nil, fmt.Errorf("decoding watch %s: %w", id, err)
		}

		return watch, nil
	case tag == model.TagComputer && len(args) <= 1:
		var opts []model.ComputerOption
		if len(args) == 1 {
			opts = append(opts, model.WithOperatingSystem(args[0]))
		}

		computer, err := model.NewComputer(id, name, opts...)
		if err != nil {
			return nil, fmt.Errorf("decoding computer %s: %w", id, err)
		}

		return computer, nil
	case tag == model.TagEmbedded && len(args) == embeddedArgs:
		controller, err := model.NewEmbeddedController(id, name, args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("decoding embedded controller %s: %w", id, err)
		}

		return controller, nil
	}

	return nil, fmt.Errorf("%w: tag %q with %d fields", model.ErrUnrecognizedRecord, tag, len(fields))
}

// Encode renders the canonical record of a device.
func Encode(device model.Device) string {
	return device.Encode()
}

// DecodeAll decodes records in order, handing every rejected record to onSkip.
func DecodeAll(records []string, onSkip SkipFunc) []model.Device {
	devices := make([]model.Device, 0, len(records))

	for _, record := range records {
		device, err := Decode(record)
		if err != nil {
			if onSkip != nil {
				onSkip(record, err)
			}

			continue
		}

		devices = append(devices, device)
	}

	return devices
}

func EncodeAll(devices []model.Device) []string {
	records := make([]string, 0, len(devices))

	for _, device := range devices {
		records = append(records, Encode(device))
	}

	return records
}

func parseBattery(field string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(strings.TrimRight(field, batterySuffix)))
	if err != nil {
		return 0, false
	}

	return value, true
}
