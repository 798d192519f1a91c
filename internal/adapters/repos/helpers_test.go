package repos_test

import (
	"context"
	"sync"
	"testing"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/stretchr/testify/require"
)

type skippedRecords struct {
	mu      sync.Mutex
	records []string
	reasons []error
}

func (s *skippedRecords) RecordSkipped(_ context.Context, record string, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	s.reasons = append(s.reasons, reason)
}

func sampleDevices(t *testing.T) []model.Device {
	t.Helper()

	watch, err := model.NewWatch("SW-1", "Apple Watch", 80)
	require.NoError(t, err)

	computer, err := model.NewComputer("P-2", "ThinkPad", model.WithOperatingSystem("Linux"))
	require.NoError(t, err)

	controller, err := model.NewEmbeddedController("ED-3", "Gateway", "10.0.0.1", "MD Ltd. Wifi")
	require.NoError(t, err)

	return []model.Device{watch, computer, controller}
}

func ids(devices []model.Device) []string {
	out := make([]string, len(devices))

	for i, device := range devices {
		out[i] = device.ID()
	}

	return out
}
