package observer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/architeacher/inventory/internal/adapters/observer"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

type countingMetrics struct {
	counts map[string]int
	attrs  map[string][]attribute.KeyValue
}

func (m *countingMetrics) Inc(_ context.Context, key string, _ any, attrs ...attribute.KeyValue) {
	m.counts[key]++
	m.attrs[key] = attrs
}

func (m *countingMetrics) Handler() http.Handler { return http.NotFoundHandler() }

func (m *countingMetrics) Shutdown(context.Context) error { return nil }

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		counts: map[string]int{},
		attrs:  map[string][]attribute.KeyValue{},
	}
}

func TestLoggingObserver_NotifyLowBattery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	client := newCountingMetrics()
	obs := observer.NewLoggingObserver(logger.NewBufferedTestLogger(&buf), client)

	obs.NotifyLowBattery("SW-1", 15)

	entry := decode(t, buf.String())
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "battery percentage is less than 20%", entry["message"])
	require.Equal(t, "SW-1", entry["device_id"])
	require.EqualValues(t, 15, entry["battery"])
	require.Equal(t, "inventory", entry["component"])
	require.Equal(t, 1, client.counts["inventory.battery.low"])
}

func TestLoggingObserver_RecordSkipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	client := newCountingMetrics()
	obs := observer.NewLoggingObserver(logger.NewBufferedTestLogger(&buf), client)

	obs.RecordSkipped(context.Background(), "XX-9,Mystery", model.ErrUnrecognizedRecord)

	entry := decode(t, buf.String())
	require.Equal(t, "skipping invalid device record", entry["message"])
	require.Equal(t, "XX-9,Mystery", entry["record"])
	require.Contains(t, entry["error"], "unrecognized device record")
	require.Equal(t, 1, client.counts["inventory.records.skipped"])
}

func TestLoggingObserver_OperationRejected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	client := newCountingMetrics()
	obs := observer.NewLoggingObserver(logger.NewBufferedTestLogger(&buf), client)

	obs.OperationRejected(context.Background(), "add", "P-2", model.ErrDuplicateDevice)

	entry := decode(t, buf.String())
	require.Equal(t, "inventory operation rejected", entry["message"])
	require.Equal(t, "add", entry["operation"])
	require.Equal(t, "P-2", entry["device_id"])
	require.Equal(t, 1, client.counts["inventory.operations.rejected"])
	require.Equal(t, []attribute.KeyValue{attribute.String("operation", "add")}, client.attrs["inventory.operations.rejected"])
}

func TestLoggingObserver_WithoutMetrics(t *testing.T) {
	t.Parallel()

	obs := observer.NewLoggingObserver(logger.NewTestLogger(), nil)

	require.NotPanics(t, func() {
		obs.NotifyLowBattery("SW-1", 5)
		obs.RecordSkipped(context.Background(), "", model.ErrFieldCount)
		obs.OperationRejected(context.Background(), "remove", "SW-9", model.ErrDeviceNotFound)
	})
}

func decode(t *testing.T, output string) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))

	return entry
}
