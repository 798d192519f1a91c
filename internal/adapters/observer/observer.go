// Package observer turns inventory events into log lines and counters.
package observer

import (
	"context"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	metricRecordsSkipped     = "inventory.records.skipped"
	metricOperationsRejected = "inventory.operations.rejected"
	metricLowBattery         = "inventory.battery.low"
)

type LoggingObserver struct {
	logger  logger.Logger
	metrics metrics.Client
}

var _ ports.EventObserver = (*LoggingObserver)(nil)

// NewLoggingObserver logs every event as a warning. A nil metrics client disables counting.
func NewLoggingObserver(log logger.Logger, metricsClient metrics.Client) *LoggingObserver {
	return &LoggingObserver{
		logger:  log.Component("inventory"),
		metrics: metricsClient,
	}
}

func (o *LoggingObserver) NotifyLowBattery(deviceID string, level int) {
	o.logger.Warn().
		Str("device_id", deviceID).
		Int("battery", level).
		Msgf("battery percentage is less than %d%%", model.LowBatteryThreshold)

	o.inc(context.Background(), metricLowBattery)
}

func (o *LoggingObserver) RecordSkipped(ctx context.Context, record string, reason error) {
	log := o.logger.WithContext(ctx)

	log.Warn().
		Err(reason).
		Str("record", record).
		Msg("skipping invalid device record")

	o.inc(ctx, metricRecordsSkipped)
}

func (o *LoggingObserver) OperationRejected(ctx context.Context, operation, deviceID string, reason error) {
	log := o.logger.WithContext(ctx)

	log.Warn().
		Err(reason).
		Str("operation", operation).
		Str("device_id", deviceID).
		Msg("inventory operation rejected")

	o.inc(ctx, metricOperationsRejected, attribute.String("operation", operation))
}

func (o *LoggingObserver) inc(ctx context.Context, key string, attrs ...attribute.KeyValue) {
	if o.metrics == nil {
		return
	}

	o.metrics.Inc(ctx, key, 1, attrs...)
}
