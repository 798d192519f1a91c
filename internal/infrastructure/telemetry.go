package infrastructure

import (
	"context"
	"fmt"

	"github.com/architeacher/inventory/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	attrStoreDriver = attribute.Key("inventory.store.driver")
	attrCapacity    = attribute.Key("inventory.capacity")
)

type ShutdownFunc func(ctx context.Context) error

// InventoryResource describes the running inventory: the service identity plus
// the backing store and the capacity every span was recorded under.
func InventoryResource(ctx context.Context, cfg *config.ServiceConfig) (*resource.Resource, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.Telemetry.ServiceName),
			semconv.ServiceVersion(cfg.Telemetry.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.App.Env.Name),
			attrStoreDriver.String(cfg.Store.Driver),
			attrCapacity.Int(int(cfg.Inventory.Capacity)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return res, nil
}

// NewTracerProvider exports inventory spans over OTLP/gRPC, sampling the configured ratio of root spans.
func NewTracerProvider(ctx context.Context, cfg *config.ServiceConfig) (otelTrace.TracerProvider, ShutdownFunc, error) {
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(cfg.Telemetry.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	res, err := InventoryResource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Telemetry.Traces.SamplerRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Shutdown, nil
}

// NewNoopTracerProvider is used when tracing is disabled or no collector endpoint is configured.
func NewNoopTracerProvider() otelTrace.TracerProvider {
	return noop.NewTracerProvider()
}
