package usecases

import (
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/internal/usecases/commands"
	"github.com/architeacher/inventory/internal/usecases/queries"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		AddDevice      commands.AddDeviceCommandHandler
		RemoveDevice   commands.RemoveDeviceCommandHandler
		EditDevice     commands.EditDeviceCommandHandler
		PowerOnDevice  commands.PowerOnDeviceCommandHandler
		PowerOffDevice commands.PowerOffDeviceCommandHandler
	}

	Queries struct {
		GetDevice         queries.GetDeviceQueryHandler
		ListDevices       queries.ListDevicesQueryHandler
		FetchLiveness     queries.FetchLivenessQueryHandler
		FetchReadiness    queries.FetchReadinessQueryHandler
		FetchHealthReport queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}

	// StoreInfo names the backing store reported by the health endpoints.
	StoreInfo struct {
		Name    string
		Checker ports.StoreHealthChecker
	}
)

func NewApplication(
	inventorySvc ports.InventoryService,
	store StoreInfo,
	version string,
	log logger.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient metrics.Client,
) *Application {
	return &Application{
		Commands: Commands{
			AddDevice:      commands.NewAddDeviceCommandHandler(inventorySvc, log, metricsClient, tracerProvider),
			RemoveDevice:   commands.NewRemoveDeviceCommandHandler(inventorySvc, log, metricsClient, tracerProvider),
			EditDevice:     commands.NewEditDeviceCommandHandler(inventorySvc, log, metricsClient, tracerProvider),
			PowerOnDevice:  commands.NewPowerOnDeviceCommandHandler(inventorySvc, log, metricsClient, tracerProvider),
			PowerOffDevice: commands.NewPowerOffDeviceCommandHandler(inventorySvc, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetDevice:      queries.NewGetDeviceQueryHandler(inventorySvc, log, metricsClient, tracerProvider),
			ListDevices:    queries.NewListDevicesQueryHandler(inventorySvc, log, metricsClient, tracerProvider),
			FetchLiveness:  queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness: queries.NewFetchReadinessQueryHandler(store.Checker, log, metricsClient, tracerProvider),
			FetchHealthReport: queries.NewFetchHealthReportQueryHandler(
				store.Checker,
				store.Name,
				version,
				inventorySvc,
				log,
				metricsClient,
				tracerProvider,
			),
		},
	}
}
