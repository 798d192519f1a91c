package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	inboundhttp "github.com/architeacher/inventory/internal/adapters/inbound/http"
	"github.com/architeacher/inventory/internal/adapters/observer"
	"github.com/architeacher/inventory/internal/adapters/repos"
	"github.com/architeacher/inventory/internal/config"
	"github.com/architeacher/inventory/internal/infrastructure"
	infraPostgres "github.com/architeacher/inventory/internal/infrastructure/postgres"
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/internal/services"
	"github.com/architeacher/inventory/internal/usecases"
	"github.com/architeacher/inventory/pkg/circuitbreaker"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/architeacher/inventory/pkg/metrics/noop"
	"github.com/architeacher/inventory/pkg/metrics/prometheus"
)

const metricsNamespace = "inventory"

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithMetrics(),
		WithTracing(ctx),
		WithObserver(),
		WithDeviceRepository(ctx),
		WithInventoryService(ctx),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format).
			Component(d.config.App.ServiceName)

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		client := prometheus.NewMetricsClient(metricsNamespace)
		d.infra.metricsClient = client
		d.cleanupFuncs["metrics"] = client.Shutdown

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		telemetry := d.config.Telemetry

		if !telemetry.Traces.Enabled || telemetry.OTLPEndpoint == "" {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(ctx, d.config)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.cleanupFuncs["tracer"] = shutdown

		return nil
	}
}

func WithObserver() DependencyOption {
	return func(d *dependencies) error {
		d.services.observer = observer.NewLoggingObserver(d.infra.logger, d.infra.metricsClient)

		return nil
	}
}

// WithDeviceRepository opens the store selected by STORE_DRIVER. Remote stores are
// wrapped with retries and circuit breakers.
func WithDeviceRepository(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		store := d.config.Store

		var (
			repo   ports.DeviceRepository
			health ports.StoreHealthChecker
		)

		switch store.Driver {
		case config.StoreDriverFile:
			fileRepo, err := repos.NewFileRepository(store.FilePath, d.services.observer)
			if err != nil {
				return fmt.Errorf("opening device file: %w", err)
			}

			repo, health = fileRepo, fileRepo
		case config.StoreDriverSQLite:
			sqliteRepo, err := repos.OpenSQLiteRepository(ctx, store.SQLitePath, d.services.observer, d.infra.logger)
			if err != nil {
				return fmt.Errorf("opening sqlite store: %w", err)
			}

			d.cleanupFuncs["sqlite"] = func(context.Context) error {
				return sqliteRepo.Close()
			}

			repo, health = sqliteRepo, sqliteRepo
		case config.StoreDriverPostgres:
			pool, err := infraPostgres.NewPool(ctx, d.config.Database, d.config.Backoff, d.infra.logger)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}

			d.cleanupFuncs["postgres"] = func(context.Context) error {
				pool.Close()

				return nil
			}

			pgRepo := repos.NewPostgresRepository(pool, repos.NewPgxScanner(), d.services.observer, d.infra.logger)
			if err := pgRepo.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("preparing database schema: %w", err)
			}

			repo = pgRepo
		case config.StoreDriverRedis:
			client := infrastructure.NewKeyDBClient(d.config.Cache, d.infra.logger)

			d.cleanupFuncs["keydb"] = func(context.Context) error {
				return client.Close()
			}

			repo = repos.NewRedisRepository(client, store.RedisKey, d.services.observer)
		default:
			return fmt.Errorf("unsupported store driver %q", store.Driver)
		}

		if d.config.IsRemoteStore() {
			resilient := repos.NewResilientRepository(
				repo,
				circuitBreakerConfig(d.config.CircuitBreaker, store.Driver),
				d.config.Backoff,
				d.infra.logger,
			)

			repo, health = resilient, resilient
		}

		d.repos.deviceRepo = repo
		d.repos.health = health
		d.repos.storeName = store.Driver

		d.infra.logger.Info().Str("driver", store.Driver).Msg("device store ready")

		return nil
	}
}

func WithInventoryService(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		svc, err := services.NewInventoryService(
			ctx,
			d.repos.deviceRepo,
			services.WithCapacity(int(d.config.Inventory.Capacity)),
			services.WithObserver(d.services.observer),
		)
		if err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}

		d.services.inventory = svc

		d.infra.logger.Info().
			Int("devices", svc.Count()).
			Int("capacity", svc.Capacity()).
			Msg("inventory loaded")

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.services.inventory,
			usecases.StoreInfo{Name: d.repos.storeName, Checker: d.repos.health},
			d.config.App.ServiceVersion,
			d.infra.logger,
			d.infra.tracerProvider,
			d.infra.metricsClient,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:            d.app,
			Logger:         d.infra.logger,
			MetricsClient:  d.infra.metricsClient,
			TracerProvider: d.infra.tracerProvider,
			Config:         d.config,
		})

		d.infra.httpServer = &http.Server{
			Addr:         net.JoinHostPort(d.config.HTTPServer.Host, strconv.FormatUint(uint64(d.config.HTTPServer.Port), 10)),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
		}

		return nil
	}
}

func circuitBreakerConfig(cfg config.CircuitBreaker, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		Name:             name,
		Enabled:          cfg.Enabled,
		MaxRequests:      cfg.MaxRequests,
		Interval:         cfg.Interval,
		Timeout:          cfg.Timeout,
		FailureThreshold: cfg.FailureThreshold,
	}
}
