package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if len(ServiceVersion) != 0 {
		cfg.App.ServiceVersion = ServiceVersion
	}

	if len(CommitSHA) != 0 {
		cfg.App.CommitSHA = CommitSHA
	}

	if len(APIVersion) != 0 {
		cfg.App.APIVersion = APIVersion
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	switch cfg.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite, StoreDriverPostgres, StoreDriverRedis:
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	if cfg.Inventory.Capacity == 0 {
		return nil, fmt.Errorf("inventory capacity must be positive")
	}

	return cfg, nil
}
