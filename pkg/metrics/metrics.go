package metrics

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

type (
	Client interface {
		Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	// Descriptor defines the help text of a metric family.
	Descriptor struct {
		Description string
		Unit        string
	}
)

// Descriptors documents the metric families the inventory emits. Keys without an
// entry are still collected with a generic help text.
var Descriptors = map[string]Descriptor{
	"inventory.records.skipped": {
		Description: "Stored records that could not be decoded and were skipped",
		Unit:        "{record}",
	},
	"inventory.operations.rejected": {
		Description: "Inventory mutations rejected without changing state",
		Unit:        "{operation}",
	},
	"inventory.battery.low": {
		Description: "Low battery warnings raised by smartwatches",
		Unit:        "{warning}",
	},
	"http.requests": {
		Description: "HTTP requests served by the inventory API",
		Unit:        "{request}",
	},
}
