// Package noop provides the metrics client used when METRICS_ENABLED is false.
package noop

import (
	"context"
	"net/http"

	"github.com/architeacher/inventory/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const disabledMessage = "metrics collection is disabled"

type MetricsClient struct{}

var _ metrics.Client = MetricsClient{}

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

// Inc drops the sample, including inventory counters such as skipped records and low battery warnings.
func (MetricsClient) Inc(context.Context, string, any, ...attribute.KeyValue) {}

// Handler answers every scrape with 404 so a misconfigured scraper shows why it gets no series.
func (MetricsClient) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, disabledMessage, http.StatusNotFound)
	})
}

func (MetricsClient) Shutdown(context.Context) error {
	return nil
}
