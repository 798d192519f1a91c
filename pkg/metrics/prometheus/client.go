// Package prometheus implements metrics.Client on top of a dedicated Prometheus registry.
package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/architeacher/inventory/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
)

type (
	MetricsClient struct {
		namespace string
		registry  *prometheus.Registry

		mu       sync.Mutex
		counters map[string]*prometheus.CounterVec
	}
)

var _ metrics.Client = (*MetricsClient)(nil)

func NewMetricsClient(namespace string) *MetricsClient {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsClient{
		namespace: sanitize(namespace),
		registry:  registry,
		counters:  make(map[string]*prometheus.CounterVec),
	}
}

// Inc adds value to the counter named key. Attribute keys become label names,
// so a key must always be reported with the same attribute set.
func (c *MetricsClient) Inc(_ context.Context, key string, value any, attributes ...attribute.KeyValue) {
	delta, ok := toFloat(value)
	if !ok || delta < 0 {
		return
	}

	labels := make(prometheus.Labels, len(attributes))
	names := make([]string, 0, len(attributes))

	for _, attr := range attributes {
		name := sanitize(string(attr.Key))
		labels[name] = attr.Value.Emit()
		names = append(names, name)
	}

	slices.Sort(names)

	counter, err := c.counter(key, names)
	if err != nil {
		return
	}

	series, err := counter.GetMetricWith(labels)
	if err != nil {
		return
	}

	series.Add(delta)
}

func (c *MetricsClient) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *MetricsClient) Shutdown(_ context.Context) error {
	return nil
}

// Registry exposes the underlying registry, mainly for tests.
func (c *MetricsClient) Registry() *prometheus.Registry {
	return c.registry
}

func (c *MetricsClient) counter(key string, labelNames []string) (*prometheus.CounterVec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	help := "Counter for " + key
	if descriptor, ok := metrics.Descriptors[key]; ok {
		help = descriptor.Description
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.namespace,
		Name:      sanitize(key) + "_total",
		Help:      help,
	}, labelNames)

	if err := c.registry.Register(counter); err != nil {
		return nil, fmt.Errorf("registering counter %s: %w", key, err)
	}

	c.counters[key] = counter

	return counter, nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
