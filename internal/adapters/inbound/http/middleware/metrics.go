package middleware

import (
	"net/http"
	"strconv"

	"github.com/architeacher/inventory/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

const (
	httpRequestsKey = "http.requests"

	httpMethodKey     = "http.method"
	httpRouteKey      = "http.route"
	httpStatusCodeKey = "http.status_code"
)

type MetricsMiddleware struct {
	metricsClient metrics.Client
}

func NewMetricsMiddleware(metricsClient metrics.Client) *MetricsMiddleware {
	return &MetricsMiddleware{
		metricsClient: metricsClient,
	}
}

// Middleware counts requests by method, route pattern and status. The route pattern
// keeps device IDs out of the label values.
func (m *MetricsMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := NewStatusRecorder(w)

		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.metricsClient.Inc(
			r.Context(),
			httpRequestsKey,
			int64(1),
			attribute.String(httpMethodKey, r.Method),
			attribute.String(httpRouteKey, route),
			attribute.String(httpStatusCodeKey, strconv.Itoa(wrapped.StatusCode())),
		)
	})
}
