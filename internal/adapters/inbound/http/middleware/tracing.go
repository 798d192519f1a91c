package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "inventory.http"

// Tracer starts a server span per request, continuing any incoming W3C trace context.
func Tracer(tracerProvider otelTrace.TracerProvider) func(http.Handler) http.Handler {
	tracer := tracerProvider.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(
				ctx,
				fmt.Sprintf("%s %s", r.Method, r.URL.Path),
				otelTrace.WithSpanKind(otelTrace.SpanKindServer),
				otelTrace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			wrapped := NewStatusRecorder(w)

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", wrapped.StatusCode()))

			if wrapped.StatusCode() >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(wrapped.StatusCode()))
			}
		})
	}
}
