package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/architeacher/inventory/internal/adapters/inbound/http/middleware"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	apiVersion = "v1"

	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"
)

type (
	// ResponseMeta contains response metadata for tracing and API versioning.
	ResponseMeta struct {
		RequestID  string `json:"requestId"`
		TraceID    string `json:"traceId,omitempty"`
		APIVersion string `json:"apiVersion"`
	}

	// EnvelopedResponse wraps response data with metadata.
	EnvelopedResponse struct {
		Data any          `json:"data"`
		Meta ResponseMeta `json:"meta"`
	}

	ErrorDetail struct {
		Field   string `json:"field"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}

	ErrorResponse struct {
		Code    string        `json:"code"`
		Message string        `json:"message"`
		Details []ErrorDetail `json:"details,omitempty"`
		Meta    ResponseMeta  `json:"meta"`
	}
)

// NewMeta creates response metadata from the request context.
func NewMeta(r *http.Request) ResponseMeta {
	meta := ResponseMeta{
		RequestID:  middleware.GetRequestID(r.Context()),
		APIVersion: apiVersion,
	}

	if sc := otelTrace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		meta.TraceID = sc.TraceID().String()
	}

	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, EnvelopedResponse{
		Data: data,
		Meta: NewMeta(r),
	})
}
