package ports

import "context"

// DependencyStatus represents the health status of a dependency.
type DependencyStatus struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// StoreHealthChecker is implemented by repositories backed by a remote store.
type StoreHealthChecker interface {
	// Ping checks if the backing store is reachable.
	Ping(ctx context.Context) error
}
