package circuitbreaker

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is wrapped by every error the breaker returns without calling through.
	ErrRejected = errors.New("circuit breaker rejected the call")

	// ErrCircuitOpen is returned while the store is considered down.
	ErrCircuitOpen = fmt.Errorf("%w: circuit is open", ErrRejected)

	// ErrTooManyRequests is returned once the half-open trial calls are used up.
	ErrTooManyRequests = fmt.Errorf("%w: too many requests in half-open state", ErrRejected)
)

// IsRejection reports whether err came from the breaker itself rather than the protected call.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}
