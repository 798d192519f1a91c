package middleware

import (
	"net/http"
	"sync"
)

// Serialize runs one request at a time. The inventory core holds no locks of its own,
// so every handler that touches it must sit behind this middleware.
func Serialize() func(http.Handler) http.Handler {
	var mu sync.Mutex

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
