package httpkit

import (
	"fmt"
	"net/http"
)

// Get registers a no-body handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// GetQuery registers a handler that binds and validates query parameters
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, Query(h))
}

// HeadCache registers a bodyless HEAD endpoint that emits only a Cache-Control
// header, used by clients that want to prime HTTP caches without a payload.
// The stale-while-revalidate window is double the max-age
func HeadCache(r Router, path string, maxAgeSeconds int) {
	cc := fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAgeSeconds, 2*maxAgeSeconds)
	r.Head(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", cc)
		w.WriteHeader(http.StatusOK)
	})
}
