// Package http provides http transport for the GitHub stats resource
package http

import (
	stdhttp "net/http"
	"time"

	"gitfolio/internal/modkit/httpkit"
	perr "gitfolio/internal/platform/errors"
	"gitfolio/internal/platform/logger"
	"gitfolio/internal/services/api/github/domain"
)

const (
	msgFetchFailed = "Failed to fetch GitHub data"
	msgNoData      = "No GitHub data found"

	// cacheMaxAge is the priming window for the HEAD endpoint in seconds
	cacheMaxAge = 600

	sourceLive = "live-api"
)

// livePayload wraps the stats with freshness markers
type livePayload struct {
	*domain.Stats
	FetchedAt string `json:"fetchedAt"`
	Source    string `json:"source"`
}

type handlers struct {
	svc domain.ServicePort
	now func() time.Time
}

// Register mounts the GitHub stats endpoints on the given router
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc, now: time.Now}

	r.Get("/", httpkit.Handle(h.stats))
	httpkit.HeadCache(r, "/", cacheMaxAge)
}

// stats returns the aggregate payload, mapping the existence gate to 404 and
// anything unexpected to a 500 with a details string. This is the single
// error boundary for the resource
func (h *handlers) stats(r *stdhttp.Request) httpkit.Response {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("github stats failed")
		return httpkit.Error(perr.Wrap(err, perr.ErrorCodeUnknown, msgFetchFailed))
	}
	if st == nil {
		return httpkit.Error(perr.New(perr.ErrorCodeNotFound, msgNoData))
	}
	return httpkit.OK(livePayload{
		Stats:     st,
		FetchedAt: h.now().UTC().Format(time.RFC3339),
		Source:    sourceLive,
	})
}
