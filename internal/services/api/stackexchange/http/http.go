// Package http provides http transport for the Stack Exchange resource
package http

import (
	stdhttp "net/http"
	"time"

	"gitfolio/internal/modkit/httpkit"
	perr "gitfolio/internal/platform/errors"
	"gitfolio/internal/platform/logger"
	"gitfolio/internal/services/api/stackexchange/domain"
)

const (
	msgFetchFailed = "Failed to fetch Stack Exchange data"
	msgNoData      = "No Stack Exchange data found"

	// defaultUserID is used when the query param is absent or empty
	defaultUserID = "52251"

	// cacheMaxAge is the priming window for the HEAD endpoint in seconds
	cacheMaxAge = 300

	sourceLive = "live-api"
)

// StatsQuery binds the aggregate endpoint's query parameters
type StatsQuery struct {
	UserID string `query:"userId" validate:"omitempty,numeric"`
}

// livePayload wraps the result with freshness markers
type livePayload struct {
	*domain.Result
	FetchedAt string `json:"fetchedAt"`
	Source    string `json:"source"`
}

type handlers struct {
	svc domain.ServicePort
	now func() time.Time
}

// Register mounts the Stack Exchange endpoints on the given router
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc, now: time.Now}

	httpkit.GetQuery(r, "/", h.stats)
	httpkit.HeadCache(r, "/", cacheMaxAge)
}

// stats returns the combined profile and answers payload. No data on both
// halves maps to 404; anything unexpected maps to a 500 with a details string
func (h *handlers) stats(r *stdhttp.Request, q StatsQuery) (any, error) {
	userID := q.UserID
	if userID == "" {
		userID = defaultUserID
	}

	res, err := h.svc.Complete(r.Context(), userID)
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Str("user_id", userID).Msg("stackexchange stats failed")
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, msgFetchFailed)
	}
	if res == nil || (res.Profile == nil && len(res.Answers) == 0) {
		return nil, perr.New(perr.ErrorCodeNotFound, msgNoData)
	}
	return livePayload{
		Result:    res,
		FetchedAt: h.now().UTC().Format(time.RFC3339),
		Source:    sourceLive,
	}, nil
}
