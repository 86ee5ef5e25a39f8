// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"gitfolio/internal/core/version"
	"gitfolio/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// GitHubToken and StackKey report whether the optional upstream
	// credentials were configured. Absence is not a failure, only a note
	GitHubToken bool
	StackKey    bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse describes service info and upstream credential presence
type ServiceResponse struct {
	Name        string `json:"name"`
	Started     string `json:"started"`
	Uptime      int64  `json:"uptime"`
	GitHubToken bool   `json:"githubToken"`
	StackKey    bool   `json:"stackExchangeKey"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:        h.deps.ServiceName,
		Started:     h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:      int64(uptime / time.Second),
		GitHubToken: h.deps.GitHubToken,
		StackKey:    h.deps.StackKey,
	}, nil
}
