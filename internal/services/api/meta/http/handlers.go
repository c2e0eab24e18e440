// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"marquee/internal/core/catalog"
	"marquee/internal/core/version"
	"marquee/internal/modkit/httpkit"
)

// readyTimeout caps the catalog ping
const readyTimeout = 2 * time.Second

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	Catalog      Pinger
	Language     string
	ImageBaseURL string
	// Sessions counts open listings, nil reports zero
	Sessions func() int
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/catalog", h.catalog)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"marquee-api"`
	Started string `json:"started"  example:"2026-10-17T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-17T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"catalog"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"catalog request failed: Invalid API key"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-17T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"marquee-api"`
	Started string `json:"started" example:"2026-10-17T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	// ActiveListings is the number of open listing sessions
	ActiveListings int `json:"active_listings" example:"3"`
}

// CatalogResponse tells the browser how to build image urls
type CatalogResponse struct {
	Language     string            `json:"language"       example:"es-ES"`
	ImageBaseURL string            `json:"image_base_url" example:"https://image.tmdb.org/t/p"`
	Samples      map[string]string `json:"samples"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness check, checks the catalog is reachable with our key
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	c := ReadyCheck{Name: "catalog", Status: "skipped"}
	if h.deps.Catalog != nil {
		c.Status = "ok"
		if err := h.deps.Catalog.Ping(ctx); err != nil {
			c.Status = "fail"
			c.Error = err.Error()
		}
	}

	overall := "ok"
	switch c.Status {
	case "fail":
		overall = "fail"
	case "skipped":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{c},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and open listings
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Sessions != nil {
		out.ActiveListings = h.deps.Sessions()
	}
	return out, nil
}

// swagger:route GET /meta/catalog Meta metaCatalog
// @Summary Catalog locale and image CDN base
// @Tags Meta
// @Produce json
// @Success 200 type CatalogResponse ok
// @Router /meta/catalog [get]
func (h *handlers) catalog(_ *http.Request) (any, error) {
	return CatalogResponse{
		Language:     h.deps.Language,
		ImageBaseURL: h.deps.ImageBaseURL,
		Samples: map[string]string{
			"poster":   catalog.ImageURL(h.deps.ImageBaseURL, "w500", "/{poster_path}"),
			"backdrop": catalog.ImageURL(h.deps.ImageBaseURL, "original", "/{backdrop_path}"),
			"profile":  catalog.ImageURL(h.deps.ImageBaseURL, "w185", "/{profile_path}"),
		},
	}, nil
}
