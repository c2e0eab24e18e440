// Package module wires listing sessions into the API using modkit
package module

import (
	"time"

	"marquee/internal/core/listing"
	"marquee/internal/modkit"
	"marquee/internal/modkit/httpkit"
	"marquee/internal/services/api/listings/domain"
	listingshttp "marquee/internal/services/api/listings/http"
	listingssvc "marquee/internal/services/api/listings/service"

	"golang.org/x/text/language"
)

// Name is the module name, also its key in the port registry
const Name = "listings"

// Ports can be injected with modkit.WithPorts, Catalog overrides deps.Catalog
type Ports struct {
	Catalog domain.CatalogPort
}

// Module serves listing sessions under /listings
type Module struct {
	modkit.Base
	svc *listingssvc.Svc
}

// New builds the module. Session tuning reads CORE_API_LISTING_THRESHOLD_PX,
// CORE_API_LISTING_TTL, CORE_API_LISTING_MAX, CORE_API_LISTING_FETCH_TIMEOUT
// and CORE_API_LISTING_SWEEP_EVERY. The janitor runs while deps.Life lives
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.Build([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/listings")}, opts...)}

	var (
		cat  domain.CatalogPort
		lang = language.Und
	)
	if deps.Catalog != nil {
		cat = deps.Catalog
		lang = language.Make(deps.Catalog.Language())
	}
	if p, ok := m.Injected().(Ports); ok && p.Catalog != nil {
		cat = p.Catalog
	}

	cfg := deps.Cfg.Prefix("CORE_API_")
	m.svc = listingssvc.New(cat, listingssvc.Options{
		Threshold:    cfg.MayInt("LISTING_THRESHOLD_PX", listing.DefaultThreshold),
		TTL:          cfg.MayDuration("LISTING_TTL", listingssvc.DefaultTTL),
		MaxSessions:  cfg.MayInt("LISTING_MAX", listingssvc.DefaultMaxSessions),
		FetchTimeout: cfg.MayDuration("LISTING_FETCH_TIMEOUT", listing.DefaultFetchTimeout),
		Lang:         lang,
		Metrics:      deps.Metrics,
	})
	if deps.Life != nil {
		go m.svc.Janitor(deps.Life, cfg.MayDuration("LISTING_SWEEP_EVERY", time.Minute))
	}
	m.Routes(func(r httpkit.Router) { listingshttp.Register(r, m.svc) })
	return m
}

// Ports returns the session service. It satisfies domain.ServicePort and
// exposes Len for the open listing count
func (m *Module) Ports() any { return m.svc }
