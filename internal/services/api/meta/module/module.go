// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	"marquee/internal/core/version"
	"marquee/internal/modkit"
	"marquee/internal/modkit/httpkit"
	"marquee/internal/modkit/module"
	metahttp "marquee/internal/services/api/meta/http"
)

const defaultImageBase = "https://image.tmdb.org/t/p"

// Module serves service info and catalog configuration under /meta
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New builds the module. The open listing count is read from the listings
// port at request time so registration order does not matter
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{
		Base:      modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		startedAt: time.Now(),
	}

	d := metahttp.Deps{
		ServiceName:  version.Info().Service,
		StartedAt:    m.startedAt,
		ImageBaseURL: deps.Cfg.Prefix("CATALOG_").MayURL("IMAGE_BASE_URL", defaultImageBase),
		Sessions:     openListings,
	}
	if deps.Catalog != nil {
		d.Catalog = deps.Catalog
		d.Language = deps.Catalog.Language()
	}
	m.Routes(func(r httpkit.Router) { metahttp.Register(r, d) })
	return m
}

func openListings() int {
	if c, ok := module.PortsAs[interface{ Len() int }]("listings"); ok {
		return c.Len()
	}
	return 0
}

// Ports implements modkit.Module, meta exposes nothing
func (m *Module) Ports() any { return nil }
