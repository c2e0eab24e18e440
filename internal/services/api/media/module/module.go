// Package module wires media lookups into the API using modkit
package module

import (
	"marquee/internal/modkit"
	"marquee/internal/modkit/httpkit"
	"marquee/internal/services/api/media/domain"
	mediahttp "marquee/internal/services/api/media/http"
	mediasvc "marquee/internal/services/api/media/service"
)

// Name is the module name, also its key in the port registry
const Name = "media"

// Ports can be injected with modkit.WithPorts, Catalog overrides deps.Catalog
type Ports struct {
	Catalog domain.CatalogPort
}

// Module serves title details, reviews and search under /media
type Module struct {
	modkit.Base
	svc domain.ServicePort
}

// New builds the module. mediasvc.New panics when no catalog is available
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.Build([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/media")}, opts...)}

	var cat domain.CatalogPort
	if p, ok := m.Injected().(Ports); ok && p.Catalog != nil {
		cat = p.Catalog
	} else if deps.Catalog != nil {
		cat = deps.Catalog
	}
	svc := mediasvc.New(cat)
	m.svc = svc
	m.Routes(func(r httpkit.Router) { mediahttp.Register(r, svc) })
	return m
}

// Ports returns the media service as a domain.ServicePort
func (m *Module) Ports() any { return m.svc }
