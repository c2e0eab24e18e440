package modkit

import (
	"net/http"

	"marquee/internal/modkit/httpkit"
	str "marquee/internal/platform/strings"
)

// Base is embedded by modules. It owns naming and mounting so a module only
// supplies its routes and ports
type Base struct {
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	injected  any
	subrouter func(httpkit.Router) httpkit.Router
	routes    func(httpkit.Router)
	extra     func(httpkit.Router)
}

// Build applies defaults then opts, so callers override module defaults
func Build(defaults []Option, opts ...Option) Base {
	var b Base
	for _, o := range defaults {
		o(&b)
	}
	for _, o := range opts {
		o(&b)
	}
	b.mws = append([]func(http.Handler) http.Handler(nil), b.mws...)
	return b
}

// Routes sets the module's own route registration
func (b *Base) Routes(fn func(httpkit.Router)) { b.routes = fn }

// Injected returns what WithPorts supplied, nil when nothing was
func (b *Base) Injected() any { return b.injected }

// MountRoutes mounts the module under its prefix with its middlewares
func (b *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.mws, func(sub httpkit.Router) {
		if b.subrouter != nil {
			sub = b.subrouter(sub)
		}
		if b.routes != nil {
			b.routes(sub)
		}
		if b.extra != nil {
			b.extra(sub)
		}
	})
}

// Name returns the module name, panicking when unset
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the mount prefix, panicking unless it starts with a slash
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares returns the module scoped middlewares
func (b *Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }
