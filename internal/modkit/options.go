package modkit

import (
	"net/http"

	"marquee/internal/modkit/httpkit"
)

// Option adjusts a module before it is built
type Option func(*Base)

// WithName names the module in logs and in the port registry
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix sets the mount prefix, e.g. "/listings"
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends module scoped middlewares, in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithPorts injects a port bundle the module type asserts on, typically
// test doubles replacing the catalog
func WithPorts[T any](p T) Option { return func(b *Base) { b.injected = p } }

// WithSubrouter wraps the module router before routes are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Base) { b.subrouter = fn }
}

// WithRegister adds routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = fn }
}
