// Package api assembles the marquee HTTP API from its modules
package api

import (
	"context"

	"marquee/internal/adapters/tmdb"
	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/metrics"
	phttp "marquee/internal/platform/net/http"

	"marquee/internal/modkit"
	"marquee/internal/modkit/httpkit"
	"marquee/internal/modkit/module"
	"marquee/internal/modkit/swaggerkit"

	listingsmod "marquee/internal/services/api/listings/module"
	mediamod "marquee/internal/services/api/media/module"
	metamod "marquee/internal/services/api/meta/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	// Config is the root view, modules pick their own prefixes
	Config         config.Conf
	Catalog        *tmdb.Client
	Metrics        *metrics.Set
	Logger         *logger.Logger
	CORSOrigins    []string
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	// Gatherer backs /metrics, nil means the default registry
	Gatherer prometheus.Gatherer

	// Modules replaces the default module set, used by tests
	Modules []modkit.Builder

	// Life stops module background work such as the listing janitor
	Life context.Context
}

// DefaultModules is the module set served under /api/v1
func DefaultModules() []modkit.Builder {
	return []modkit.Builder{metamod.New, mediamod.New, listingsmod.New}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:     *logger.Named("api"),
		Cfg:     opt.Config,
		Catalog: opt.Catalog,
		Metrics: opt.Metrics,
		Life:    opt.Life,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	builders := opt.Modules
	if builders == nil {
		builders = DefaultModules()
	}
	mods := make([]module.Module, 0, len(builders))
	for _, b := range builders {
		mods = append(mods, b(deps))
	}

	stack := httpkit.CommonStack(opt.CORSOrigins)
	if opt.Metrics != nil {
		stack = httpkit.CommonStack(opt.CORSOrigins, opt.Metrics.Middleware)
	}
	if opt.EnableMetrics {
		h := metrics.Handler()
		if opt.Gatherer != nil {
			h = metrics.HandlerFor(opt.Gatherer)
		}
		r.Handle("/metrics", h)
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Str("prefix", m.Prefix()).Msg("module mounted")
		}
	})
}
