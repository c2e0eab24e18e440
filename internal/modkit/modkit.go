// Package modkit assembles API modules: shared dependencies, build options
// and a Base that mounts a module's routes under its prefix
package modkit

import (
	"context"

	"marquee/internal/adapters/tmdb"
	"marquee/internal/modkit/module"
	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/metrics"
)

// Module is the contract the API mounts
type Module = module.Module

// Deps are handed to every module constructor. Any field may be zero in tests
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Catalog *tmdb.Client
	Metrics *metrics.Set
	// Life ends at shutdown. Modules start background work on it, nil means
	// none is started
	Life context.Context
}

// Builder constructs a Module from deps and options
type Builder func(Deps, ...Option) Module
