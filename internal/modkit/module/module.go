// Package module holds the module contract and the port registry modules
// use to reach each other after bootstrap
package module

import (
	phttp "marquee/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
	Prefix() string
}
