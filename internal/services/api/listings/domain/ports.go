package domain

import (
	"context"

	"marquee/internal/core/catalog"
)

// ServicePort defines the listings service contract
type ServicePort interface {
	Open(ctx context.Context, in OpenInput) (Opened, error)
	View(ctx context.Context, id string, in ViewInput) (ListingView, error)
	More(ctx context.Context, id string, in MoreInput) (More, error)
	Close(ctx context.Context, id string) error
}

// CatalogPort is the slice of the catalog client listings page through
type CatalogPort interface {
	PopularMovies(ctx context.Context, page int) (catalog.Page, error)
	TopRatedMovies(ctx context.Context, page int) (catalog.Page, error)
	PopularTV(ctx context.Context, page int) (catalog.Page, error)
	SearchMovies(ctx context.Context, query string, page int) (catalog.Page, error)
}
