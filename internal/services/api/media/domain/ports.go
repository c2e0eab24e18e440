package domain

import (
	"context"

	"marquee/internal/core/catalog"
	"marquee/internal/core/media"
)

// ServicePort defines the media service contract
type ServicePort interface {
	Details(ctx context.Context, kind media.Kind, id int) (catalog.Details, error)
	Reviews(ctx context.Context, kind media.Kind, id, page int) (catalog.ReviewPage, error)
	Record(ctx context.Context, kind media.Kind, id int) (media.Record, error)
	Detail(ctx context.Context, kind media.Kind, id int) (Detail, error)
	Search(ctx context.Context, in SearchInput) (catalog.Page, error)
}

// CatalogPort is the slice of the catalog client the media service needs
type CatalogPort interface {
	MovieDetails(ctx context.Context, id int) (catalog.Details, error)
	TVDetails(ctx context.Context, id int) (catalog.Details, error)
	MovieReviews(ctx context.Context, id, page int) (catalog.ReviewPage, error)
	TVReviews(ctx context.Context, id, page int) (catalog.ReviewPage, error)
	MovieImages(ctx context.Context, id int) (catalog.Images, error)
	SearchMovies(ctx context.Context, query string, page int) (catalog.Page, error)
}
