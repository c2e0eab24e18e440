// Package service contains media workflows. It is the only place that knows
// movie and tv live behind different catalog endpoints
package service

import (
	"context"

	"marquee/internal/core/catalog"
	"marquee/internal/core/media"
	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/logger"
	"marquee/internal/services/api/media/domain"

	"golang.org/x/sync/errgroup"
)

// detailFanout bounds the goroutines used to compose a detail view
const detailFanout = 3

// Service defines the service contract for media
type Service interface{ domain.ServicePort }

// route is one row of the per kind dispatch table
type route struct {
	details func(ctx context.Context, id int) (catalog.Details, error)
	reviews func(ctx context.Context, id, page int) (catalog.ReviewPage, error)
	images  func(ctx context.Context, id int) (catalog.Images, error)
}

// Svc implements the Service interface
type Svc struct {
	catalog domain.CatalogPort
	routes  map[media.Kind]route
	log     logger.Logger
}

// New creates a media service over the catalog
func New(c domain.CatalogPort) *Svc {
	if c == nil {
		panic("media.Service requires a non nil catalog")
	}
	return &Svc{
		catalog: c,
		routes: map[media.Kind]route{
			media.KindMovie: {details: c.MovieDetails, reviews: c.MovieReviews, images: c.MovieImages},
			media.KindTV:    {details: c.TVDetails, reviews: c.TVReviews},
		},
		log: *logger.Named("media"),
	}
}

func (s *Svc) route(kind media.Kind) (route, error) {
	if err := media.Check(kind); err != nil {
		return route{}, err
	}
	return s.routes[kind], nil
}

// Details returns the raw payload with credits and videos in one request
func (s *Svc) Details(ctx context.Context, kind media.Kind, id int) (catalog.Details, error) {
	rt, err := s.route(kind)
	if err != nil {
		return catalog.Details{}, err
	}
	return rt.details(ctx, id)
}

// Reviews returns one review page, page < 1 means the first
func (s *Svc) Reviews(ctx context.Context, kind media.Kind, id, page int) (catalog.ReviewPage, error) {
	rt, err := s.route(kind)
	if err != nil {
		return catalog.ReviewPage{}, err
	}
	return rt.reviews(ctx, id, max(page, 1))
}

// Record returns the normalized record
func (s *Svc) Record(ctx context.Context, kind media.Kind, id int) (media.Record, error) {
	d, err := s.Details(ctx, kind, id)
	if err != nil {
		return media.Record{}, err
	}
	return media.NormalizeLogged(&s.log, d, kind), nil
}

// Detail composes the detail page. Details and the first review page are
// required, images only refine the backdrop and may fail silently
func (s *Svc) Detail(ctx context.Context, kind media.Kind, id int) (domain.Detail, error) {
	rt, err := s.route(kind)
	if err != nil {
		return domain.Detail{}, err
	}

	var (
		raw     catalog.Details
		reviews catalog.ReviewPage
		imgs    *catalog.Images
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFanout)
	g.Go(func() error {
		var err error
		raw, err = rt.details(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = rt.reviews(gctx, id, 1)
		return err
	})
	if rt.images != nil {
		g.Go(func() error {
			got, err := rt.images(gctx, id)
			if err != nil {
				s.log.Warn().Err(err).Str("kind", kind.String()).Int("id", id).Msg("images unavailable, using record backdrop")
				return nil
			}
			imgs = &got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Detail{}, pageError(err)
	}

	rec := media.NormalizeLogged(&s.log, raw, kind)
	if reviews.Results == nil {
		reviews.Results = []catalog.Review{}
	}
	return domain.Detail{
		Record:   rec,
		TopCast:  media.TopCast(rec.Credits, media.DetailCast),
		KeyCrew:  media.KeyCrew(rec.Credits),
		Trailers: media.Trailers(raw.Videos, kind),
		Reviews:  reviews,
		Backdrop: media.Backdrop(rec, imgs),
	}, nil
}

// Search runs a movie title search
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (catalog.Page, error) {
	return s.catalog.SearchMovies(ctx, in.Query, max(in.Page, 1))
}

// pageError collapses any composition failure into one page level error
func pageError(err error) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.Wrap(err, perr.ErrorCodeNotFound, "content not found")
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, "failed to load content")
}
