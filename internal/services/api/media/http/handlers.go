// Package http provides http transport for media details, reviews and search
package http

import (
	stdhttp "net/http"

	"marquee/internal/core/media"
	"marquee/internal/modkit/httpkit"
	"marquee/internal/services/api/media/domain"
	svc "marquee/internal/services/api/media/service"
)

// Register mounts media endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/search", h.search)
	httpkit.Get(r, "/{kind}/{id}", h.detail)
	httpkit.Get(r, "/{kind}/{id}/record", h.record)
	httpkit.Get(r, "/{kind}/{id}/reviews", h.reviews)
}

type handlers struct{ svc svc.Service }

// target reads and validates the kind and id path parameters
func target(r *stdhttp.Request) (media.Kind, int, error) {
	kind, err := media.ParseKind(httpkit.Param(r, "kind"))
	if err != nil {
		return "", 0, err
	}
	id, err := httpkit.PathInt(r, "id")
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}

// swagger:route GET /media/{kind}/{id} Media mediaDetail
// @Summary Composed detail view with cast, crew, trailers and reviews
// @Tags Media
// @Produce json
// @Param kind path string true "movie or tv"
// @Param id path int true "catalog id"
// @Success 200 {object} domain.Detail "ok"
// @Router /media/{kind}/{id} [get]
func (h *handlers) detail(r *stdhttp.Request) (any, error) {
	kind, id, err := target(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Detail(r.Context(), kind, id)
}

// swagger:route GET /media/{kind}/{id}/record Media mediaRecord
// @Summary Normalized media record
// @Tags Media
// @Produce json
// @Param kind path string true "movie or tv"
// @Param id path int true "catalog id"
// @Success 200 {object} media.Record "ok"
// @Router /media/{kind}/{id}/record [get]
func (h *handlers) record(r *stdhttp.Request) (any, error) {
	kind, id, err := target(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Record(r.Context(), kind, id)
}

// swagger:route GET /media/{kind}/{id}/reviews Media mediaReviews
// @Summary One page of user reviews
// @Tags Media
// @Produce json
// @Param kind path string true "movie or tv"
// @Param id path int true "catalog id"
// @Param page query int false "page, default 1"
// @Success 200 {object} catalog.ReviewPage "ok"
// @Router /media/{kind}/{id}/reviews [get]
func (h *handlers) reviews(r *stdhttp.Request) (any, error) {
	kind, id, err := target(r)
	if err != nil {
		return nil, err
	}
	page, err := httpkit.QueryInt(r, "page", 1)
	if err != nil {
		return nil, err
	}
	in := domain.ReviewsInput{Page: page}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Reviews(r.Context(), kind, id, in.Page)
}

// swagger:route GET /media/search Media mediaSearch
// @Summary Movie title search
// @Tags Media
// @Produce json
// @Param query query string true "free text"
// @Param page query int false "page, default 1"
// @Success 200 {object} catalog.Page "ok"
// @Router /media/search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	page, err := httpkit.QueryInt(r, "page", 1)
	if err != nil {
		return nil, err
	}
	in := domain.SearchInput{Query: httpkit.Query(r, "query"), Page: page}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), in)
}
