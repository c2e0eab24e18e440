// Package http provides http transport for listing sessions
package http

import (
	stdhttp "net/http"

	"marquee/internal/modkit/httpkit"
	"marquee/internal/services/api/listings/domain"
	svc "marquee/internal/services/api/listings/service"
)

// Register mounts listing endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.open)
	httpkit.Get(r, "/{id}", h.view)
	httpkit.Post(r, "/{id}/more", h.more)
	httpkit.Delete(r, "/{id}", h.close)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /listings Listings listingsOpen
// @Summary Open a listing session and load its first page
// @Tags Listings
// @Accept json
// @Produce json
// @Param payload body domain.OpenInput true "source and optional search query"
// @Success 201 {object} domain.Opened "created"
// @Router /listings [post]
func (h *handlers) open(r *stdhttp.Request, in domain.OpenInput) (any, error) {
	out, err := h.svc.Open(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /listings/{id} Listings listingsView
// @Summary Filtered and sorted view over the accumulated items
// @Tags Listings
// @Produce json
// @Param id path string true "listing id"
// @Param search query string false "case insensitive title substring"
// @Param year query string false "release or first air year"
// @Param genre query string false "genre id"
// @Param sort query string false "popularity rating title name date"
// @Param order query string false "asc or desc"
// @Success 200 {object} domain.ListingView "ok"
// @Router /listings/{id} [get]
func (h *handlers) view(r *stdhttp.Request) (any, error) {
	in := domain.ViewInput{
		Search: httpkit.Query(r, "search"),
		Year:   httpkit.Query(r, "year"),
		Genre:  httpkit.Query(r, "genre"),
		Sort:   httpkit.Query(r, "sort"),
		Order:  httpkit.Query(r, "order"),
	}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	ctx, id := httpkit.WithListing(r, "id")
	return h.svc.View(ctx, id, in)
}

// swagger:route POST /listings/{id}/more Listings listingsMore
// @Summary Trigger the next page, omit remaining_px for an explicit load
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path string true "listing id"
// @Param payload body domain.MoreInput false "scroll distance"
// @Success 200 {object} domain.More "ok"
// @Router /listings/{id}/more [post]
func (h *handlers) more(r *stdhttp.Request) (any, error) {
	in, err := httpkit.Body[domain.MoreInput](r)
	if err != nil {
		return nil, err
	}
	ctx, id := httpkit.WithListing(r, "id")
	return h.svc.More(ctx, id, in)
}

// swagger:route DELETE /listings/{id} Listings listingsClose
// @Summary Tear a listing down
// @Tags Listings
// @Param id path string true "listing id"
// @Success 204 "no content"
// @Router /listings/{id} [delete]
func (h *handlers) close(r *stdhttp.Request) (any, error) {
	ctx, id := httpkit.WithListing(r, "id")
	if err := h.svc.Close(ctx, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
