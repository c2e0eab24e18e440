package httpkit

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/logger"
	pnet "marquee/internal/platform/net"
	phttp "marquee/internal/platform/net/http"
	"marquee/internal/platform/net/http/bind"
)

// Param returns a named path parameter
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// PathInt parses a positive integer path parameter
func PathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(Param(r, name))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return n, nil
}

// Query returns a trimmed query parameter
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryInt parses an integer query parameter, def when absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := Query(r, name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", name), name)
	}
	return n, nil
}

// Validate runs struct tag validation on hand built inputs such as query DTOs
func Validate(v any) error { return bind.Validate(v) }

// WithListing reads the listing id path parameter and annotates the request
// context with it so request scoped logs carry listing_id
func WithListing(r *http.Request, param string) (context.Context, string) {
	id := strings.TrimSpace(Param(r, param))
	ctx := pnet.WithRequest(r.Context(), "", id)
	return logger.WithRequest(ctx, pnet.RequestID(ctx), id), id
}
