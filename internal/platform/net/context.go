// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyListingID ctxKey = "listing_id"

// WithRequest annotates context with the request id and the listing session
// the request targets
func WithRequest(ctx context.Context, reqID, listingID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if listingID != "" {
		ctx = context.WithValue(ctx, keyListingID, listingID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ListingID returns the listing id on the context if present
func ListingID(ctx context.Context) string {
	if v, ok := ctx.Value(keyListingID).(string); ok {
		return v
	}
	return ""
}
