// Package domain holds DTOs and ports for the listings http and service contracts
package domain

import (
	"time"

	"marquee/internal/core/listing"
)

// Source names the catalog list a listing pages through
type Source string

const (
	// SourcePopularMovies pages the popular movies list
	SourcePopularMovies Source = "popular-movies"
	// SourceTopRatedMovies pages the top rated movies list
	SourceTopRatedMovies Source = "top-rated-movies"
	// SourcePopularTV pages the popular tv list
	SourcePopularTV Source = "popular-tv"
	// SourceSearchMovies pages a movie title search
	SourceSearchMovies Source = "search-movies"
)

// OpenInput opens a listing session
type OpenInput struct {
	Source string `json:"source" validate:"required,oneof=popular-movies top-rated-movies popular-tv search-movies" example:"popular-movies"`
	Query  string `json:"query" validate:"required_if=Source search-movies,max=200" example:"amelie"`
}

// MoreInput triggers the next page. RemainingPx is the distance left to the
// bottom of the scroll container, nil asks for an explicit load
type MoreInput struct {
	RemainingPx *int `json:"remaining_px" validate:"omitempty,min=0" example:"80"`
}

// ViewInput carries the view controls read from the query string. Unknown
// sort keys and unparsable filters are not rejected, they fall back or match nothing
type ViewInput struct {
	Search string `json:"search" validate:"max=200"`
	Year   string `json:"year" validate:"max=8"`
	Genre  string `json:"genre" validate:"max=16"`
	Sort   string `json:"sort" validate:"max=16"`
	Order  string `json:"order" validate:"max=8"`
}

// Summary identifies a listing and carries its current state
type Summary struct {
	ID        string        `json:"id" example:"0b9f6a52-4a0c-4b8e-8f1e-3c1f0d0f6a11"`
	Source    Source        `json:"source" example:"popular-movies"`
	Query     string        `json:"query,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	State     listing.State `json:"state"`
}

// Opened is returned when a listing is created, it includes the first page
type Opened struct {
	Summary
	View listing.View `json:"view"`
}

// More reports the outcome of a trigger
type More struct {
	Fetched bool          `json:"fetched"`
	State   listing.State `json:"state"`
}

// ListingView is a derived view of a listing
type ListingView struct {
	ID string `json:"id"`
	listing.View
}
