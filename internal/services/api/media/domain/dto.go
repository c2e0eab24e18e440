// Package domain holds DTOs and ports for the media http and service contracts
package domain

import (
	"marquee/internal/core/catalog"
	"marquee/internal/core/media"
)

// ReviewsInput is the review page query
type ReviewsInput struct {
	Page int `json:"page" validate:"min=1,max=500" example:"1"`
}

// SearchInput is the movie search query
type SearchInput struct {
	Query string `json:"query" validate:"required,min=1,max=200" example:"el laberinto del fauno"`
	Page  int    `json:"page" validate:"min=1,max=500" example:"1"`
}

// Detail is the composed detail view for one title
type Detail struct {
	Record   media.Record         `json:"record"`
	TopCast  []catalog.CastMember `json:"top_cast"`
	KeyCrew  []catalog.CrewMember `json:"key_crew"`
	Trailers []catalog.Video      `json:"trailers"`
	Reviews  catalog.ReviewPage   `json:"reviews"`
	Backdrop *string              `json:"backdrop_path"`
}
