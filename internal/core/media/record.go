// Package media reconciles the movie and tv catalog schemas into one record
//
// Normalize is the only place where the two payload shapes differ. A new
// field that is spelled differently per kind belongs in the fields table
// below and nowhere else
package media

import (
	"encoding/json"
	"time"

	"marquee/internal/core/catalog"
)

// Date is a calendar date serialized as YYYY-MM-DD
type Date struct{ time.Time }

// MarshalJSON renders the date without a clock component
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(catalog.DateLayout))
}

// UnmarshalJSON parses YYYY-MM-DD
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(catalog.DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Record is the unified media view model. (Kind, ID) is the key, ids repeat across kinds
type Record struct {
	ID                  int               `json:"id"`
	Kind                Kind              `json:"kind"`
	Title               string            `json:"title"`
	OriginalTitle       string            `json:"original_title"`
	Tagline             string            `json:"tagline"`
	Overview            string            `json:"overview"`
	VoteAverage         float64           `json:"vote_average"`
	VoteCount           int               `json:"vote_count"`
	ReleaseDate         *Date             `json:"release_date"`
	RuntimeMinutes      *int              `json:"runtime_minutes"`
	Budget              *float64          `json:"budget"`
	Revenue             *float64          `json:"revenue"`
	Status              string            `json:"status"`
	OriginalLanguage    string            `json:"original_language"`
	IMDbID              *string           `json:"imdb_id"`
	IsAdult             *bool             `json:"is_adult"`
	PosterPath          *string           `json:"poster_path"`
	BackdropPath        *string           `json:"backdrop_path"`
	Genres              []catalog.Genre   `json:"genres"`
	ProductionCompanies []json.RawMessage `json:"production_companies"`
	ProductionCountries []json.RawMessage `json:"production_countries"`
	SpokenLanguages     []json.RawMessage `json:"spoken_languages"`
	Credits             catalog.Credits   `json:"credits"`
}

// Key identifies a record across kinds
type Key struct {
	Kind Kind
	ID   int
}

// Key returns the (kind, id) pair
func (r Record) Key() Key { return Key{Kind: r.Kind, ID: r.ID} }
