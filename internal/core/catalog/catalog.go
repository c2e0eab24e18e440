// Package catalog holds the raw media catalog wire types shared by the
// adapter, the normalizer, the listing controller and the query engine
//
// Movie and tv records arrive in different shapes: movies carry title and
// release_date, tv carries name and first_air_date. List records keep both
// spellings and expose accessors so callers do not branch on kind
package catalog

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the catalog calendar date format
const DateLayout = "2006-01-02"

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item is a list record as returned by popular, top rated and search endpoints
type Item struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult,omitempty"`
	MediaType        string  `json:"media_type,omitempty"`
}

// DisplayTitle returns the movie title or the tv name
func (it Item) DisplayTitle() string {
	if it.Title != "" {
		return it.Title
	}
	return it.Name
}

// DateString returns the movie release date or the tv first air date
func (it Item) DateString() string {
	if it.ReleaseDate != "" {
		return it.ReleaseDate
	}
	return it.FirstAirDate
}

// Date parses DateString; ok is false when missing or malformed
func (it Item) Date() (time.Time, bool) { return ParseDate(it.DateString()) }

// HasGenre reports whether id is among the item genre ids
func (it Item) HasGenre(id int) bool {
	for _, g := range it.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Page is the list envelope
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// CastMember is one credited performer
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewMember is one credited crew person
type CrewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// Credits is the appended credits sub resource
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is one entry of the appended videos sub resource
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos wraps the video list
type Videos struct {
	Results []Video `json:"results"`
}

// Details is the raw details payload for either kind. Fields that exist only
// for one kind are pointers so absence survives decoding
type Details struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	Name                string            `json:"name"`
	OriginalTitle       string            `json:"original_title"`
	OriginalName        string            `json:"original_name"`
	Tagline             string            `json:"tagline"`
	Overview            string            `json:"overview"`
	VoteAverage         float64           `json:"vote_average"`
	VoteCount           int               `json:"vote_count"`
	ReleaseDate         string            `json:"release_date"`
	FirstAirDate        string            `json:"first_air_date"`
	Runtime             *int              `json:"runtime"`
	EpisodeRunTime      []int             `json:"episode_run_time"`
	Budget              *float64          `json:"budget"`
	Revenue             *float64          `json:"revenue"`
	Status              string            `json:"status"`
	OriginalLanguage    string            `json:"original_language"`
	IMDbID              *string           `json:"imdb_id"`
	Adult               *bool             `json:"adult"`
	PosterPath          *string           `json:"poster_path"`
	BackdropPath        *string           `json:"backdrop_path"`
	Genres              []Genre           `json:"genres"`
	ProductionCompanies []json.RawMessage `json:"production_companies"`
	ProductionCountries []json.RawMessage `json:"production_countries"`
	SpokenLanguages     []json.RawMessage `json:"spoken_languages"`
	Credits             *Credits          `json:"credits"`
	Videos              *Videos           `json:"videos"`
}

// AuthorDetails is the review author block
type AuthorDetails struct {
	Name       string   `json:"name"`
	Username   string   `json:"username"`
	AvatarPath *string  `json:"avatar_path"`
	Rating     *float64 `json:"rating"`
}

// Review is a single user review
type Review struct {
	ID            string        `json:"id"`
	Author        string        `json:"author"`
	AuthorDetails AuthorDetails `json:"author_details"`
	Content       string        `json:"content"`
	CreatedAt     string        `json:"created_at"`
	URL           string        `json:"url"`
}

// ReviewPage is the review list envelope
type ReviewPage struct {
	ID           int      `json:"id"`
	Page         int      `json:"page"`
	Results      []Review `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Image is one backdrop or poster file
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

// Images is the movie images resource
type Images struct {
	ID        int     `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// ErrorBody is the catalog error envelope
type ErrorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ParseDate parses a catalog date, ok is false for blank or malformed input
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ImageURL joins the CDN base, a size token like w500 and a relative path
// returns "" when path is empty
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return strings.TrimRight(base, "/") + "/" + strings.Trim(size, "/") + "/" + strings.TrimLeft(path, "/")
}
