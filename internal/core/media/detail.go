package media

import (
	"marquee/internal/core/catalog"
)

const (
	// DetailCast is how many cast members the detail page shows
	DetailCast = 8
	// ModalCast is how many cast members the quick look modal shows
	ModalCast = 4
)

// keyJobs are the crew jobs surfaced on the detail page
var keyJobs = map[string]struct{}{
	"Director":   {},
	"Screenplay": {},
	"Story":      {},
	"Producer":   {},
}

// trailerTypes are the video types accepted as trailers per kind
var trailerTypes = map[Kind]map[string]struct{}{
	KindMovie: {"Trailer": {}},
	KindTV:    {"Trailer": {}, "Teaser": {}, "Clip": {}},
}

// trailerSite is the only video host the front end can embed
const trailerSite = "YouTube"

// TopCast returns the first n cast members in billing order
func TopCast(c catalog.Credits, n int) []catalog.CastMember {
	if n <= 0 || len(c.Cast) == 0 {
		return []catalog.CastMember{}
	}
	n = min(n, len(c.Cast))
	return append([]catalog.CastMember{}, c.Cast[:n]...)
}

// KeyCrew keeps directors, writers and producers in catalog order
func KeyCrew(c catalog.Credits) []catalog.CrewMember {
	out := []catalog.CrewMember{}
	for _, m := range c.Crew {
		if _, ok := keyJobs[m.Job]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Trailers filters videos down to embeddable trailers for the kind
func Trailers(v *catalog.Videos, kind Kind) []catalog.Video {
	out := []catalog.Video{}
	if v == nil {
		return out
	}
	types, ok := trailerTypes[kind]
	if !ok {
		return out
	}
	for _, vid := range v.Results {
		if vid.Site != trailerSite {
			continue
		}
		if _, ok := types[vid.Type]; ok {
			out = append(out, vid)
		}
	}
	return out
}

// Backdrop picks the first image backdrop, falling back to the record's own
func Backdrop(r Record, imgs *catalog.Images) *string {
	if imgs != nil && len(imgs.Backdrops) > 0 && imgs.Backdrops[0].FilePath != "" {
		p := imgs.Backdrops[0].FilePath
		return &p
	}
	return cloneString(r.BackdropPath)
}
