package media

import (
	"encoding/json"

	"marquee/internal/core/catalog"
	"marquee/internal/platform/logger"
)

// fields is one row of the per kind dispatch table
type fields struct {
	title         func(d *catalog.Details) string
	originalTitle func(d *catalog.Details) string
	releaseDate   func(d *catalog.Details) string
	runtime       func(d *catalog.Details) *int
	budget        func(d *catalog.Details) *float64
	revenue       func(d *catalog.Details) *float64
	imdbID        func(d *catalog.Details) *string
	adult         func(d *catalog.Details) *bool
}

var table = map[Kind]fields{
	KindMovie: {
		title:         func(d *catalog.Details) string { return d.Title },
		originalTitle: func(d *catalog.Details) string { return d.OriginalTitle },
		releaseDate:   func(d *catalog.Details) string { return d.ReleaseDate },
		runtime:       func(d *catalog.Details) *int { return cloneInt(d.Runtime) },
		budget:        func(d *catalog.Details) *float64 { return cloneFloat(d.Budget) },
		revenue:       func(d *catalog.Details) *float64 { return cloneFloat(d.Revenue) },
		imdbID:        func(d *catalog.Details) *string { return cloneString(d.IMDbID) },
		adult:         func(d *catalog.Details) *bool { return cloneBool(d.Adult) },
	},
	KindTV: {
		title:         func(d *catalog.Details) string { return d.Name },
		originalTitle: func(d *catalog.Details) string { return d.OriginalName },
		releaseDate:   func(d *catalog.Details) string { return d.FirstAirDate },
		runtime:       tvRuntime,
		budget:        nilFloat,
		revenue:       nilFloat,
		imdbID:        func(*catalog.Details) *string { return nil },
		adult:         func(*catalog.Details) *bool { return nil },
	},
}

// loose is used for kinds outside the table: either spelling wins, kind
// exclusive fields stay null
var loose = fields{
	title:         func(d *catalog.Details) string { return firstNonEmpty(d.Title, d.Name) },
	originalTitle: func(d *catalog.Details) string { return firstNonEmpty(d.OriginalTitle, d.OriginalName) },
	releaseDate:   func(d *catalog.Details) string { return firstNonEmpty(d.ReleaseDate, d.FirstAirDate) },
	runtime:       tvRuntime,
	budget:        nilFloat,
	revenue:       nilFloat,
	imdbID:        func(*catalog.Details) *string { return nil },
	adult:         func(*catalog.Details) *bool { return nil },
}

// tvRuntime walks episode_run_time[0] then runtime. A zero first episode
// runtime falls through like an absent one
func tvRuntime(d *catalog.Details) *int {
	if len(d.EpisodeRunTime) > 0 && d.EpisodeRunTime[0] != 0 {
		v := d.EpisodeRunTime[0]
		return &v
	}
	return cloneInt(d.Runtime)
}

func nilFloat(*catalog.Details) *float64 { return nil }

// Normalize maps a raw details payload into a Record. It never fails and
// never mutates d: absent optional fields become null or empty
func Normalize(d catalog.Details, kind Kind) Record {
	rec, _ := normalize(&d, kind)
	return rec
}

// NormalizeLogged is Normalize plus a debug line naming every field that fell
// back to its default
func NormalizeLogged(log *logger.Logger, d catalog.Details, kind Kind) Record {
	rec, defaulted := normalize(&d, kind)
	if log != nil && len(defaulted) > 0 {
		log.Debug().
			Str("kind", string(kind)).
			Int("id", d.ID).
			Strs("defaulted", defaulted).
			Msg("media fields defaulted")
	}
	return rec
}

func normalize(d *catalog.Details, kind Kind) (Record, []string) {
	f, ok := table[kind]
	if !ok {
		f = loose
	}

	var defaulted []string
	note := func(name string, missing bool) {
		if missing {
			defaulted = append(defaulted, name)
		}
	}

	rec := Record{
		ID:                  d.ID,
		Kind:                kind,
		Title:               f.title(d),
		OriginalTitle:       f.originalTitle(d),
		Tagline:             d.Tagline,
		Overview:            d.Overview,
		VoteAverage:         d.VoteAverage,
		VoteCount:           max(d.VoteCount, 0),
		RuntimeMinutes:      f.runtime(d),
		Budget:              f.budget(d),
		Revenue:             f.revenue(d),
		Status:              d.Status,
		OriginalLanguage:    d.OriginalLanguage,
		IMDbID:              f.imdbID(d),
		IsAdult:             f.adult(d),
		PosterPath:          cloneString(d.PosterPath),
		BackdropPath:        cloneString(d.BackdropPath),
		Genres:              append([]catalog.Genre{}, d.Genres...),
		ProductionCompanies: cloneRaw(d.ProductionCompanies),
		ProductionCountries: cloneRaw(d.ProductionCountries),
		SpokenLanguages:     cloneRaw(d.SpokenLanguages),
		Credits:             catalog.Credits{Cast: []catalog.CastMember{}, Crew: []catalog.CrewMember{}},
	}
	if t, ok := catalog.ParseDate(f.releaseDate(d)); ok {
		rec.ReleaseDate = &Date{Time: t}
	}
	if d.Credits != nil {
		rec.Credits.Cast = append(rec.Credits.Cast, d.Credits.Cast...)
		rec.Credits.Crew = append(rec.Credits.Crew, d.Credits.Crew...)
	}

	note("title", rec.Title == "")
	note("tagline", rec.Tagline == "")
	note("release_date", rec.ReleaseDate == nil)
	note("runtime_minutes", rec.RuntimeMinutes == nil)
	note("poster_path", rec.PosterPath == nil)
	note("backdrop_path", rec.BackdropPath == nil)
	note("genres", len(d.Genres) == 0)
	note("credits", d.Credits == nil)
	return rec, defaulted
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneRaw copies the sub record list, always returning a non nil slice
func cloneRaw(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(in))
	for _, m := range in {
		out = append(out, append(json.RawMessage(nil), m...))
	}
	return out
}
