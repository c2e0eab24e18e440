package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"marquee/internal/core/catalog"
	"marquee/internal/core/media"
	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/testkit"
	"marquee/internal/services/api/media/domain"
)

// fakeCatalog records which endpoint family served each call
type fakeCatalog struct {
	mu    sync.Mutex
	calls []string

	detailsErr error
	reviewsErr error
	imagesErr  error
	images     catalog.Images
}

func (f *fakeCatalog) hit(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeCatalog) MovieDetails(_ context.Context, id int) (catalog.Details, error) {
	f.hit("movie.details")
	if f.detailsErr != nil {
		return catalog.Details{}, f.detailsErr
	}
	runtime := 120
	return catalog.Details{
		ID: id, Title: "Roma", ReleaseDate: "2018-08-30", Runtime: &runtime,
		Credits: &catalog.Credits{
			Cast: []catalog.CastMember{{ID: 1, Name: "Yalitza Aparicio"}},
			Crew: []catalog.CrewMember{{ID: 2, Name: "Alfonso Cuarón", Job: "Director"}, {ID: 3, Job: "Editor"}},
		},
		Videos: &catalog.Videos{Results: []catalog.Video{{Key: "k1", Site: "YouTube", Type: "Trailer"}}},
	}, nil
}

func (f *fakeCatalog) TVDetails(_ context.Context, id int) (catalog.Details, error) {
	f.hit("tv.details")
	if f.detailsErr != nil {
		return catalog.Details{}, f.detailsErr
	}
	return catalog.Details{ID: id, Name: "Dark", FirstAirDate: "2017-12-01", EpisodeRunTime: []int{53}}, nil
}

func (f *fakeCatalog) MovieReviews(_ context.Context, _ int, page int) (catalog.ReviewPage, error) {
	f.hit("movie.reviews")
	if f.reviewsErr != nil {
		return catalog.ReviewPage{}, f.reviewsErr
	}
	return catalog.ReviewPage{Page: page, Results: []catalog.Review{{ID: "r1", Author: "ana"}}}, nil
}

func (f *fakeCatalog) TVReviews(_ context.Context, _ int, page int) (catalog.ReviewPage, error) {
	f.hit("tv.reviews")
	if f.reviewsErr != nil {
		return catalog.ReviewPage{}, f.reviewsErr
	}
	return catalog.ReviewPage{Page: page}, nil
}

func (f *fakeCatalog) MovieImages(context.Context, int) (catalog.Images, error) {
	f.hit("movie.images")
	return f.images, f.imagesErr
}

func (f *fakeCatalog) SearchMovies(_ context.Context, query string, page int) (catalog.Page, error) {
	f.hit("search")
	return catalog.Page{Page: page, Results: []catalog.Item{{ID: 1, Title: query}}, TotalPages: 1}, nil
}

func (f *fakeCatalog) saw(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func TestNew_PanicsOnNilCatalog(t *testing.T) {
	testkit.MustPanic(t, func() { _ = New(nil) })
}

func TestDetails_DispatchByKind(t *testing.T) {
	fc := &fakeCatalog{}
	s := New(fc)
	ctx := context.Background()

	if d, err := s.Details(ctx, media.KindMovie, 1); err != nil || d.Title != "Roma" {
		t.Fatalf("movie details = %+v, %v", d, err)
	}
	if d, err := s.Details(ctx, media.KindTV, 2); err != nil || d.Name != "Dark" {
		t.Fatalf("tv details = %+v, %v", d, err)
	}
	if !fc.saw("movie.details") || !fc.saw("tv.details") {
		t.Fatalf("calls = %v", fc.calls)
	}
}

func TestUnsupportedKind_NoCatalogCall(t *testing.T) {
	fc := &fakeCatalog{}
	s := New(fc)
	ctx := context.Background()

	_, err := s.Details(ctx, media.Kind("game"), 1)
	var uk *media.UnsupportedKindError
	if !errors.As(err, &uk) {
		t.Fatalf("want UnsupportedKindError, got %v", err)
	}
	if _, err := s.Reviews(ctx, media.Kind("game"), 1, 1); err == nil {
		t.Fatalf("reviews should reject unknown kind")
	}
	if _, err := s.Detail(ctx, media.Kind("game"), 1); !errors.As(err, &uk) {
		t.Fatalf("detail should reject unknown kind, got %v", err)
	}
	if len(fc.calls) != 0 {
		t.Fatalf("catalog called for unknown kind: %v", fc.calls)
	}
}

func TestReviews_PageFloor(t *testing.T) {
	s := New(&fakeCatalog{})
	p, err := s.Reviews(context.Background(), media.KindTV, 1, 0)
	if err != nil || p.Page != 1 {
		t.Fatalf("page = %d, err = %v", p.Page, err)
	}
}

func TestRecord_Normalizes(t *testing.T) {
	s := New(&fakeCatalog{})
	r, err := s.Record(context.Background(), media.KindTV, 7)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if r.Title != "Dark" || r.RuntimeMinutes == nil || *r.RuntimeMinutes != 53 || r.Budget != nil {
		t.Fatalf("record = %+v", r)
	}
}

func TestDetail_ComposesMovie(t *testing.T) {
	fc := &fakeCatalog{images: catalog.Images{Backdrops: []catalog.Image{{FilePath: "/wide.jpg"}}}}
	d, err := New(fc).Detail(context.Background(), media.KindMovie, 426426)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Record.ID != 426426 || len(d.TopCast) != 1 || len(d.KeyCrew) != 1 || len(d.Trailers) != 1 {
		t.Fatalf("detail = %+v", d)
	}
	if d.Backdrop == nil || *d.Backdrop != "/wide.jpg" {
		t.Fatalf("backdrop = %v", d.Backdrop)
	}
	if len(d.Reviews.Results) != 1 {
		t.Fatalf("reviews = %+v", d.Reviews)
	}
}

func TestDetail_TVSkipsImages(t *testing.T) {
	fc := &fakeCatalog{}
	d, err := New(fc).Detail(context.Background(), media.KindTV, 1)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if fc.saw("movie.images") {
		t.Fatalf("tv detail should not fetch movie images")
	}
	if d.Reviews.Results == nil || d.Trailers == nil {
		t.Fatalf("sequences must be non nil: %+v", d)
	}
}

func TestDetail_ImagesFailureIsNotFatal(t *testing.T) {
	fc := &fakeCatalog{imagesErr: perr.New(perr.ErrorCodeUnavailable, "boom")}
	if _, err := New(fc).Detail(context.Background(), media.KindMovie, 1); err != nil {
		t.Fatalf("images failure should be ignored, got %v", err)
	}
}

func TestDetail_RequiredFailuresCollapse(t *testing.T) {
	cases := []struct {
		name string
		fc   *fakeCatalog
		want perr.ErrorCode
	}{
		{"details not found", &fakeCatalog{detailsErr: perr.New(perr.ErrorCodeNotFound, "missing")}, perr.ErrorCodeNotFound},
		{"reviews unavailable", &fakeCatalog{reviewsErr: perr.New(perr.ErrorCodeUnavailable, "down")}, perr.ErrorCodeUnavailable},
		{"plain error", &fakeCatalog{detailsErr: errors.New("network")}, perr.ErrorCodeUnavailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.fc).Detail(context.Background(), media.KindMovie, 1)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := perr.CodeOf(err); got != c.want {
				t.Fatalf("code = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	fc := &fakeCatalog{}
	p, err := New(fc).Search(context.Background(), domain.SearchInput{Query: "fauno"})
	if err != nil || p.Page != 1 || p.Results[0].Title != "fauno" {
		t.Fatalf("search = %+v, %v", p, err)
	}
}
