package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marquee/internal/core/catalog"
	phttp "marquee/internal/platform/net/http"
	"marquee/internal/services/api/listings/domain"
	svc "marquee/internal/services/api/listings/service"

	"github.com/go-chi/chi/v5"
)

type pages struct{}

func (pages) list(page int) (catalog.Page, error) {
	return catalog.Page{Page: page, TotalPages: 4, Results: []catalog.Item{
		{ID: page, Title: "Roma", ReleaseDate: "2018-08-30", GenreIDs: []int{18}},
	}}, nil
}

func (p pages) PopularMovies(_ context.Context, n int) (catalog.Page, error)  { return p.list(n) }
func (p pages) TopRatedMovies(_ context.Context, n int) (catalog.Page, error) { return p.list(n) }
func (p pages) PopularTV(_ context.Context, n int) (catalog.Page, error)      { return p.list(n) }
func (p pages) SearchMovies(_ context.Context, _ string, n int) (catalog.Page, error) {
	return p.list(n)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func newRouter() stdhttp.Handler {
	root := phttp.AdaptChi(chi.NewRouter())
	root.Route("/listings", func(r phttp.Router) {
		Register(r, svc.New(pages{}, svc.Options{}))
	})
	return root.Mux()
}

func do(t *testing.T, h stdhttp.Handler, method, target string, body io.Reader) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	h.ServeHTTP(rec, req)
	var env envelope
	if rec.Code != stdhttp.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v body=%s", err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func open(t *testing.T, h stdhttp.Handler) string {
	t.Helper()
	code, env := do(t, h, stdhttp.MethodPost, "/listings", strings.NewReader(`{"source":"popular-movies"}`))
	if code != stdhttp.StatusCreated {
		t.Fatalf("open status = %d err = %s", code, env.Error)
	}
	var out domain.Opened
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode opened: %v", err)
	}
	if out.ID == "" || out.State.Loaded != 1 {
		t.Fatalf("opened = %+v", out)
	}
	return out.ID
}

func TestLifecycle(t *testing.T) {
	h := newRouter()
	id := open(t, h)

	code, env := do(t, h, stdhttp.MethodPost, "/listings/"+id+"/more", strings.NewReader(`{"remaining_px":20}`))
	var more domain.More
	_ = json.Unmarshal(env.Data, &more)
	if code != stdhttp.StatusOK || !more.Fetched || more.State.Loaded != 2 {
		t.Fatalf("more = %d %+v", code, more)
	}

	code, env = do(t, h, stdhttp.MethodPost, "/listings/"+id+"/more", nil)
	_ = json.Unmarshal(env.Data, &more)
	if code != stdhttp.StatusOK || !more.Fetched || more.State.Loaded != 3 {
		t.Fatalf("explicit more = %d %+v", code, more)
	}

	code, env = do(t, h, stdhttp.MethodGet, "/listings/"+id+"?genre=18&sort=date&order=asc", nil)
	var view domain.ListingView
	_ = json.Unmarshal(env.Data, &view)
	if code != stdhttp.StatusOK || view.Count != 3 || view.Total != 3 || view.ID != id {
		t.Fatalf("view = %d %+v", code, view)
	}

	if code, _ := do(t, h, stdhttp.MethodDelete, "/listings/"+id, nil); code != stdhttp.StatusNoContent {
		t.Fatalf("delete status = %d", code)
	}
	if code, _ := do(t, h, stdhttp.MethodGet, "/listings/"+id, nil); code != stdhttp.StatusNotFound {
		t.Fatalf("get after delete = %d", code)
	}
}

func TestOpen_Validation(t *testing.T) {
	h := newRouter()
	cases := []struct {
		name, body string
		want       int
	}{
		{"missing source", `{}`, stdhttp.StatusBadRequest},
		{"unknown source", `{"source":"popular-games"}`, stdhttp.StatusBadRequest},
		{"search without query", `{"source":"search-movies"}`, stdhttp.StatusBadRequest},
		{"malformed", `{`, stdhttp.StatusBadRequest},
		{"unknown field", `{"source":"popular-tv","x":1}`, stdhttp.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if code, env := do(t, h, stdhttp.MethodPost, "/listings", strings.NewReader(c.body)); code != c.want {
				t.Fatalf("status = %d want %d err = %s", code, c.want, env.Error)
			}
		})
	}
}

func TestMore_BadBody(t *testing.T) {
	h := newRouter()
	id := open(t, h)
	if code, _ := do(t, h, stdhttp.MethodPost, "/listings/"+id+"/more", strings.NewReader(`{"remaining_px":-1}`)); code != stdhttp.StatusBadRequest {
		t.Fatalf("negative distance status = %d", code)
	}
	if code, _ := do(t, h, stdhttp.MethodPost, "/listings/"+id+"/more", strings.NewReader(`nope`)); code != stdhttp.StatusBadRequest {
		t.Fatalf("bad json status = %d", code)
	}
}

func TestBadID(t *testing.T) {
	h := newRouter()
	if code, _ := do(t, h, stdhttp.MethodGet, "/listings/not-a-uuid", nil); code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d", code)
	}
}
