package testkit

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestPanicsAndContain(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	MustContain(t, "listing opened source=popular-movies", "popular-movies")
	MustContain(t, strings.Repeat("x", 600)+"needle", "needle")
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestCatalogStub(t *testing.T) {
	s := NewCatalogStub(t).
		JSON("/movie/popular", `{"page":1,"results":[],"total_pages":1}`).
		Reply("/movie/5", http.StatusUnauthorized, `{"status_message":"Invalid API key"}`)

	if code, body := get(t, s.URL+"/3/movie/popular?page=1"); code != http.StatusOK || !strings.Contains(body, `"total_pages":1`) {
		t.Fatalf("popular = %d %s", code, body)
	}
	if code, _ := get(t, s.URL+"/3/movie/5"); code != http.StatusUnauthorized {
		t.Fatalf("movie 5 = %d", code)
	}
	if code, body := get(t, s.URL+"/3/tv/9"); code != http.StatusNotFound || !strings.Contains(body, "status_message") {
		t.Fatalf("unknown = %d %s", code, body)
	}
	if s.Count("/movie/popular") != 1 || len(s.Hits()) != 3 {
		t.Fatalf("hits = %d", len(s.Hits()))
	}
	if got := s.Hits()[0].URL.Query().Get("page"); got != "1" {
		t.Fatalf("query not recorded: %q", got)
	}
}
