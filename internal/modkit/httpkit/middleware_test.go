package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func applyStack(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_ReachesHandler(t *testing.T) {
	hit := 0
	root := applyStack(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit++
		w.WriteHeader(http.StatusNoContent)
	}), CommonStack(nil))

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/listings/abc/", nil))
	if hit != 1 || rec.Code != http.StatusNoContent {
		t.Fatalf("hit = %d status = %d", hit, rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id not echoed")
	}
}

func TestCommonStack_Health(t *testing.T) {
	root := applyStack(http.NotFoundHandler(), CommonStack(nil))
	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/health = %d", rec.Code)
	}
}

func TestCommonStack_PanicBecomesEnvelope(t *testing.T) {
	root := applyStack(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), CommonStack(nil))
	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/media/movie/1", nil))
	if rec.Code != http.StatusInternalServerError || rec.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("panic = %d %v", rec.Code, rec.Header())
	}
}

func TestCommonStack_CORSOriginAndExtra(t *testing.T) {
	extraHit := false
	extra := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			extraHit = true
			next.ServeHTTP(w, r)
		})
	}
	root := applyStack(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), CommonStack([]string{"https://marquee.example"}, extra))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/abc", nil)
	req.Header.Set("Origin", "https://marquee.example")
	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://marquee.example" {
		t.Fatalf("allow origin = %q", got)
	}
	if !extraHit {
		t.Fatalf("extra middleware did not run")
	}
}
