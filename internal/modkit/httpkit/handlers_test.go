package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "marquee/internal/platform/errors"
	phttp "marquee/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type openIn struct {
	Source string `json:"source" validate:"required"`
}

type moreIn struct {
	RemainingPx *int `json:"remaining_px,omitempty"`
}

func router(t *testing.T) Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	PostJSON(r, "/listings", func(_ *http.Request, in openIn) (any, error) {
		return Created(map[string]string{"source": in.Source}), nil
	})
	Get(r, "/listings/{id}", func(req *http.Request) (any, error) {
		if Param(req, "id") == "gone" {
			return nil, perr.NotFoundf("listing gone not found")
		}
		return map[string]string{"id": Param(req, "id")}, nil
	})
	Post(r, "/listings/{id}/more", func(req *http.Request) (any, error) {
		in, err := Body[moreIn](req)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"explicit": in.RemainingPx == nil}, nil
	})
	Delete(r, "/listings/{id}", func(*http.Request) (any, error) { return NoContent(), nil })
	return r
}

func call(t *testing.T, r Router, method, target, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	var env phttp.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return rec, env
}

func TestHandlers(t *testing.T) {
	r := router(t)
	tests := []struct {
		name, method, target, body string
		status                     int
		code                       perr.ErrorCode
		contains                   string
	}{
		{"json created", http.MethodPost, "/listings", `{"source":"popular-tv"}`, http.StatusCreated, 0, "popular-tv"},
		{"json invalid", http.MethodPost, "/listings", `{"source":`, http.StatusBadRequest, perr.ErrorCodeJSON, "invalid json body"},
		{"json unknown field", http.MethodPost, "/listings", `{"source":"x","page":1}`, http.StatusBadRequest, perr.ErrorCodeJSON, ""},
		{"json fails validation", http.MethodPost, "/listings", `{}`, http.StatusBadRequest, perr.ErrorCodeValidation, "source"},
		{"json empty body", http.MethodPost, "/listings", "", http.StatusBadRequest, perr.ErrorCodeJSON, "empty body"},
		{"plain value wrapped", http.MethodGet, "/listings/abc", "", http.StatusOK, 0, `"id":"abc"`},
		{"error mapped", http.MethodGet, "/listings/gone", "", http.StatusNotFound, perr.ErrorCodeNotFound, "listing gone not found"},
		{"optional body absent", http.MethodPost, "/listings/abc/more", "", http.StatusOK, 0, `"explicit":true`},
		{"optional body present", http.MethodPost, "/listings/abc/more", `{"remaining_px":10}`, http.StatusOK, 0, `"explicit":false`},
		{"optional body malformed", http.MethodPost, "/listings/abc/more", `nope`, http.StatusBadRequest, perr.ErrorCodeJSON, ""},
		{"no content", http.MethodDelete, "/listings/abc", "", http.StatusNoContent, 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := call(t, r, tc.method, tc.target, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if env.Code != tc.code {
				t.Fatalf("code = %v, want %v", env.Code, tc.code)
			}
			if tc.contains != "" && !strings.Contains(rec.Body.String(), tc.contains) {
				t.Fatalf("body %s missing %q", rec.Body.String(), tc.contains)
			}
		})
	}
}

func TestCall_ForeignErrorIsInternal(t *testing.T) {
	h := Call(func(*http.Request) (any, error) { return nil, errors.New("boom") })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
