package testkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// CatalogStub is a fake catalog API. Routes map a request path, without the
// /3 version prefix, to a canned JSON body. Unknown paths answer 404 with a
// catalog style status_message
type CatalogStub struct {
	URL string

	mu     sync.Mutex
	routes map[string]stubReply
	hits   []*http.Request
}

type stubReply struct {
	status int
	body   string
}

// NewCatalogStub starts the stub and closes it when the test ends. Point a
// client at stub.URL + "/3"
func NewCatalogStub(t *testing.T) *CatalogStub {
	t.Helper()
	s := &CatalogStub{routes: map[string]stubReply{}}
	srv := httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Reply answers path with status and body
func (s *CatalogStub) Reply(path string, status int, body string) *CatalogStub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = stubReply{status: status, body: body}
	return s
}

// JSON answers path with 200 and body
func (s *CatalogStub) JSON(path, body string) *CatalogStub {
	return s.Reply(path, http.StatusOK, body)
}

// Hits returns the requests received so far
func (s *CatalogStub) Hits() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.hits...)
}

// Count returns how many requests hit path
func (s *CatalogStub) Count(path string) int {
	n := 0
	for _, r := range s.Hits() {
		if strings.TrimPrefix(r.URL.Path, "/3") == path {
			n++
		}
	}
	return n
}

func (s *CatalogStub) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/3")
	s.mu.Lock()
	s.hits = append(s.hits, r)
	reply, ok := s.routes[path]
	s.mu.Unlock()
	if !ok {
		reply = stubReply{status: http.StatusNotFound, body: `{"status_code":34,"status_message":"The resource you requested could not be found."}`}
	}
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(reply.status)
	_, _ = w.Write([]byte(reply.body))
}
