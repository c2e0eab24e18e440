package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	defaultAddr       = ":4000"
	readHeaderTimeout = 10 * time.Second
	// shutdownGrace bounds the drain after the run context ends
	shutdownGrace = 10 * time.Second
)

// Server owns the root chi mux and the stdlib server in front of it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads PORT from cfg, so a CORE_API_ scoped view answers to
// CORE_API_PORT. opts receive the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayAddr("PORT", defaultAddr)
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv:  &stdhttp.Server{Addr: addr, Handler: m, ReadHeaderTimeout: readHeaderTimeout},
	}
}

// Router returns the root router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run serves until the listener fails, Shutdown is called or ctx ends. A
// cancelled ctx drains in flight requests for up to shutdownGrace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http draining")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
