// Package service holds the in memory listing sessions. Each session owns one
// listing controller and is addressed by a random id
package service

import (
	"context"
	"sync"
	"time"

	"marquee/internal/core/catalog"
	"marquee/internal/core/listing"
	"marquee/internal/core/query"
	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/metrics"
	"marquee/internal/services/api/listings/domain"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// DefaultTTL is how long an untouched session survives
const DefaultTTL = 30 * time.Minute

// DefaultMaxSessions caps the live sessions. Opening past the cap evicts the
// session seen least recently
const DefaultMaxSessions = 1000

// Service defines the service contract for listings
type Service interface{ domain.ServicePort }

// Options tune the session store
type Options struct {
	Threshold    int
	TTL          time.Duration
	MaxSessions  int
	FetchTimeout time.Duration
	Lang         language.Tag
	Metrics      *metrics.Set
	Now          func() time.Time
}

type session struct {
	id       uuid.UUID
	source   domain.Source
	query    string
	created  time.Time
	lastSeen time.Time
	ctrl     *listing.Controller
}

// Svc implements the Service interface
type Svc struct {
	catalog domain.CatalogPort
	opts    Options
	log     logger.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// New creates a listings service over the catalog
func New(c domain.CatalogPort, o Options) *Svc {
	if c == nil {
		panic("listings.Service requires a non nil catalog")
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Threshold <= 0 {
		o.Threshold = listing.DefaultThreshold
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = DefaultMaxSessions
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = listing.DefaultFetchTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Svc{
		catalog:  c,
		opts:     o,
		log:      *logger.Named("listings"),
		sessions: make(map[uuid.UUID]*session),
	}
}

// fetcher binds a source to the catalog endpoint that pages it
func (s *Svc) fetcher(src domain.Source, q string) (listing.Fetcher, error) {
	switch src {
	case domain.SourcePopularMovies:
		return s.catalog.PopularMovies, nil
	case domain.SourceTopRatedMovies:
		return s.catalog.TopRatedMovies, nil
	case domain.SourcePopularTV:
		return s.catalog.PopularTV, nil
	case domain.SourceSearchMovies:
		return func(ctx context.Context, page int) (catalog.Page, error) {
			return s.catalog.SearchMovies(ctx, q, page)
		}, nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown listing source %q", src), "source")
	}
}

// Open creates a session and loads its first page. A failed first page drops
// the session again
func (s *Svc) Open(ctx context.Context, in domain.OpenInput) (domain.Opened, error) {
	src := domain.Source(in.Source)
	fetch, err := s.fetcher(src, in.Query)
	if err != nil {
		return domain.Opened{}, err
	}

	now := s.opts.Now()
	sess := &session{
		id:       uuid.New(),
		source:   src,
		query:    in.Query,
		created:  now,
		lastSeen: now,
	}
	sess.ctrl = listing.New(fetch,
		listing.WithThreshold(s.opts.Threshold),
		listing.WithFetchTimeout(s.opts.FetchTimeout),
		listing.WithObserver(s.observe(src)),
	)

	s.mu.Lock()
	s.sweepLocked(now)
	for len(s.sessions) >= s.opts.MaxSessions {
		s.evictLocked()
	}
	s.sessions[sess.id] = sess
	s.gaugeLocked()
	s.mu.Unlock()

	if _, err := sess.ctrl.Load(ctx); err != nil {
		s.drop(sess.id)
		return domain.Opened{}, loadError(err)
	}

	s.log.Debug().Str("listing", sess.id.String()).Str("source", string(src)).Msg("listing opened")
	return domain.Opened{
		Summary: summary(sess),
		View:    sess.ctrl.View(s.params(domain.ViewInput{})),
	}, nil
}

// View derives the filtered and sorted view of a session
func (s *Svc) View(_ context.Context, id string, in domain.ViewInput) (domain.ListingView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.ListingView{}, err
	}
	return domain.ListingView{ID: sess.id.String(), View: sess.ctrl.View(s.params(in))}, nil
}

// More triggers the next page. Without a distance the load is explicit, as a
// retry button would do
func (s *Svc) More(ctx context.Context, id string, in domain.MoreInput) (domain.More, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.More{}, err
	}
	if sess.ctrl.Snapshot().Closed {
		return domain.More{}, perr.New(perr.ErrorCodeConflict, "listing is closed")
	}

	var fetched bool
	if in.RemainingPx != nil {
		fetched, err = sess.ctrl.Trigger(ctx, *in.RemainingPx)
	} else {
		fetched, err = sess.ctrl.Load(ctx)
	}
	if err != nil {
		return domain.More{}, loadError(err)
	}
	st := sess.ctrl.Snapshot()
	logger.C(ctx).Debug().Bool("fetched", fetched).Int("loaded", st.Loaded).Int("total_pages", st.TotalPages).Msg("listing trigger")
	return domain.More{Fetched: fetched, State: st}, nil
}

// Close tears a session down, a fetch in flight is discarded
func (s *Svc) Close(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if !s.drop(uid) {
		return errNotFound(id)
	}
	logger.C(ctx).Debug().Msg("listing closed")
	return nil
}

// Len returns the number of live sessions
func (s *Svc) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes sessions idle longer than the TTL and returns how many went
func (s *Svc) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.sweepLocked(s.opts.Now())
	s.gaugeLocked()
	return n
}

func (s *Svc) sweepLocked(now time.Time) int {
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) <= s.opts.TTL {
			continue
		}
		sess.ctrl.Close()
		delete(s.sessions, id)
		n++
	}
	if n > 0 {
		s.log.Debug().Int("swept", n).Msg("idle listings closed")
	}
	return n
}

// evictLocked closes the session seen least recently
func (s *Svc) evictLocked() {
	var oldest *session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return
	}
	oldest.ctrl.Close()
	delete(s.sessions, oldest.id)
	s.log.Debug().Str("listing", oldest.id.String()).Int("max", s.opts.MaxSessions).Msg("listing evicted")
}

// Janitor calls Sweep every interval until ctx ends
func (s *Svc) Janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = s.opts.TTL / 2
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *Svc) drop(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.ctrl.Close()
	delete(s.sessions, id)
	s.gaugeLocked()
	return true
}

func (s *Svc) lookup(id string) (*session, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	if !ok {
		return nil, errNotFound(id)
	}
	sess.lastSeen = s.opts.Now()
	return sess, nil
}

func (s *Svc) gaugeLocked() {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ListingsOpen.Set(float64(len(s.sessions)))
	}
}

// observe feeds fetch outcomes into the listing metrics and the log
func (s *Svc) observe(src domain.Source) func(listing.Outcome) {
	return func(o listing.Outcome) {
		result := "ok"
		switch {
		case o.Discarded:
			result = "discarded"
		case o.Err != nil:
			result = "error"
			s.log.Warn().Err(o.Err).
				Str("source", string(src)).
				Int("page", o.Page).
				Bool("retryable", perr.IsRetryable(o.Err)).
				Msg("listing fetch failed")
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.ListingFetches.WithLabelValues(string(src), result).Inc()
		}
	}
}

func (s *Svc) params(in domain.ViewInput) query.Params {
	return query.Params{
		SearchTitle:   in.Search,
		FilterYear:    in.Year,
		FilterGenreID: in.Genre,
		SortBy:        query.ParseSortKey(in.Sort),
		SortOrder:     query.ParseOrder(in.Order),
		Lang:          s.opts.Lang,
	}
}

func summary(sess *session) domain.Summary {
	return domain.Summary{
		ID:        sess.id.String(),
		Source:    sess.source,
		Query:     sess.query,
		CreatedAt: sess.created,
		State:     sess.ctrl.Snapshot(),
	}
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.InvalidArgf("listing id must be a uuid"), "id")
	}
	return uid, nil
}

func errNotFound(id string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeNotFound, "listing %s not found", id), "id")
}

// loadError keeps the catalog code and swaps the message for the one users see
func loadError(err error) error {
	code := perr.CodeOf(err)
	if code == perr.ErrorCodeUnknown {
		code = perr.ErrorCodeUnavailable
	}
	return perr.Wrap(err, code, listing.FailedMessage)
}
