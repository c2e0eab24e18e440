// Package listing drives incremental page accumulation for one result set
//
// A Controller owns its state behind a mutex. Fetches run outside the lock and
// the loading flag keeps at most one fetch in flight per listing. Independent
// controllers share nothing
package listing

import (
	"context"
	"sync"
	"time"

	"marquee/internal/core/catalog"
	"marquee/internal/core/query"
)

// DefaultThreshold is the remaining scroll distance in pixels below which a
// trigger starts the next fetch
const DefaultThreshold = 100

// DefaultFetchTimeout bounds one page fetch. Fetches do not follow the
// caller's cancellation, so this is the only deadline they get
const DefaultFetchTimeout = 10 * time.Second

// FailedMessage is the user facing text recorded after a failed fetch
const FailedMessage = "could not load more titles, try again"

// Fetcher loads one page of a result set
type Fetcher func(ctx context.Context, page int) (catalog.Page, error)

// State is a copy of a listing at one point in time
type State struct {
	Items      []catalog.Item `json:"-"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Loaded     int            `json:"loaded"`
	IsLoading  bool           `json:"is_loading"`
	Error      string         `json:"error,omitempty"`
	Closed     bool           `json:"closed"`
}

// Exhausted reports whether no further page will be requested
func (s State) Exhausted() bool { return s.Loaded > 0 && s.Page >= s.TotalPages }

// Option configures a Controller
type Option func(*Controller)

// WithThreshold overrides DefaultThreshold, values <= 0 are ignored
func WithThreshold(px int) Option {
	return func(c *Controller) {
		if px > 0 {
			c.threshold = px
		}
	}
}

// WithFetchTimeout overrides DefaultFetchTimeout, values <= 0 are ignored
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver registers a hook called after every applied or discarded fetch
func WithObserver(fn func(Outcome)) Option {
	return func(c *Controller) { c.observe = fn }
}

// Outcome describes how a fetch ended
type Outcome struct {
	Page      int
	Items     int
	Err       error
	Discarded bool
}

// Controller accumulates pages for one listing
type Controller struct {
	fetch     Fetcher
	threshold int
	timeout   time.Duration
	observe   func(Outcome)

	mu         sync.Mutex
	items      []catalog.Item
	page       int
	totalPages int
	loaded     int
	loading    bool
	errMsg     string
	closed     bool
}

// New returns an idle controller at page 1 with no items
func New(fetch Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetch:      fetch,
		threshold:  DefaultThreshold,
		timeout:    DefaultFetchTimeout,
		page:       1,
		totalPages: 1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Threshold returns the configured trigger distance
func (c *Controller) Threshold() int { return c.threshold }

// Trigger fetches the next page when remainingPx is below the threshold and a
// fetch is allowed. fetched reports whether a fetch ran and was applied
func (c *Controller) Trigger(ctx context.Context, remainingPx int) (bool, error) {
	if remainingPx >= c.threshold {
		return false, nil
	}
	return c.Load(ctx)
}

// Load fetches the next page if allowed: not loading, not closed and either
// nothing applied yet or page < totalPages. A failure keeps items and page,
// records FailedMessage and returns the fetch error as is.
//
// A started fetch runs to completion even when ctx is cancelled: it keeps the
// values of ctx but only the controller's fetch timeout can stop it. Close is
// the only way to drop its result
func (c *Controller) Load(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if !c.allowedLocked() {
		c.mu.Unlock()
		return false, nil
	}
	c.loading = true
	page := c.page
	c.mu.Unlock()

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	res, err := c.fetch(fctx, page)
	cancel()

	c.mu.Lock()
	c.loading = false
	if c.closed {
		c.mu.Unlock()
		c.notify(Outcome{Page: page, Err: err, Discarded: true})
		return false, nil
	}
	if err != nil {
		c.errMsg = FailedMessage
		c.mu.Unlock()
		c.notify(Outcome{Page: page, Err: err})
		return false, err
	}
	c.items = append(c.items, res.Results...)
	c.totalPages = max(1, res.TotalPages)
	c.page++
	c.loaded++
	c.errMsg = ""
	c.mu.Unlock()

	c.notify(Outcome{Page: page, Items: len(res.Results)})
	return true, nil
}

func (c *Controller) allowedLocked() bool {
	if c.loading || c.closed {
		return false
	}
	return c.loaded == 0 || c.page < c.totalPages
}

func (c *Controller) notify(o Outcome) {
	if c.observe != nil {
		c.observe(o)
	}
}

// Close tears the listing down. A fetch already in flight finishes but its
// result is dropped
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Items:      append([]catalog.Item(nil), c.items...),
		Page:       c.page,
		TotalPages: c.totalPages,
		Loaded:     c.loaded,
		IsLoading:  c.loading,
		Error:      c.errMsg,
		Closed:     c.closed,
	}
}

// View is the derived listing: filtered and sorted items plus the year selector values
type View struct {
	State State          `json:"state"`
	Items []catalog.Item `json:"items"`
	Years []int          `json:"years"`
	Count int            `json:"count"`
	Total int            `json:"total"`
}

// View runs the query engine over a snapshot
func (c *Controller) View(p query.Params) View {
	s := c.Snapshot()
	items := query.View(s.Items, p)
	return View{
		State: s,
		Items: items,
		Years: query.UniqueYears(s.Items),
		Count: len(items),
		Total: len(s.Items),
	}
}
