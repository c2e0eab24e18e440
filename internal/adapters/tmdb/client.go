// Package tmdb is the media catalog client. Every request is a GET that
// carries the configured api key and response locale
package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marquee/internal/platform/logger"
	"marquee/internal/platform/metrics"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault  = "https://api.themoviedb.org/3"
	defaultTimeout  = 10 * time.Second
	defaultLanguage = "es-ES"
	defaultRPS      = 40
	defaultBurst    = 10
	maxBodyBytes    = 4 << 20
	maxErrBodyBytes = 64 << 10
)

// Options configures the Client
type Options struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// Outbound pacing. Requests wait for a token, nothing is retried
	RPS   float64
	Burst int

	// HTTPClient overrides the transport, Timeout is ignored when set
	HTTPClient *http.Client
	Metrics    *metrics.Set
}

// Client is the catalog resource client
type Client struct {
	http     *http.Client
	opts     Options
	limiter  *rate.Limiter
	imgLangs string
	log      logger.Logger
	now      func() time.Time
}

// NewClient creates a Client with defaults for every zero option
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Language == "" {
		o.Language = defaultLanguage
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http:     hc,
		opts:     o,
		limiter:  rate.NewLimiter(rate.Limit(o.RPS), o.Burst),
		imgLangs: imageLanguages(o.Language),
		log:      *logger.Named("tmdb"),
		now:      time.Now,
	}
}

// Language returns the locale sent with every request
func (c *Client) Language() string { return c.opts.Language }

// Fetch GETs path under the base url, merging params with the api key and
// locale, and decodes the JSON body into out. Callers cannot override either
// fixed parameter. Failures are *RequestFailedError
func (c *Client) Fetch(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := routeOf(path)

	if err := c.limiter.Wait(ctx); err != nil {
		return transportFailed(path, err)
	}

	u := c.opts.BaseURL + "/" + strings.TrimLeft(path, "/")
	q := url.Values{}
	for k, vs := range params {
		if k == "api_key" || k == "language" {
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	q.Set("api_key", c.opts.APIKey)
	q.Set("language", c.opts.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+q.Encode(), nil)
	if err != nil {
		return transportFailed(path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	took := c.now().Sub(start)
	if err != nil {
		c.opts.Metrics.ObserveCatalog(endpoint, 0, took)
		c.log.Warn().Err(err).Str("endpoint", endpoint).Dur("latency", took).Msg("tmdb transport error")
		return transportFailed(path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("endpoint", endpoint).Msg("tmdb close body failed")
		}
	}()

	c.opts.Metrics.ObserveCatalog(endpoint, resp.StatusCode, took)
	c.log.Debug().
		Str("endpoint", endpoint).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", took).
		Msg("tmdb http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusFailed(path, resp.StatusCode, readStatusMessage(resp.Body))
	}

	if out == nil {
		_ = drain(resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return decodeFailed(path, resp.StatusCode, err)
	}
	return nil
}

// readStatusMessage pulls status_message from an error envelope, "" if absent
func readStatusMessage(r io.Reader) string {
	var body struct {
		StatusMessage string `json:"status_message"`
	}
	b, err := io.ReadAll(io.LimitReader(r, maxErrBodyBytes))
	if err != nil || len(b) == 0 {
		return ""
	}
	if json.Unmarshal(b, &body) != nil {
		return ""
	}
	return strings.TrimSpace(body.StatusMessage)
}

func drain(rc io.Reader) error {
	_, err := io.Copy(io.Discard, io.LimitReader(rc, 512))
	return err
}

// routeOf replaces numeric path segments with :id for metric labels
func routeOf(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segs[i] = ":id"
		}
	}
	return "/" + strings.Join(segs, "/")
}

// imageLanguages builds include_image_language for the locale: images tagged
// with the base language plus untagged ones
func imageLanguages(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "null"
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "null"
	}
	return base.String() + ",null"
}
