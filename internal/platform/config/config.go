// Package config reads typed settings from prefixed environment views. May*
// getters fall back to their default and log a warning on malformed input,
// Must* getters panic
package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"marquee/internal/platform/config/raw"
	"marquee/internal/platform/logger"

	"golang.org/x/text/language"
)

// Conf is a namespaced view, e.g. New().Prefix("CATALOG_")
type Conf struct{ env raw.Env }

// New returns the unprefixed view over the process environment
func New() Conf { return Conf{env: raw.New()} }

// FromMap returns a view over fixed values, for tests and embedding
func FromMap(vars map[string]string) Conf { return Conf{env: raw.From(vars)} }

// Prefix returns a child view with p appended to the prefix
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func (c Conf) key(k string) string { return c.env.Key(k) }

// may parses key with parse, returning def when unset or malformed
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Err(err).
			Msg("invalid config value, using default")
		return def
	}
	return v
}

// MustString returns the value of key and panics when it is unset
func (c Conf) MustString(key string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string { return c.env.String(key, def) }

// MayInt parses a base 10 integer
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 parses a float such as 40 or 2.5
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool parses strconv bools
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration parses Go durations such as 250ms or 30m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayLanguage parses a BCP 47 tag such as es-ES
func (c Conf) MayLanguage(key string, def language.Tag) language.Tag {
	return may(c, key, def, language.Parse)
}

// MayURL returns an absolute http(s) url with trailing slashes removed
func (c Conf) MayURL(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return "", &url.Error{Op: "parse", URL: s, Err: errNotHTTP}
		}
		return strings.TrimRight(u.String(), "/"), nil
	})
}

// MayAddr returns a listen address. A bare port such as 4000 becomes :4000
func (c Conf) MayAddr(key, def string) string {
	s := c.env.String(key, def)
	if _, err := strconv.Atoi(s); err == nil {
		return ":" + s
	}
	return s
}

// MayCSV splits a comma separated list, dropping blanks. def is returned when
// nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

type configError string

func (e configError) Error() string { return string(e) }

const errNotHTTP = configError("not an absolute http url")
