// Package raw reads environment settings without logging, so the logger can
// configure itself from it. It must not import the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a prefixed view over a variable source, the process environment
// unless built with From
type Env struct {
	prefix string
	src    func(string) (string, bool)
}

// New returns an unprefixed view over the process environment
func New() Env { return Env{src: os.LookupEnv} }

// From returns a view over a fixed map
func From(vars map[string]string) Env {
	return Env{src: func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}}
}

// Prefix returns a view whose keys are prefixed by p after the current prefix
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p, src: e.src} }

// Key is the full variable name for key
func (e Env) Key(key string) string { return e.prefix + key }

// Lookup returns the trimmed value, ok is false when unset or blank
func (e Env) Lookup(key string) (string, bool) {
	src := e.src
	if src == nil {
		src = os.LookupEnv
	}
	v, _ := src(e.Key(key))
	v = strings.TrimSpace(v)
	return v, v != ""
}

// String returns the value or def
func (e Env) String(key, def string) string {
	if v, ok := e.Lookup(key); ok {
		return v
	}
	return def
}

// Bool accepts strconv bools plus yes and on, anything else is false
func (e Env) Bool(key string, def bool) bool {
	v, ok := e.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// Int returns a non negative integer or def when unset or malformed
func (e Env) Int(key string, def int) int {
	v, ok := e.Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
