// Package strings holds the small string and slice helpers wiring code needs
package strings

import std "strings"

// Or returns in, or def when in is empty
func Or[S ~[]E, E any](in, def S) S {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s and panics naming what when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix turns " listings/ " into "/listings". A prefix that reduces to
// the root panics
func MustPrefix(s string) string {
	p := "/" + std.Trim(s, " /")
	if p == "/" {
		panic("module prefix is required")
	}
	return p
}
