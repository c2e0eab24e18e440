// Package normalize folds titles and search terms into a comparable form
// Pipeline order
// 1 Strip control runes and invalid bytes
// 2 Unicode NFC composition
// 3 Full Unicode case folding
// 4 Width fold fullwidth to ASCII
//
// Accents are kept: "cafe" does not match "Café"
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains, a chain is stateful and not safe to share
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			stripControls(),
			norm.NFC,
			cases.Fold(),
			width.Fold,
		)
	},
}

// Fold returns the case folded form of s
func Fold(s string) string {
	if s == "" {
		return ""
	}
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// keep the term searchable
		return strings.ToLower(s)
	}
	return out
}

// Contains reports whether needle occurs in haystack ignoring case
// an empty needle matches everything
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Matcher holds a pre-folded needle for repeated matching over a slice
type Matcher struct {
	needle string
}

// NewMatcher folds needle once
func NewMatcher(needle string) Matcher { return Matcher{needle: Fold(needle)} }

// Match reports whether the folded haystack contains the needle
func (m Matcher) Match(haystack string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), m.needle)
}
