// Package query derives filtered and sorted listing views from accumulated
// catalog items. Everything here is pure: inputs are never mutated and every
// call recomputes from scratch
package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"marquee/internal/core/catalog"
	"marquee/internal/core/normalize"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the comparator
type SortKey string

const (
	// SortPopularity orders by the catalog popularity score, the default
	SortPopularity SortKey = "popularity"
	// SortRating orders by vote average
	SortRating SortKey = "rating"
	// SortTitle orders by display title with a locale collator
	SortTitle SortKey = "title"
	// SortName is an alias of SortTitle used by tv views
	SortName SortKey = "name"
	// SortDate orders by release or first air date
	SortDate SortKey = "date"
)

// Order is the sort direction
type Order string

const (
	// Asc sorts ascending
	Asc Order = "asc"
	// Desc sorts descending, anything that is not Asc behaves as Desc
	Desc Order = "desc"
)

// minYear bounds plausible years for the year selector
const minYear = 1900

// Params are the view controls owned by the caller
type Params struct {
	SearchTitle   string
	FilterYear    string
	FilterGenreID string
	SortBy        SortKey
	SortOrder     Order
	// Lang picks the collation for title sorting, zero means root collation
	Lang language.Tag
}

// View filters then stable sorts items. The result is a new slice
func View(items []catalog.Item, p Params) []catalog.Item {
	out := Filter(items, p)
	Sort(out, p)
	return out
}

// Filter keeps items matching the title, year and genre filters in input order
func Filter(items []catalog.Item, p Params) []catalog.Item {
	title := normalize.NewMatcher(p.SearchTitle)

	year := strings.TrimSpace(p.FilterYear)
	genreSet := strings.TrimSpace(p.FilterGenreID) != ""
	genre, genreOK := parseLeadingInt(p.FilterGenreID)

	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if !title.Match(it.DisplayTitle()) {
			continue
		}
		if year != "" && yearOf(it) != year {
			continue
		}
		if genreSet && (!genreOK || !it.HasGenre(genre)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Sort stable sorts items in place by p.SortBy and p.SortOrder
func Sort(items []catalog.Item, p Params) {
	sign := -1
	if p.SortOrder == Asc {
		sign = 1
	}
	cmpFn := comparator(p)
	slices.SortStableFunc(items, func(a, b catalog.Item) int {
		return sign * cmpFn(a, b)
	})
}

func comparator(p Params) func(a, b catalog.Item) int {
	switch p.SortBy {
	case SortTitle, SortName:
		col := collate.New(p.Lang)
		return func(a, b catalog.Item) int {
			return col.CompareString(a.DisplayTitle(), b.DisplayTitle())
		}
	case SortRating:
		return func(a, b catalog.Item) int { return cmp.Compare(a.VoteAverage, b.VoteAverage) }
	case SortDate:
		return compareDates
	default:
		return func(a, b catalog.Item) int { return cmp.Compare(a.Popularity, b.Popularity) }
	}
}

// compareDates treats a missing or malformed date as equal to anything. The
// relation is not transitive so dated and undated items keep no defined
// relative order, only a deterministic one for a given input
func compareDates(a, b catalog.Item) int {
	da, okA := a.Date()
	db, okB := b.Date()
	if !okA || !okB {
		return 0
	}
	return da.Compare(db)
}

// UniqueYears lists the distinct plausible years in items, newest first
func UniqueYears(items []catalog.Item) []int {
	seen := make(map[int]struct{}, len(items))
	years := make([]int, 0, 16)
	for _, it := range items {
		d, ok := it.Date()
		if !ok || d.Year() <= minYear {
			continue
		}
		if _, dup := seen[d.Year()]; dup {
			continue
		}
		seen[d.Year()] = struct{}{}
		years = append(years, d.Year())
	}
	slices.SortFunc(years, func(a, b int) int { return cmp.Compare(b, a) })
	return years
}

func yearOf(it catalog.Item) string {
	d, ok := it.Date()
	if !ok {
		return ""
	}
	return strconv.Itoa(d.Year())
}

// parseLeadingInt reads an optional sign and the leading decimal digits after
// leading whitespace, "28abc" gives 28 and "abc" fails
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseSortKey maps untrusted input onto a SortKey, unknown keys fall back to popularity
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortRating, SortTitle, SortName, SortDate:
		return k
	default:
		return SortPopularity
	}
}

// ParseOrder maps untrusted input onto an Order
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}
