package query

import (
	"reflect"
	"testing"

	"marquee/internal/core/catalog"

	"golang.org/x/text/language"
)

func ids(items []catalog.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestView_SortByRatingDesc(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "B", VoteAverage: 5},
		{ID: 2, Title: "A", VoteAverage: 9},
	}
	got := View(items, Params{SortBy: SortRating, SortOrder: Desc})
	if !reflect.DeepEqual(ids(got), []int{2, 1}) {
		t.Fatalf("order = %v", ids(got))
	}
	if items[0].ID != 1 {
		t.Fatalf("input mutated")
	}
}

func TestView_FilterYearKeepsOrder(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "a", ReleaseDate: "2001-05-01", Popularity: 3},
		{ID: 2, Title: "b", ReleaseDate: "2010-01-01", Popularity: 3},
		{ID: 3, Title: "c", ReleaseDate: "2010-09-09", Popularity: 3},
	}
	got := View(items, Params{FilterYear: "2010"})
	if !reflect.DeepEqual(ids(got), []int{2, 3}) {
		t.Fatalf("filtered = %v", ids(got))
	}
}

func TestView_Table(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "Érase una vez", Popularity: 10, VoteAverage: 7, ReleaseDate: "2019-07-26", GenreIDs: []int{35, 18}},
		{ID: 2, Name: "Zorro", Popularity: 50, VoteAverage: 6, FirstAirDate: "1957-10-10", GenreIDs: []int{10759}},
		{ID: 3, Title: "avatar", Popularity: 30, VoteAverage: 8, ReleaseDate: "2009-12-18", GenreIDs: []int{28, 12}},
		{ID: 4, Title: "Babel", Popularity: 20, VoteAverage: 7, ReleaseDate: "2006-10-27", GenreIDs: []int{18}},
	}

	tests := []struct {
		name string
		p    Params
		want []int
	}{
		{"default popularity desc", Params{}, []int{2, 3, 4, 1}},
		{"popularity asc", Params{SortBy: SortPopularity, SortOrder: Asc}, []int{1, 4, 3, 2}},
		{"unknown sort falls back to popularity", Params{SortBy: "weird"}, []int{2, 3, 4, 1}},
		{"rating desc stable ties", Params{SortBy: SortRating}, []int{3, 1, 4, 2}},
		{"title asc collated", Params{SortBy: SortTitle, SortOrder: Asc, Lang: language.Spanish}, []int{3, 4, 1, 2}},
		{"name alias", Params{SortBy: SortName, SortOrder: Desc, Lang: language.Spanish}, []int{2, 1, 4, 3}},
		{"date asc", Params{SortBy: SortDate, SortOrder: Asc}, []int{2, 4, 3, 1}},
		{"search case insensitive non ascii", Params{SearchTitle: "ÉRASE"}, []int{1}},
		{"search substring", Params{SearchTitle: "ab"}, []int{4}},
		{"genre membership", Params{FilterGenreID: "18"}, []int{4, 1}},
		{"genre leading integer", Params{FilterGenreID: "28abc"}, []int{3}},
		{"genre unparsable matches nothing", Params{FilterGenreID: "drama"}, []int{}},
		{"year and genre combine", Params{FilterYear: "2006", FilterGenreID: "18"}, []int{4}},
		{"year no match", Params{FilterYear: "1999"}, []int{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := View(items, tc.p)
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Fatalf("View = %v, want %v", ids(got), tc.want)
			}
			again := View(items, tc.p)
			if !reflect.DeepEqual(got, again) {
				t.Fatalf("View is not deterministic")
			}
		})
	}
}

func TestView_UndatedItemsDoNotPanic(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, ReleaseDate: "2010-01-01"},
		{ID: 2},
		{ID: 3, ReleaseDate: "bogus"},
		{ID: 4, ReleaseDate: "2000-01-01"},
	}
	first := View(items, Params{SortBy: SortDate, SortOrder: Asc})
	second := View(items, Params{SortBy: SortDate, SortOrder: Asc})
	if len(first) != 4 || !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("undated sort not deterministic: %v vs %v", ids(first), ids(second))
	}
}

func TestUniqueYears(t *testing.T) {
	items := []catalog.Item{
		{ReleaseDate: "2010-01-01"},
		{FirstAirDate: "2017-12-01"},
		{ReleaseDate: "2010-06-01"},
		{ReleaseDate: "1895-12-28"},
		{ReleaseDate: "1900-01-01"},
		{ReleaseDate: ""},
		{ReleaseDate: "nope"},
	}
	got := UniqueYears(items)
	if !reflect.DeepEqual(got, []int{2017, 2010}) {
		t.Fatalf("UniqueYears = %v", got)
	}
	if got := UniqueYears(nil); len(got) != 0 {
		t.Fatalf("UniqueYears(nil) = %v", got)
	}
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"18", 18, true},
		{"  28abc", 28, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, c := range cases {
		got, ok := parseLeadingInt(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("parseLeadingInt(%q) = %d,%v want %d,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseSortKeyAndOrder(t *testing.T) {
	if ParseSortKey("Rating") != SortRating || ParseSortKey("") != SortPopularity || ParseSortKey("nope") != SortPopularity {
		t.Fatalf("ParseSortKey mismatch")
	}
	if ParseOrder("ASC") != Asc || ParseOrder("") != Desc || ParseOrder("desc") != Desc {
		t.Fatalf("ParseOrder mismatch")
	}
}
