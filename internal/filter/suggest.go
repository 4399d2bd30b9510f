package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// OptionSet lists the distinct selectable values of a dataset, each in first-observed order.
type OptionSet struct {
	Kinds     []string          `json:"types" yaml:"types"`
	Countries []string          `json:"countries" yaml:"countries"`
	Genres    []string          `json:"genres" yaml:"genres"`
	Ratings   []string          `json:"ratings" yaml:"ratings"`
	Years     catalog.YearRange `json:"years" yaml:"years"`
	HasYears  bool              `json:"has_years" yaml:"has_years"`
}

// Options collects the values a user can pick from. Country and genre lists
// are split into tokens; blanks are dropped.
func Options(ds *catalog.Dataset) OptionSet {
	var o OptionSet
	if ds == nil {
		return o
	}
	o.Years, o.HasYears = ds.YearDomain, ds.HasYears
	kinds, countries, genres, ratings := distinct{}, distinct{}, distinct{}, distinct{}
	for i := range ds.Titles {
		t := &ds.Titles[i]
		if t.Kind != catalog.KindUnknown {
			o.Kinds = kinds.add(o.Kinds, string(t.Kind))
		}
		for _, c := range t.Countries() {
			o.Countries = countries.add(o.Countries, c)
		}
		for _, g := range t.Genres() {
			o.Genres = genres.add(o.Genres, g)
		}
		if t.Rating != "" {
			o.Ratings = ratings.add(o.Ratings, t.Rating)
		}
	}
	return o
}

type distinct map[string]bool

func (d distinct) add(list []string, v string) []string {
	k := strings.ToLower(v)
	if d[k] {
		return list
	}
	d[k] = true
	return append(list, v)
}

// Suggest reports requested country and genre values that no record carries,
// proposing the closest known value when one is near enough.
func Suggest(ds *catalog.Dataset, p Params) []Warning {
	if ds == nil || ds.Len() == 0 {
		return nil
	}
	opts := Options(ds)
	var out []Warning
	check := func(column, pred string, requested, known []string) {
		if selectsAll(requested) || !ds.Has(column) {
			return
		}
		have := lowerSet(known)
		for _, v := range NormalizeList(requested) {
			if have[strings.ToLower(v)] {
				continue
			}
			msg := fmt.Sprintf("no title lists %s %q", pred, v)
			if best, ok := closest(v, known); ok {
				msg += fmt.Sprintf("; did you mean %q?", best)
			}
			out = append(out, Warning{Column: column, Predicate: pred, Message: msg})
		}
	}
	check(catalog.ColCountry, "country", p.Countries, opts.Countries)
	check(catalog.ColListedIn, "genre", p.Genres, opts.Genres)
	return out
}

// closest ranks candidates by fuzzy containment first, then by edit distance.
func closest(query string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	q := strings.ToLower(query)
	matches := fuzzy.RankFindFold(q, candidates)
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Distance < matches[j].Distance
		})
		return matches[0].Target, true
	}

	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(q, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(q) / 2
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}
