package filter

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
)

// Warning describes a predicate that could not be applied as requested.
type Warning struct {
	Column    string `json:"column" yaml:"column"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Message   string `json:"message" yaml:"message"`
}

func (w Warning) String() string { return w.Message }

// View is the ordered subset of a dataset that passed every active predicate.
// Titles point into the dataset; nothing is copied or fabricated.
type View struct {
	Titles   []*catalog.Title
	Columns  []string
	Years    catalog.YearRange // range actually applied, zero when the year filter was inactive
	Warnings []Warning

	hasColumn map[string]bool
}

// Len returns the number of matching records.
func (v View) Len() int { return len(v.Titles) }

// Has reports whether the source dataset carried column.
func (v View) Has(column string) bool { return v.hasColumn[strings.ToLower(column)] }

// Index returns the position of id within the view.
func (v View) Index(id catalog.ID) (int, bool) {
	for i, t := range v.Titles {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

type predicate func(*catalog.Title) bool

// Apply evaluates params against ds. Predicates are ANDed and records keep their
// source order. An active predicate whose column is absent is skipped and reported
// in View.Warnings. Apply does not validate params; callers run Params.Validate first.
func Apply(ds *catalog.Dataset, p Params) View {
	v := View{hasColumn: map[string]bool{}}
	if ds == nil {
		return v
	}
	v.Columns = ds.Columns
	for _, c := range ds.Columns {
		v.hasColumn[c] = true
	}

	var preds []predicate
	warn := func(column, pred, format string, args ...any) {
		v.Warnings = append(v.Warnings, Warning{Column: column, Predicate: pred, Message: fmt.Sprintf(format, args...)})
	}

	if p.Kind != KindAll && p.Kind != "" {
		if ds.Has(catalog.ColType) {
			kind := p.Kind
			preds = append(preds, func(t *catalog.Title) bool { return t.Kind == kind })
		} else {
			warn(catalog.ColType, "type", "type column missing; type filter %q ignored", p.Kind)
		}
	}

	switch {
	case !ds.Has(catalog.ColReleaseYear):
		if !p.Years.IsZero() {
			warn(catalog.ColReleaseYear, "year", "release_year column missing; year filter ignored")
		}
	case p.Years.IsZero() && !ds.HasYears:
		// no readable year anywhere and nothing requested
	default:
		r := p.Years
		if r.IsZero() {
			r = ds.YearDomain
		}
		v.Years = r
		preds = append(preds, func(t *catalog.Title) bool { return t.HasYear && r.Contains(t.ReleaseYear) })
	}

	if !selectsAll(p.Countries) {
		if ds.Has(catalog.ColCountry) {
			want := lowerSet(p.Countries)
			preds = append(preds, func(t *catalog.Title) bool { return anyIn(t.Countries(), want) })
		} else {
			warn(catalog.ColCountry, "country", "country column missing; country filter ignored")
		}
	}

	if !selectsAll(p.Genres) {
		if ds.Has(catalog.ColListedIn) {
			want := lowerSet(p.Genres)
			preds = append(preds, func(t *catalog.Title) bool { return anyIn(t.Genres(), want) })
		} else {
			warn(catalog.ColListedIn, "genre", "listed_in column missing; genre filter ignored")
		}
	}

	if p.Search != "" {
		if ds.Has(catalog.ColTitle) {
			q := strings.ToLower(p.Search)
			preds = append(preds, func(t *catalog.Title) bool {
				return t.Title != "" && strings.Contains(strings.ToLower(t.Title), q)
			})
		} else {
			warn(catalog.ColTitle, "search", "title column missing; search %q ignored", p.Search)
		}
	}

	v.Titles = make([]*catalog.Title, 0, len(ds.Titles))
next:
	for i := range ds.Titles {
		t := &ds.Titles[i]
		for _, keep := range preds {
			if !keep(t) {
				continue next
			}
		}
		v.Titles = append(v.Titles, t)
	}
	return v
}

func lowerSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range NormalizeList(values) {
		out[strings.ToLower(v)] = true
	}
	return out
}

func anyIn(tokens []string, want map[string]bool) bool {
	for _, tok := range tokens {
		if want[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}
