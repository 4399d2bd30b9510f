package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/filter"
)

// Status qualifies a scalar metric.
type Status int

const (
	OK Status = iota
	NoData
	NotApplicable
)

func (s Status) String() string {
	switch s {
	case NoData:
		return "no data"
	case NotApplicable:
		return "not applicable"
	default:
		return "ok"
	}
}

// MarshalText renders the status for JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Unrated labels records whose rating field is empty.
const Unrated = "Unrated"

// Average is the mean of the leading integers of the duration field.
type Average struct {
	Status  Status  `json:"status" yaml:"status"`
	Label   string  `json:"label" yaml:"label"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Value   float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Samples int     `json:"samples,omitempty" yaml:"samples,omitempty"`
}

func (a Average) String() string {
	if a.Status != OK {
		return a.Status.String()
	}
	return fmt.Sprintf("%.1f %s", a.Value, a.Unit)
}

// Year is a release year or a status explaining its absence.
type Year struct {
	Status Status `json:"status" yaml:"status"`
	Value  int    `json:"value,omitempty" yaml:"value,omitempty"`
}

func (y Year) String() string {
	if y.Status != OK {
		return y.Status.String()
	}
	return strconv.Itoa(y.Value)
}

// Bucket is one row of a frequency table.
type Bucket struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Options bounds the top-N tables.
type Options struct {
	TopCountries int
	TopGenres    int
}

// DefaultOptions returns N=10 countries and N=5 genres.
func DefaultOptions() Options { return Options{TopCountries: 10, TopGenres: 5} }

// Metrics summarises a filtered view.
type Metrics struct {
	Total   int     `json:"total" yaml:"total"`
	Average Average `json:"average" yaml:"average"`
	Oldest  Year    `json:"oldest_release_year" yaml:"oldest_release_year"`

	Ratings []Bucket `json:"ratings" yaml:"ratings"` // first-observed order
	Years   []Bucket `json:"release_years" yaml:"release_years"`

	TopCountries []Bucket `json:"top_countries,omitempty" yaml:"top_countries,omitempty"` // only with ShowStats
	TopGenres    []Bucket `json:"top_genres,omitempty" yaml:"top_genres,omitempty"`

	ShowStats bool `json:"show_stats" yaml:"show_stats"`

	// Notes lists metrics degraded by a missing column.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MostFrequentGenre returns the leading genre token.
func (m Metrics) MostFrequentGenre() (string, bool) {
	if len(m.TopGenres) == 0 {
		return "", false
	}
	return m.TopGenres[0].Label, true
}

// Summarize computes every metric over v. Records whose fields do not parse are
// left out of the affected aggregate only.
func Summarize(v filter.View, p filter.Params, opt Options) Metrics {
	if opt.TopCountries <= 0 {
		opt.TopCountries = DefaultOptions().TopCountries
	}
	if opt.TopGenres <= 0 {
		opt.TopGenres = DefaultOptions().TopGenres
	}
	m := Metrics{Total: v.Len(), ShowStats: p.ShowStats}
	if len(v.Columns) == 0 {
		// nothing was loaded
		m.Average = Average{Status: NoData, Label: "Average duration"}
		m.Oldest = Year{Status: NoData}
		return m
	}
	note := func(format string, args ...any) { m.Notes = append(m.Notes, fmt.Sprintf(format, args...)) }

	m.Average = average(v, p.Kind)
	if p.Kind != filter.KindAll && !v.Has(catalog.ColDuration) {
		note("duration column missing; %s not applicable", strings.ToLower(m.Average.Label))
	}

	switch {
	case !v.Has(catalog.ColReleaseYear):
		m.Oldest = Year{Status: NotApplicable}
		note("release_year column missing; year metrics not applicable")
	default:
		m.Oldest, m.Years = years(v)
	}

	if v.Has(catalog.ColRating) {
		m.Ratings = ratings(v)
	} else {
		note("rating column missing; rating distribution not applicable")
	}

	if v.Has(catalog.ColListedIn) {
		m.TopGenres = top(v, (*catalog.Title).Genres, opt.TopGenres)
	}
	if p.ShowStats {
		if v.Has(catalog.ColCountry) {
			m.TopCountries = top(v, (*catalog.Title).Countries, opt.TopCountries)
		} else {
			note("country column missing; top countries not applicable")
		}
	}
	return m
}

func average(v filter.View, kind catalog.Kind) Average {
	a := Average{Label: "Average duration", Unit: "min"}
	switch kind {
	case catalog.KindMovie:
	case catalog.KindTVShow:
		a.Label, a.Unit = "Average seasons", "seasons"
	default:
		a.Unit = ""
		a.Status = NotApplicable
		return a
	}
	if !v.Has(catalog.ColDuration) {
		a.Status = NotApplicable
		return a
	}
	if v.Len() == 0 {
		a.Status = NoData
		return a
	}
	sum := 0
	for _, t := range v.Titles {
		n, ok := t.DurationValue()
		if !ok {
			continue
		}
		sum += n
		a.Samples++
	}
	if a.Samples == 0 {
		a.Status = NotApplicable
		return a
	}
	a.Value = float64(sum) / float64(a.Samples)
	return a
}

func years(v filter.View) (Year, []Bucket) {
	counts := map[int]int{}
	oldest := Year{Status: NoData}
	for _, t := range v.Titles {
		if !t.HasYear {
			continue
		}
		counts[t.ReleaseYear]++
		if oldest.Status != OK || t.ReleaseYear < oldest.Value {
			oldest = Year{Value: t.ReleaseYear}
		}
	}
	keys := make([]int, 0, len(counts))
	for y := range counts {
		keys = append(keys, y)
	}
	sort.Ints(keys)
	out := make([]Bucket, len(keys))
	for i, y := range keys {
		out[i] = Bucket{Label: strconv.Itoa(y), Count: counts[y]}
	}
	return oldest, out
}

func ratings(v filter.View) []Bucket {
	var out []Bucket
	pos := map[string]int{}
	for _, t := range v.Titles {
		r := t.Rating
		if r == "" {
			r = Unrated
		}
		i, ok := pos[r]
		if !ok {
			i = len(out)
			pos[r] = i
			out = append(out, Bucket{Label: r})
		}
		out[i].Count++
	}
	return out
}

// top counts split tokens case-insensitively, highest count first, ties in
// first-observed order. Labels keep the first-observed spelling.
func top(v filter.View, tokens func(*catalog.Title) []string, n int) []Bucket {
	var out []Bucket
	pos := map[string]int{}
	for _, t := range v.Titles {
		for _, tok := range tokens(t) {
			key := strings.ToLower(tok)
			i, ok := pos[key]
			if !ok {
				i = len(out)
				pos[key] = i
				out = append(out, Bucket{Label: tok})
			}
			out[i].Count++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
