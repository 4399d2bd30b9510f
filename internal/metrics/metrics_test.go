package metrics

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"gopkg.in/yaml.v3"
)

var columns = []string{"title", "type", "release_year", "country", "rating", "duration", "listed_in"}

func scenario() *catalog.Dataset {
	return catalog.NewDataset("scenario", columns, []catalog.Title{
		{Title: "A", Kind: catalog.KindMovie, ReleaseYear: 2015, HasYear: true, Country: "US", Rating: "PG", Duration: "90 min", ListedIn: "Dramas"},
		{Title: "B", Kind: catalog.KindTVShow, ReleaseYear: 2020, HasYear: true, Country: "US,CA", Rating: "TV-MA", Duration: "3 Seasons", ListedIn: "Crime TV Shows, Dramas"},
	})
}

func mixed() *catalog.Dataset {
	return catalog.NewDataset("mixed", columns, []catalog.Title{
		{Title: "M1", Kind: catalog.KindMovie, ReleaseYear: 2019, HasYear: true, Country: "India", Rating: "TV-14", Duration: "100 min", ListedIn: "Comedies, Dramas"},
		{Title: "M2", Kind: catalog.KindMovie, ReleaseYear: 2001, HasYear: true, Country: "United States, India", Rating: "", Duration: "n/a", ListedIn: "Dramas"},
		{Title: "M3", Kind: catalog.KindMovie, ReleaseYear: 2019, HasYear: true, Country: "France", Rating: "TV-14", Duration: "81 min", ListedIn: "Horror Movies"},
		{Title: "S1", Kind: catalog.KindTVShow, ReleaseYear: 2021, HasYear: true, Country: "United States", Rating: "TV-MA", Duration: "1 Season", ListedIn: "Docuseries, Comedies"},
		{Title: "S2", Kind: catalog.KindTVShow, Country: "France", Rating: "TV-MA", Duration: "4 Seasons", ListedIn: "Comedies"},
	})
}

func run(ds *catalog.Dataset, p filter.Params) Metrics {
	return Summarize(filter.Apply(ds, p), p, DefaultOptions())
}

func TestScenarioMovie(t *testing.T) {
	ds := scenario()
	p := filter.DefaultParams(ds)
	p.Kind = catalog.KindMovie
	m := run(ds, p)
	if m.Total != 1 {
		t.Fatalf("total %d", m.Total)
	}
	if m.Average.Status != OK || m.Average.Value != 90.0 || m.Average.Label != "Average duration" {
		t.Fatalf("average %+v", m.Average)
	}
	if m.Oldest.Status != OK || m.Oldest.Value != 2015 {
		t.Fatalf("oldest %+v", m.Oldest)
	}
}

func TestScenarioEmptyView(t *testing.T) {
	ds := scenario()
	p := filter.DefaultParams(ds)
	p.Search = "z"
	m := run(ds, p)
	if m.Total != 0 || m.Oldest.Status != NoData || m.Oldest.String() != "no data" {
		t.Fatalf("unexpected %+v", m)
	}
	if len(m.Ratings) != 0 || len(m.Years) != 0 {
		t.Fatalf("empty view should have empty tables")
	}
}

func TestAverageByKind(t *testing.T) {
	ds := mixed()
	p := filter.DefaultParams(ds)

	p.Kind = filter.KindAll
	if a := run(ds, p).Average; a.Status != NotApplicable || a.String() != "not applicable" {
		t.Fatalf("All should be not applicable, got %+v", a)
	}

	p.Kind = catalog.KindMovie
	a := run(ds, p).Average
	if a.Status != OK || a.Samples != 2 || a.Value != 90.5 || a.String() != "90.5 min" {
		t.Fatalf("movie average %+v", a)
	}

	p.Kind = catalog.KindTVShow
	p.Years = catalog.YearRange{}
	a = run(ds, p).Average
	// S2 has no year and drops out of the default domain.
	if a.Status != OK || a.Label != "Average seasons" || a.Value != 1 || a.Unit != "seasons" {
		t.Fatalf("tv average %+v", a)
	}

	p.Kind = catalog.KindMovie
	p.Search = "M2"
	if a := run(ds, p).Average; a.Status != NotApplicable {
		t.Fatalf("unparseable durations should be not applicable, got %+v", a)
	}
}

func TestDistributions(t *testing.T) {
	ds := mixed()
	p := filter.DefaultParams(ds)
	p.ShowStats = true
	m := run(ds, p)

	sum := 0
	for _, b := range m.Ratings {
		sum += b.Count
	}
	if sum != m.Total {
		t.Fatalf("ratings sum %d != total %d", sum, m.Total)
	}
	wantRatings := []Bucket{{"TV-14", 2}, {Unrated, 1}, {"TV-MA", 1}}
	if len(m.Ratings) != len(wantRatings) {
		t.Fatalf("ratings %v", m.Ratings)
	}
	for i := range wantRatings {
		if m.Ratings[i] != wantRatings[i] {
			t.Fatalf("ratings %v want %v", m.Ratings, wantRatings)
		}
	}

	wantYears := []Bucket{{"2001", 1}, {"2019", 2}, {"2021", 1}}
	for i := range wantYears {
		if m.Years[i] != wantYears[i] {
			t.Fatalf("years %v want %v", m.Years, wantYears)
		}
	}

	if g, ok := m.MostFrequentGenre(); !ok || g != "Comedies" {
		t.Fatalf("most frequent genre %q", g)
	}
	// Comedies 2 and Dramas 2 tie; Comedies was seen first.
	if m.TopGenres[1].Label != "Dramas" || m.TopGenres[1].Count != 2 {
		t.Fatalf("top genres %v", m.TopGenres)
	}
	// India 2 and United States 2 tie; India was seen first.
	if len(m.TopCountries) != 3 || m.TopCountries[0] != (Bucket{"India", 2}) || m.TopCountries[1] != (Bucket{"United States", 2}) {
		t.Fatalf("top countries %v", m.TopCountries)
	}

	p.ShowStats = false
	if m := run(ds, p); m.TopCountries != nil {
		t.Fatalf("top countries require ShowStats")
	}
}

func TestTopLimits(t *testing.T) {
	ds := mixed()
	p := filter.DefaultParams(ds)
	p.ShowStats = true
	m := Summarize(filter.Apply(ds, p), p, Options{TopCountries: 1, TopGenres: 2})
	if len(m.TopCountries) != 1 || len(m.TopGenres) != 2 {
		t.Fatalf("limits not applied: %v %v", m.TopCountries, m.TopGenres)
	}
}

func TestMissingColumns(t *testing.T) {
	ds := catalog.NewDataset("bare", []string{"title", "type"}, []catalog.Title{
		{Title: "A", Kind: catalog.KindMovie},
	})
	p := filter.Params{Kind: catalog.KindMovie, ShowStats: true}
	m := run(ds, p)
	if m.Total != 1 || m.Average.Status != NotApplicable || m.Oldest.Status != NotApplicable {
		t.Fatalf("unexpected %+v", m)
	}
	if m.Ratings != nil || m.TopGenres != nil || m.TopCountries != nil {
		t.Fatalf("tables for missing columns must be empty")
	}
	if len(m.Notes) != 4 {
		t.Fatalf("expected four notes, got %v", m.Notes)
	}
}

func TestRenderings(t *testing.T) {
	ds := scenario()
	p := filter.DefaultParams(ds)
	p.Kind = catalog.KindMovie
	m := run(ds, p)

	md := m.Markdown()
	for _, want := range []string{"[SUMMARY]", "Titles: 1", "Average duration: 90.0 min", "Oldest release year: 2015", "[RATINGS]", "- PG: 1", "[RELEASE YEARS]", "- 2015: 1"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "[TOP COUNTRIES]") {
		t.Fatalf("top countries rendered without ShowStats")
	}

	js, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(js), `"status":"ok"`) || !strings.Contains(string(js), `"total":1`) {
		t.Fatalf("unexpected json %s", js)
	}
	y, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(y), "oldest_release_year:") {
		t.Fatalf("unexpected yaml %s", y)
	}
}

func TestEmptyDatasetIsNoData(t *testing.T) {
	ds := catalog.Empty("missing.csv")
	m := run(ds, filter.DefaultParams(ds))
	if m.Total != 0 || m.Average.Status != NoData || m.Oldest.Status != NoData || len(m.Notes) != 0 {
		t.Fatalf("unexpected %+v", m)
	}
}

func TestTopFoldsCase(t *testing.T) {
	ds := catalog.NewDataset("case", columns, []catalog.Title{
		{Title: "A", Kind: catalog.KindMovie, ReleaseYear: 2020, HasYear: true, Country: "United States", ListedIn: "Dramas"},
		{Title: "B", Kind: catalog.KindMovie, ReleaseYear: 2020, HasYear: true, Country: "united states, India", ListedIn: "dramas, Comedies"},
		{Title: "C", Kind: catalog.KindMovie, ReleaseYear: 2020, HasYear: true, Country: "India", ListedIn: "Comedies"},
		{Title: "D", Kind: catalog.KindMovie, ReleaseYear: 2020, HasYear: true, Country: "UNITED STATES", ListedIn: "DRAMAS"},
	})
	p := filter.DefaultParams(ds)
	p.ShowStats = true
	m := run(ds, p)
	wantCountries := []Bucket{{Label: "United States", Count: 3}, {Label: "India", Count: 2}}
	if !reflect.DeepEqual(m.TopCountries, wantCountries) {
		t.Fatalf("top countries %v, want %v", m.TopCountries, wantCountries)
	}
	wantGenres := []Bucket{{Label: "Dramas", Count: 3}, {Label: "Comedies", Count: 2}}
	if !reflect.DeepEqual(m.TopGenres, wantGenres) {
		t.Fatalf("top genres %v, want %v", m.TopGenres, wantGenres)
	}
	if g, _ := m.MostFrequentGenre(); g != "Dramas" {
		t.Fatalf("most frequent genre %q", g)
	}
}
