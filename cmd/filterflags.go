package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/dashboard"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/metrics"
	"github.com/KaramelBytes/catalogdash/internal/utils"
	"github.com/spf13/cobra"
)

// filterFlags are shared by every command that reads the catalog.
type filterFlags struct {
	kind      string
	yearFrom  int
	yearTo    int
	countries []string
	genres    []string
	search    string
	stats     bool
}

var dataFlags filterFlags

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.kind, "type", "all", "title type: all|movie|tv")
	fs.IntVar(&f.yearFrom, "year-from", 0, "earliest release year, any value including 0 when given (default: oldest in catalog)")
	fs.IntVar(&f.yearTo, "year-to", 0, "latest release year, any value including 0 when given (default: newest in catalog)")
	fs.StringSliceVar(&f.countries, "country", nil, "country to include (repeatable or comma separated; All = no filter)")
	fs.StringSliceVar(&f.genres, "genre", nil, "genre to include (repeatable or comma separated; All = no filter)")
	fs.StringVar(&f.search, "search", "", "case-insensitive substring of the title")
	fs.BoolVar(&f.stats, "stats", false, "include extended statistics (top countries)")
}

// params turns the flags into filter parameters for ds. Year bounds not given on
// the command line take the catalog's oldest and newest year; a range of exactly
// 0..0 is the unfiltered range.
func (f *filterFlags) params(cmd *cobra.Command, ds *catalog.Dataset) (filter.Params, error) {
	fromSet, toSet := cmd.Flags().Changed("year-from"), cmd.Flags().Changed("year-to")
	p := filter.DefaultParams(ds)
	k, err := filter.ParseKind(f.kind)
	if err != nil {
		return p, fmt.Errorf("invalid --type: %w", err)
	}
	p.Kind = k
	if fromSet || toSet {
		r := p.Years
		if r.IsZero() {
			r = catalog.YearRange{Low: math.MinInt32, High: math.MaxInt32}
		}
		if fromSet {
			r.Low = f.yearFrom
		}
		if toSet {
			r.High = f.yearTo
		}
		p.Years = r
	}
	p.Countries = filter.NormalizeList(f.countries)
	p.Genres = filter.NormalizeList(f.genres)
	p.Search = f.search
	p.ShowStats = f.stats
	return p, p.Validate()
}

// openSession loads the configured catalog. Missing or unreadable files yield an
// empty session plus a warning; a file with none of the catalog columns is an error.
func openSession(stderr io.Writer) (*dashboard.Session, string, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, "", err
	}
	path := dataPath
	if path == "" {
		path = utils.FindDataFile(c.DataPath, "")
	}
	loader := catalog.NewLoader(catalog.Options{Delimiter: c.DelimiterRune(), SheetName: c.SheetName}, logger)
	ds, err := loader.LoadOrEmpty(path)
	notice := ""
	if err != nil {
		if ds == nil {
			return nil, "", err
		}
		notice = fmt.Sprintf("no data: %v", err)
		fmt.Fprintf(stderr, "⚠ Warning: %s\n", notice)
	}
	for _, w := range ds.Warnings {
		fmt.Fprintf(stderr, "⚠ Warning: %s\n", w)
	}
	opt := metrics.Options{TopCountries: c.TopCountries, TopGenres: c.TopGenres}
	return dashboard.NewSession(ds, opt, logger), notice, nil
}

// evaluate loads the catalog and applies the command's filter flags.
func evaluate(cmd *cobra.Command) (*dashboard.Session, dashboard.Result, error) {
	s, _, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return nil, dashboard.Result{}, err
	}
	p, err := dataFlags.params(cmd, s.Dataset())
	if err != nil {
		return nil, dashboard.Result{}, err
	}
	r, err := s.Evaluate(p)
	if err != nil {
		return nil, dashboard.Result{}, err
	}
	printWarnings(cmd.ErrOrStderr(), r.Warnings)
	return s, r, nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "⚠ Warning: %s\n", msg)
	}
}
