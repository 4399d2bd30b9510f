package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
)

// All is the sentinel accepted for the kind, country and genre selectors.
const All = "All"

// KindAll disables the kind predicate.
const KindAll catalog.Kind = All

var (
	ErrInvalidYearRange = errors.New("year range low bound is greater than high bound")
	ErrUnknownKind      = errors.New("unknown title type")
)

// Params holds the user's filter selection. The zero value selects everything
// except that Kind must be set (use DefaultParams).
type Params struct {
	Kind      catalog.Kind      `json:"type" yaml:"type"`
	Years     catalog.YearRange `json:"years" yaml:"years"` // zero range means the dataset's full domain
	Countries []string          `json:"countries,omitempty" yaml:"countries,omitempty"`
	Genres    []string          `json:"genres,omitempty" yaml:"genres,omitempty"`
	Search    string            `json:"search,omitempty" yaml:"search,omitempty"`
	ShowStats bool              `json:"show_stats" yaml:"show_stats"`
}

// DefaultParams returns the unfiltered selection for ds: every kind, the full
// year domain, no country or genre restriction and an empty search.
func DefaultParams(ds *catalog.Dataset) Params {
	p := Params{Kind: KindAll}
	if ds != nil && ds.HasYears {
		p.Years = ds.YearDomain
	}
	return p
}

// ParseKind maps user input ("all", "movie", "tv", "TV Show", ...) to a kind selector.
func ParseKind(s string) (catalog.Kind, error) {
	t := strings.TrimSpace(s)
	if t == "" || strings.EqualFold(t, All) {
		return KindAll, nil
	}
	if k := catalog.ParseKind(t); k != catalog.KindUnknown {
		return k, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Validate rejects inverted year ranges and kinds other than All, Movie and TV Show.
func (p Params) Validate() error {
	switch p.Kind {
	case KindAll, catalog.KindMovie, catalog.KindTVShow:
	default:
		return fmt.Errorf("%q: %w", p.Kind, ErrUnknownKind)
	}
	if p.Years.Low > p.Years.High {
		return fmt.Errorf("%d > %d: %w", p.Years.Low, p.Years.High, ErrInvalidYearRange)
	}
	return nil
}

// Clone returns a copy whose slices do not alias p's.
func (p Params) Clone() Params {
	c := p
	c.Countries = append([]string(nil), p.Countries...)
	c.Genres = append([]string(nil), p.Genres...)
	return c
}

// selectsAll reports whether a multi-select list leaves its predicate disabled.
func selectsAll(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), All) {
			return true
		}
	}
	return false
}

// NormalizeList splits comma lists, trims and drops blanks, keeping first occurrences.
func NormalizeList(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, tok := range catalog.SplitList(v) {
			k := strings.ToLower(tok)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, tok)
		}
	}
	return out
}
