package catalog

import (
	"strconv"
	"strings"
)

// ID is the synthetic key assigned to every record at load time.
// It is stable for the lifetime of one load only.
type ID string

// Kind distinguishes movies from TV shows.
type Kind string

const (
	KindUnknown Kind = ""
	KindMovie   Kind = "Movie"
	KindTVShow  Kind = "TV Show"
)

// ParseKind maps the spellings seen in catalog exports onto a Kind.
func ParseKind(s string) Kind {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "movie", "movies", "film":
		return KindMovie
	case "tvshow", "tvshows", "tv", "show", "series":
		return KindTVShow
	default:
		return KindUnknown
	}
}

// Column names recognised in the source header.
const (
	ColTitle       = "title"
	ColType        = "type"
	ColReleaseYear = "release_year"
	ColCountry     = "country"
	ColRating      = "rating"
	ColDuration    = "duration"
	ColListedIn    = "listed_in"
	ColDescription = "description"
	ColCast        = "cast"
	ColDirector    = "director"
)

// UnknownCountry is the country given to every record when the source has no country column.
const UnknownCountry = "Unknown"

// Title is one catalog entry.
type Title struct {
	ID          ID     `json:"id" yaml:"id"`
	Row         int    `json:"row" yaml:"row"` // 0-based position in the source
	Title       string `json:"title" yaml:"title"`
	Kind        Kind   `json:"type" yaml:"type"`
	ReleaseYear int    `json:"release_year,omitempty" yaml:"release_year,omitempty"`
	HasYear     bool   `json:"-" yaml:"-"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Rating      string `json:"rating,omitempty" yaml:"rating,omitempty"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	ListedIn    string `json:"listed_in,omitempty" yaml:"listed_in,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Cast        string `json:"cast,omitempty" yaml:"cast,omitempty"`
	Director    string `json:"director,omitempty" yaml:"director,omitempty"`

	// Extra holds source columns the catalog does not interpret (show_id, date_added, ...).
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// raw kind and year text, kept so export writes back what was read
	rawKind string
	rawYear string
}

// Countries returns the trimmed, non-empty country tokens of a comma separated field.
func (t *Title) Countries() []string { return SplitList(t.Country) }

// Genres returns the trimmed, non-empty genre tokens of listed_in.
func (t *Title) Genres() []string { return SplitList(t.ListedIn) }

// DurationValue extracts the leading integer of the duration field:
// minutes for movies ("90 min"), seasons for shows ("3 Seasons").
func (t *Title) DurationValue() (int, bool) {
	return LeadingInt(t.Duration)
}

// Value returns the text of a column for display or export.
func (t *Title) Value(column string) string {
	switch strings.ToLower(column) {
	case ColTitle:
		return t.Title
	case ColType:
		if t.rawKind != "" {
			return t.rawKind
		}
		return string(t.Kind)
	case ColReleaseYear:
		if t.rawYear != "" {
			return t.rawYear
		}
		if !t.HasYear {
			return ""
		}
		return strconv.Itoa(t.ReleaseYear)
	case ColCountry:
		return t.Country
	case ColRating:
		return t.Rating
	case ColDuration:
		return t.Duration
	case ColListedIn:
		return t.ListedIn
	case ColDescription:
		return t.Description
	case ColCast:
		return t.Cast
	case ColDirector:
		return t.Director
	}
	// a source id column wins over the synthetic key
	if v, ok := t.Extra[strings.ToLower(column)]; ok {
		return v
	}
	if strings.EqualFold(column, "id") {
		return string(t.ID)
	}
	return ""
}

// SplitList splits a comma separated field into trimmed, non-empty tokens.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LeadingInt parses the integer prefix of s, ignoring leading spaces.
// "90 min" -> 90, "3 Seasons" -> 3, "min" -> false.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
