package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Loader reads catalog files and memoises the result per path for the life of the process.
// Failed loads are not cached.
type Loader struct {
	opt    Options
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*Dataset
}

// NewLoader creates a loader. A nil logger falls back to slog.Default().
func NewLoader(opt Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{opt: opt, logger: logger, cache: make(map[string]*Dataset)}
}

// Load returns the dataset at path, reading it on first use only.
//
// Failures are *LoadError values matching ErrFileNotFound or ErrParse, or
// ErrInvalidDataset when the header has none of the catalog columns.
func (l *Loader) Load(path string) (*Dataset, error) {
	key := cacheKey(path)

	l.mu.Lock()
	defer l.mu.Unlock()
	if ds, ok := l.cache[key]; ok {
		return ds, nil
	}
	ds, err := read(path, l.opt)
	if err != nil {
		return nil, err
	}
	for _, w := range ds.Warnings {
		l.logger.Warn("catalog load", "path", path, "warning", w)
	}
	l.logger.Debug("catalog loaded", "path", path, "rows", ds.Len(), "columns", len(ds.Columns))
	l.cache[key] = ds
	return ds, nil
}

// LoadOrEmpty behaves like Load but turns recoverable failures into an empty dataset,
// returned alongside the error so callers can show it. ErrInvalidDataset yields a nil dataset.
func (l *Loader) LoadOrEmpty(path string) (*Dataset, error) {
	ds, err := l.Load(path)
	if err == nil {
		return ds, nil
	}
	if errors.Is(err, ErrInvalidDataset) {
		return nil, err
	}
	l.logger.Warn("catalog unavailable, continuing with empty dataset", "path", path, "error", err)
	return Empty(filepath.Base(path)), err
}

// Reload forgets the cached dataset for path; the next Load reads it again.
func (l *Loader) Reload(path string) {
	l.mu.Lock()
	delete(l.cache, cacheKey(path))
	l.mu.Unlock()
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func read(path string, opt Options) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Kind: FileNotFound, Path: path, Err: err}
		}
		return nil, &LoadError{Kind: ParseError, Path: path, Err: err}
	}
	rr, err := sourceFor(path).Open(path, opt)
	if err != nil {
		return nil, &LoadError{Kind: ParseError, Path: path, Err: err}
	}
	defer rr.Close()

	name := filepath.Base(path)
	raw, err := rr.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Kind: ParseError, Path: path, Err: errors.New("no header row")}
		}
		return nil, &LoadError{Kind: ParseError, Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	header := cleanHeader(raw)
	index := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		index[h] = i
	}
	_, hasTitle := index[ColTitle]
	_, hasType := index[ColType]
	_, hasYear := index[ColReleaseYear]
	if !hasTitle && !hasType && !hasYear {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidDataset)
	}

	columns := make([]string, 0, len(header)+1)
	for _, h := range header {
		if h != "" {
			columns = append(columns, h)
		}
	}
	var warnings []string
	_, hasCountry := index[ColCountry]
	if !hasCountry {
		columns = append(columns, ColCountry)
		warnings = append(warnings, fmt.Sprintf("country column missing; every title set to %q", UnknownCountry))
	}
	if !hasYear {
		warnings = append(warnings, "release_year column missing; year filter and year metrics disabled")
	}

	var titles []Title
	badYears := 0
	for {
		rec, err := rr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Kind: ParseError, Path: path, Err: fmt.Errorf("read row %d: %w", len(titles)+1, err)}
		}
		t := buildTitle(rec, header, index)
		t.Row = len(titles)
		if !hasCountry {
			t.Country = UnknownCountry
		}
		if hasYear && !t.HasYear && strings.TrimSpace(field(rec, index, ColReleaseYear)) != "" {
			badYears++
		}
		titles = append(titles, t)
	}
	if badYears > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows have an unreadable release_year", badYears))
	}

	ds := newDataset(name, columns, titles)
	ds.Warnings = warnings
	return ds, nil
}

func field(rec []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func buildTitle(rec []string, header []string, index map[string]int) Title {
	t := Title{
		ID:          ID(uuid.NewString()),
		Title:       field(rec, index, ColTitle),
		Country:     field(rec, index, ColCountry),
		Rating:      field(rec, index, ColRating),
		Duration:    field(rec, index, ColDuration),
		ListedIn:    field(rec, index, ColListedIn),
		Description: field(rec, index, ColDescription),
		Cast:        field(rec, index, ColCast),
		Director:    field(rec, index, ColDirector),
	}
	t.rawKind = field(rec, index, ColType)
	t.Kind = ParseKind(t.rawKind)
	t.rawYear = field(rec, index, ColReleaseYear)
	if y, ok := parseYear(t.rawYear); ok {
		t.ReleaseYear = y
		t.HasYear = true
	}
	for i, h := range header {
		if h == "" || known[h] || i >= len(rec) {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]string)
		}
		t.Extra[h] = strings.TrimSpace(rec[i])
	}
	return t
}

var known = map[string]bool{
	ColTitle: true, ColType: true, ColReleaseYear: true, ColCountry: true, ColRating: true,
	ColDuration: true, ColListedIn: true, ColDescription: true, ColCast: true, ColDirector: true,
}

// parseYear accepts "2019" and spreadsheet-style "2019.0".
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
