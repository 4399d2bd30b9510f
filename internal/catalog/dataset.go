package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// YearRange is an inclusive range of release years.
type YearRange struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// IsZero reports whether the range was left unset.
func (r YearRange) IsZero() bool { return r.Low == 0 && r.High == 0 }

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool { return year >= r.Low && year <= r.High }

// Dataset is the loaded catalog. It is never mutated after load.
type Dataset struct {
	Name    string
	Columns []string // header in source order, lower-cased
	Titles  []Title

	// YearDomain spans the observed release years; valid only when HasYears is true.
	YearDomain YearRange
	HasYears   bool

	// Warnings collected while loading (normalisations, skipped values).
	Warnings []string

	columns map[string]bool
}

// Empty returns a well-typed dataset with no rows or columns.
func Empty(name string) *Dataset {
	return &Dataset{Name: name, columns: map[string]bool{}}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Titles)
}

// Has reports whether the source carried the named column.
func (d *Dataset) Has(column string) bool {
	if d == nil {
		return false
	}
	return d.columns[strings.ToLower(column)]
}

// All returns pointers to every record in source order.
func (d *Dataset) All() []*Title {
	if d == nil {
		return nil
	}
	out := make([]*Title, len(d.Titles))
	for i := range d.Titles {
		out[i] = &d.Titles[i]
	}
	return out
}

// ByID returns the record with the given id.
func (d *Dataset) ByID(id ID) (*Title, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Titles {
		if d.Titles[i].ID == id {
			return &d.Titles[i], true
		}
	}
	return nil, false
}

// NewDataset builds a dataset from in-memory records, assigning ids and row
// positions where they are missing. Column names are lower-cased.
func NewDataset(name string, columns []string, titles []Title) *Dataset {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.ToLower(strings.TrimSpace(c))
	}
	ts := append([]Title(nil), titles...)
	for i := range ts {
		if ts[i].ID == "" {
			ts[i].ID = ID(uuid.NewString())
		}
		ts[i].Row = i
	}
	return newDataset(name, cols, ts)
}

func newDataset(name string, columns []string, titles []Title) *Dataset {
	d := &Dataset{Name: name, Columns: columns, Titles: titles, columns: make(map[string]bool, len(columns))}
	for _, c := range columns {
		d.columns[c] = true
	}
	for i := range titles {
		t := &titles[i]
		if !t.HasYear {
			continue
		}
		if !d.HasYears {
			d.YearDomain = YearRange{Low: t.ReleaseYear, High: t.ReleaseYear}
			d.HasYears = true
			continue
		}
		if t.ReleaseYear < d.YearDomain.Low {
			d.YearDomain.Low = t.ReleaseYear
		}
		if t.ReleaseYear > d.YearDomain.High {
			d.YearDomain.High = t.ReleaseYear
		}
	}
	return d
}
