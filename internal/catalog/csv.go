package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

type delimitedSource struct{}

func (delimitedSource) CanRead(filename string) bool {
	return hasExt(filename, ".csv", ".tsv", ".txt")
}

func (delimitedSource) Open(path string, opt Options) (RowReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = delim != '\t'
	r.Comma = delim
	return &csvRows{f: f, r: r}, nil
}

type csvRows struct {
	f *os.File
	r *csv.Reader
}

func (c *csvRows) Next() ([]string, error) { return c.r.Read() }
func (c *csvRows) Close() error            { return c.f.Close() }

func sniffDelimiter(path string) rune {
	if hasExt(path, ".tsv") {
		return '\t'
	}
	// Filename heuristic only; avoids reading the file twice.
	return ','
}

// WriteCSV serialises titles as comma separated values with a header row and no index column.
// Columns default to the order the dataset was read in.
func WriteCSV(w io.Writer, titles []*Title, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(columns))
	for i, t := range titles {
		for j, c := range columns {
			row[j] = t.Value(c)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// cleanHeader lower-cases and trims header names, dropping a UTF-8 BOM.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}
