package catalog

import (
	"path/filepath"
	"strings"
)

// Options controls how a catalog file is read.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the extension (',' or '\t').
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet used when SheetName is empty.
	SheetIndex int
}

// RowReader yields raw table rows, header first. Next returns io.EOF when exhausted.
type RowReader interface {
	Next() ([]string, error)
	Close() error
}

// Source opens a table format.
type Source interface {
	CanRead(filename string) bool
	Open(path string, opt Options) (RowReader, error)
}

var registry []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

// sourceFor selects a source based on filename, falling back to delimited text.
func sourceFor(path string) Source {
	for _, s := range registry {
		if s.CanRead(path) {
			return s
		}
	}
	return delimitedSource{}
}

func init() {
	Register(xlsxSource{})
	Register(delimitedSource{})
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
