package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for loading a catalog.
var (
	// ErrFileNotFound indicates the source path does not exist.
	ErrFileNotFound = errors.New("catalog file not found")

	// ErrParse indicates the source could not be read as a table.
	ErrParse = errors.New("catalog could not be parsed")

	// ErrInvalidDataset indicates the table carries none of the catalog columns.
	// Nothing downstream can work with it.
	ErrInvalidDataset = errors.New("catalog has no title, type or release_year column")
)

// LoadErrorKind classifies recoverable load failures.
type LoadErrorKind int

const (
	FileNotFound LoadErrorKind = iota
	ParseError
)

func (k LoadErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case ParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// LoadError reports a failed load together with the path and cause.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrFileNotFound:
		return e.Kind == FileNotFound
	case ErrParse:
		return e.Kind == ParseError
	}
	return false
}
