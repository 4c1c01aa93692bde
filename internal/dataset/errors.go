package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is returned when the dataset file cannot be read or lacks a
	// required column.
	ErrLoad = errors.New("dataset: load failed")
	// ErrParse is returned when a cell cannot be converted to its column type.
	ErrParse = errors.New("dataset: parse failed")
)

// ParseError locates an unparseable cell. Line is the 1-based line in the
// source file, header included.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func loadErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLoad, fmt.Sprintf(format, args...))
}
