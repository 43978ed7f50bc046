package dataset

import (
	"errors"
	"fmt"
)

// ErrNoValues is returned when a column holds no non-null values to rank.
var ErrNoValues = errors.New("column has no non-null values")

// MissingFileError indicates an input path that does not exist.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// DataFormatError indicates a source whose columns or values cannot be interpreted.
// Row is 1-based and counts data rows only; 0 means the problem is not tied to a row.
type DataFormatError struct {
	Source string
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *DataFormatError) Error() string {
	msg := fmt.Sprintf("%s: column %q: %s", e.Source, e.Column, e.Reason)
	if e.Row > 0 {
		msg += fmt.Sprintf(" (row %d, value %q)", e.Row, e.Value)
	}
	return msg
}

// WriteError indicates an output destination that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
