package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/KaramelBytes/trendloom-cli/internal/utils"
)

// Table is an untyped tabular dataset. An empty cell is null.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// MapColumn rewrites every cell of the named column through fn. The first
// failing cell aborts with a DataFormatError and leaves the table unchanged.
func (t *Table) MapColumn(name string, fn func(string) (string, error)) error {
	idx := t.Index(name)
	if idx < 0 {
		return &DataFormatError{Source: t.Name, Column: name, Reason: "column not found"}
	}
	mapped := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		v, err := fn(row[idx])
		if err != nil {
			return &DataFormatError{Source: t.Name, Column: name, Row: i + 1, Value: row[idx], Reason: err.Error()}
		}
		mapped[i] = v
	}
	for i, row := range t.Rows {
		row[idx] = mapped[i]
	}
	return nil
}

// Encode renders the table as CSV with a header row.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("write rows: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV atomically replaces path with the table's CSV encoding.
func WriteCSV(path string, t *Table) error {
	b, err := t.Encode()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func newTable(name string, records [][]string) *Table {
	t := &Table{Name: name}
	if len(records) == 0 {
		return t
	}
	t.Header = make([]string, len(records[0]))
	for i, h := range records[0] {
		t.Header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	ncol := len(t.Header)
	t.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, ncol)
		for j := 0; j < ncol && j < len(rec); j++ {
			row[j] = strings.TrimSpace(rec[j])
		}
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
