package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceReader loads the raw records of a tabular file, header first.
type SourceReader interface {
	CanRead(path string) bool
	ReadRecords(path string) ([][]string, error)
}

var readers []SourceReader

// RegisterReader adds a reader ahead of the CSV fallback.
func RegisterReader(r SourceReader) {
	readers = append(readers, r)
}

func init() {
	RegisterReader(delimitedReader{ext: ".tsv", comma: '\t'})
	RegisterReader(delimitedReader{ext: ".csv", comma: ','})
	RegisterReader(xlsxReader{})
}

// Read loads a tabular file, choosing a reader by extension and falling back
// to comma-separated text.
func Read(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	var reader SourceReader = delimitedReader{comma: ','}
	for _, r := range readers {
		if r.CanRead(path) {
			reader = r
			break
		}
	}
	records, err := reader.ReadRecords(path)
	if err != nil {
		return nil, err
	}
	t := newTable(filepath.Base(path), records)
	if len(t.Header) == 0 {
		return nil, &DataFormatError{Source: t.Name, Reason: "no header row"}
	}
	return t, nil
}

type delimitedReader struct {
	ext   string
	comma rune
}

func (d delimitedReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), d.ext)
}

func (d delimitedReader) ReadRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = d.comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &DataFormatError{Source: filepath.Base(path), Row: perr.Line, Reason: perr.Err.Error()}
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

// xlsxReader reads the first worksheet of a workbook.
type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxReader) ReadRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DataFormatError{Source: filepath.Base(path), Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
