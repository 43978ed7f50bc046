package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// nullTokens are the cell values read as null when loading a processed table.
var nullTokens = []string{"", "NA", "NaN", "<nil>", "null"}

// LoadFrame reads a processed CSV table. Columns listed in types are parsed
// with that type; the rest are inferred.
func LoadFrame(path string, types map[string]series.Type) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, &MissingFileError{Path: path, Err: err}
		}
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithTypes(types),
		dataframe.NaNValues(nullTokens),
	)
	if df.Err != nil {
		return df, &DataFormatError{Source: filepath.Base(path), Reason: df.Err.Error()}
	}
	return df, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func requireColumns(source string, df dataframe.DataFrame, names ...string) error {
	for _, n := range names {
		if !hasColumn(df, n) {
			return &DataFormatError{Source: source, Column: n, Reason: "column not found"}
		}
	}
	return nil
}
