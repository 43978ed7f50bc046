// Package quality runs observational checks on a loaded table: null cells,
// duplicate rows and a column/type summary. Checks never fail.
package quality

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/olekukonko/tablewriter"
)

// Column describes one column of an inspected table.
type Column struct {
	Name    string
	Type    string
	NonNull int
}

// Report is the outcome of Inspect.
type Report struct {
	Name       string
	Rows       int
	Nulls      int
	Duplicates int
	Columns    []Column
}

// Inspect counts null cells and fully duplicated rows of df.
func Inspect(name string, df dataframe.DataFrame) Report {
	rep := Report{Name: name}
	if df.Err != nil {
		return rep
	}
	rep.Rows = df.Nrow()
	types := df.Types()
	for i, col := range df.Names() {
		nulls := 0
		for _, isNaN := range df.Col(col).IsNaN() {
			if isNaN {
				nulls++
			}
		}
		rep.Nulls += nulls
		rep.Columns = append(rep.Columns, Column{Name: col, Type: string(types[i]), NonNull: rep.Rows - nulls})
	}
	rep.Duplicates = countDuplicates(df.Records())
	return rep
}

// countDuplicates counts rows equal to an earlier row. records[0] is the header.
func countDuplicates(records [][]string) int {
	if len(records) < 2 {
		return 0
	}
	seen := make(map[string]struct{}, len(records)-1)
	dups := 0
	for _, rec := range records[1:] {
		k := strings.Join(rec, "\x1f")
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

// Log writes the report as log lines. Non-zero counts are warnings.
func Log(logger *slog.Logger, rep Report) {
	logger.Info("Performing data quality checks", slog.String("table", rep.Name), slog.Int("rows", rep.Rows), slog.Int("columns", len(rep.Columns)))
	if rep.Nulls > 0 {
		logger.Warn(fmt.Sprintf("Found %d missing values", rep.Nulls), slog.String("table", rep.Name))
	} else {
		logger.Info("No missing values found", slog.String("table", rep.Name))
	}
	if rep.Duplicates > 0 {
		logger.Warn(fmt.Sprintf("Found %d duplicate rows", rep.Duplicates), slog.String("table", rep.Name))
	} else {
		logger.Info("No duplicate rows found", slog.String("table", rep.Name))
	}
	for _, c := range rep.Columns {
		logger.Debug("Column", slog.String("name", c.Name), slog.String("type", c.Type), slog.Int("non_null", c.NonNull))
	}
}

// Render prints the column summary as a table.
func Render(w io.Writer, rep Report) {
	fmt.Fprintf(w, "%s: %d rows, %d columns\n", rep.Name, rep.Rows, len(rep.Columns))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Column", "Non-Null", "Type"})
	table.SetAutoFormatHeaders(false)
	for i, c := range rep.Columns {
		table.Append([]string{fmt.Sprint(i), c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Type})
	}
	table.Render()
}
