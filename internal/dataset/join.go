package dataset

import (
	"sort"
	"strings"
)

// Canonical key column names.
const (
	ColMonth   = "month"
	ColCountry = "country"
)

// Aliases maps a canonical column name to the source names accepted for it.
// Matching ignores case and surrounding whitespace.
type Aliases map[string][]string

// DefaultAliases returns the accepted spellings of the join key columns.
func DefaultAliases() Aliases {
	return Aliases{
		ColMonth:   {"month", "Month"},
		ColCountry: {"country", "Country", "COUNTRY", "country_name", "Country Name"},
	}
}

// Canonicalize renames the first header matching one of canonical's aliases
// to canonical. It fails when no header matches.
func (t *Table) Canonicalize(canonical string, aliases Aliases) error {
	if t.Index(canonical) >= 0 {
		return nil
	}
	names := append([]string{canonical}, aliases[canonical]...)
	for i, h := range t.Header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				t.Header[i] = canonical
				return nil
			}
		}
	}
	return &DataFormatError{
		Source: t.Name,
		Column: canonical,
		Reason: "no column matches any accepted name (" + strings.Join(names, ", ") + ")",
	}
}

// JoinStats reports rows dropped because their key repeated within one side.
type JoinStats struct {
	LeftDuplicates  int
	RightDuplicates int
}

// OuterJoin merges left and right on key, keeping every key from either side.
// Output rows are sorted by key. Within one side the first row for a key wins.
// Non-key columns present on both sides are suffixed _x (left) and _y (right).
func OuterJoin(left, right *Table, key string) (*Table, JoinStats, error) {
	var stats JoinStats
	li, ri := left.Index(key), right.Index(key)
	if li < 0 {
		return nil, stats, &DataFormatError{Source: left.Name, Column: key, Reason: "join key not found"}
	}
	if ri < 0 {
		return nil, stats, &DataFormatError{Source: right.Name, Column: key, Reason: "join key not found"}
	}

	leftIdx, rightIdx := valueColumns(left.Header, li), valueColumns(right.Header, ri)
	rightNames := map[string]bool{}
	for _, j := range rightIdx {
		rightNames[right.Header[j]] = true
	}
	leftNames := map[string]bool{}
	for _, j := range leftIdx {
		leftNames[left.Header[j]] = true
	}
	header := []string{key}
	for _, j := range leftIdx {
		name := left.Header[j]
		if rightNames[name] {
			name += "_x"
		}
		header = append(header, name)
	}
	for _, j := range rightIdx {
		name := right.Header[j]
		if leftNames[name] {
			name += "_y"
		}
		header = append(header, name)
	}

	lrows, dups, err := indexByKey(left, li)
	if err != nil {
		return nil, stats, err
	}
	stats.LeftDuplicates = dups
	rrows, dups, err := indexByKey(right, ri)
	if err != nil {
		return nil, stats, err
	}
	stats.RightDuplicates = dups

	keys := make([]string, 0, len(lrows)+len(rrows))
	for k := range lrows {
		keys = append(keys, k)
	}
	for k := range rrows {
		if _, ok := lrows[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := &Table{Name: left.Name + "+" + right.Name, Header: header, Rows: make([][]string, 0, len(keys))}
	for _, k := range keys {
		row := make([]string, 0, len(header))
		row = append(row, k)
		row = appendCells(row, lrows[k], leftIdx)
		row = appendCells(row, rrows[k], rightIdx)
		out.Rows = append(out.Rows, row)
	}
	return out, stats, nil
}

func valueColumns(header []string, key int) []int {
	idx := make([]int, 0, len(header))
	for i := range header {
		if i != key {
			idx = append(idx, i)
		}
	}
	return idx
}

func indexByKey(t *Table, key int) (map[string][]string, int, error) {
	rows := make(map[string][]string, len(t.Rows))
	dups := 0
	for i, row := range t.Rows {
		k := row[key]
		if k == "" {
			return nil, 0, &DataFormatError{Source: t.Name, Column: t.Header[key], Row: i + 1, Reason: "empty join key"}
		}
		if _, ok := rows[k]; ok {
			dups++
			continue
		}
		rows[k] = row
	}
	return rows, dups, nil
}

// appendCells copies the selected cells of row, or nulls when row is nil.
func appendCells(dst, row []string, idx []int) []string {
	for _, j := range idx {
		if row == nil {
			dst = append(dst, "")
			continue
		}
		dst = append(dst, row[j])
	}
	return dst
}
