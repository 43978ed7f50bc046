package dataset

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the canonical on-disk form of a month key.
const MonthLayout = "2006-01-02"

// ParseMonth accepts "YYYY-MM" or a first-of-month "YYYY-MM-DD" and returns
// the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a year-month: %q", s)
	}
	if t.Day() != 1 {
		return time.Time{}, fmt.Errorf("not the first day of a month: %q", s)
	}
	return t, nil
}

// FormatMonth renders t in the canonical month layout.
func FormatMonth(t time.Time) string { return t.Format(MonthLayout) }
