package analysis

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Selector names one analysis routine, or all of them.
type Selector string

const (
	SelectAll       Selector = "all"
	SelectOverall   Selector = "overall"
	SelectKeywords  Selector = "keywords"
	SelectDominance Selector = "dominance"
	SelectGeo       Selector = "geo"
)

var _ pflag.Value = (*Selector)(nil)

// order is the fixed execution sequence of "all".
var order = []Selector{SelectOverall, SelectKeywords, SelectDominance, SelectGeo}

// ParseSelector validates s against the known selectors.
func ParseSelector(s string) (Selector, error) {
	v := Selector(strings.ToLower(strings.TrimSpace(s)))
	if v == SelectAll {
		return v, nil
	}
	for _, o := range order {
		if v == o {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid analysis %q (choose from %s)", s, strings.Join(Choices(), ", "))
}

// Choices lists every accepted selector value.
func Choices() []string {
	out := []string{string(SelectAll)}
	for _, o := range order {
		out = append(out, string(o))
	}
	return out
}

// Routines expands the selector into the routines it runs, in order.
func (s Selector) Routines() []Selector {
	if s == SelectAll || s == "" {
		return append([]Selector(nil), order...)
	}
	return []Selector{s}
}

// String implements pflag.Value.
func (s *Selector) String() string {
	if *s == "" {
		return string(SelectAll)
	}
	return string(*s)
}

// Set implements pflag.Value, rejecting unknown selectors at flag-parse time.
func (s *Selector) Set(v string) error {
	parsed, err := ParseSelector(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Selector) Type() string { return "analysis" }
