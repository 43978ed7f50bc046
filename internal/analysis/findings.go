package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// Findings collects the results of one analysis run. Routines that were not
// selected leave their field nil.
type Findings struct {
	Overall   *OverallFinding
	Keywords  *KeywordFinding
	Dominance *DominanceFinding
	Geo       *GeoFinding
}

// Markdown renders a compact summary with one [FINDINGS] block per routine.
func (f *Findings) Markdown() string {
	var b strings.Builder
	if o := f.Overall; o != nil {
		b.WriteString("[FINDINGS] overall\n")
		b.WriteString(fmt.Sprintf("- Peak year for 'workout': %d (%s, value %s)\n", o.PeakYear, dataset.FormatMonth(o.PeakMonth), fmtValue(o.PeakValue)))
		writeChart(&b, o.Chart)
	}
	if k := f.Keywords; k != nil {
		b.WriteString("[FINDINGS] keywords\n")
		b.WriteString(fmt.Sprintf("- Window %s to %s leader: %s (peak %s)\n",
			dataset.FormatMonth(k.WindowStart), dataset.FormatMonth(k.WindowEnd), k.WindowLeader, fmtValue(k.WindowPeak)))
		b.WriteString(fmt.Sprintf("- Latest month %s leader: %s (value %s)\n",
			k.LatestMonth.Format("January 2006"), k.LatestLeader, fmtValue(k.LatestValue)))
		writeChart(&b, k.Chart)
	}
	if d := f.Dominance; d != nil {
		b.WriteString("[FINDINGS] dominance\n")
		b.WriteString(fmt.Sprintf("- Home dominance peaked in %s (difference %s)\n", d.HomePeak.Format("January 2006"), fmtValue(d.HomePeakDiff)))
		b.WriteString(fmt.Sprintf("- Gym dominance peaked in %s (difference %s)\n", d.GymPeak.Format("January 2006"), fmtValue(d.GymPeakDiff)))
		writeChart(&b, d.Chart)
	}
	if g := f.Geo; g != nil {
		b.WriteString("[FINDINGS] geo\n")
		b.WriteString(fmt.Sprintf("- Highest 'workout' interest: %s (%s)\n", g.TopCountry, fmtValue(g.TopValue)))
		b.WriteString(fmt.Sprintf("- Home workout: %s %s vs %s %s, leader %s\n",
			g.Compared[0].Country, fmtValue(g.Compared[0].HomeWorkout),
			g.Compared[1].Country, fmtValue(g.Compared[1].HomeWorkout), g.HomeLeader))
		writeChart(&b, g.Chart)
	}
	return b.String()
}

func writeChart(b *strings.Builder, path string) {
	if path != "" {
		b.WriteString(fmt.Sprintf("- Chart: %s\n", path))
	}
	b.WriteString("\n")
}
