package summary

import (
	"fmt"
	"strings"

	"github.com/okian/pathwise/internal/domain/simulation"
)

// HighlightYears are the horizons called out by SimulationText.
var HighlightYears = []int{1, 3, 5}

// SimulationText renders the highlighted years of res in the short rupee
// form, then both totals and the extra gain. Years past the horizon show
// the final salary.
func SimulationText(res simulation.Result) string {
	var b strings.Builder
	b.WriteString("Salary Progression\n")
	for _, y := range HighlightYears {
		fmt.Fprintf(&b, "Year %d: %s with switching, %s without\n",
			y, ShortINR(at(res.TrajectoryWithSwitching, y)), ShortINR(at(res.TrajectoryNoSwitch, y)))
	}
	fmt.Fprintf(&b, "Total (with switching): %s\n", ShortINR(res.TotalEarningsWithSwitching))
	fmt.Fprintf(&b, "Total (no switch): %s\n", ShortINR(res.TotalEarningsNoSwitch))
	fmt.Fprintf(&b, "Extra Gain: %s", ShortINR(res.ExtraGain))
	return b.String()
}

func at(trajectory []float64, year int) float64 {
	if len(trajectory) == 0 {
		return 0
	}
	if year < len(trajectory) {
		return trajectory[year]
	}
	return trajectory[len(trajectory)-1]
}
