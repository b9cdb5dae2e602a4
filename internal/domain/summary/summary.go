// Package summary renders the shareable plain-text result of an
// assessment.
package summary

import (
	"fmt"
	"strings"

	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/roi"
)

const notSpecified = "Not specified"

// Input is everything the share text needs.
type Input struct {
	CurrentRole string
	TargetRole  string
	Result      roi.Result
	Courses     []compensation.Course
}

// Text renders the share summary.
func Text(in Input) string {
	names := make([]string, 0, len(in.Courses))
	for _, c := range in.Courses {
		names = append(names, c.Name)
	}

	var b strings.Builder
	b.WriteString("Career ROI Summary\n\n")
	fmt.Fprintf(&b, "Current Role: %s\n", orNotSpecified(in.CurrentRole))
	fmt.Fprintf(&b, "Target Role: %s\n", orNotSpecified(in.TargetRole))
	fmt.Fprintf(&b, "Current CTC: ₹%s\n", GroupINR(in.Result.CurrentCompensation))
	fmt.Fprintf(&b, "Expected CTC: ₹%s\n", GroupINR(in.Result.ExpectedCompensation))
	fmt.Fprintf(&b, "Salary Gain: ₹%s\n", GroupINR(in.Result.Gain))
	fmt.Fprintf(&b, "ROI: %.2f%%\n", in.Result.RoiPercent)
	fmt.Fprintf(&b, "Breakeven: %s\n", in.Result.BreakevenLabel)
	fmt.Fprintf(&b, "Recommended Courses: %s", strings.Join(names, ", "))
	if in.Result.Advisory != "" {
		fmt.Fprintf(&b, "\nNote: %s", in.Result.Advisory)
	}
	return b.String()
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return notSpecified
}
