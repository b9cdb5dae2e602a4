package summary

import (
	"math"
	"strconv"
	"strings"
)

// GroupINR formats v rounded to whole rupees with Indian digit grouping,
// e.g. 1200000 -> "12,00,000".
func GroupINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + strings.Join(groups, ",") + "," + tail
}

// Lakhs formats v in lakhs with one decimal, e.g. 1200000 -> "12.0L".
func Lakhs(v float64) string {
	return strconv.FormatFloat(v/100000, 'f', 1, 64) + "L"
}

// ShortINR uses the lakh form from one lakh upwards and the grouped rupee
// form below it.
func ShortINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	if v >= 100000 {
		return Lakhs(v)
	}
	return "₹" + GroupINR(v)
}
