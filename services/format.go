package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// FormatINR renders a cell value as rupees with Indian digit grouping and
// two decimals, e.g. ₹1,23,456.50. Numeric strings are accepted. Missing or
// non-numeric values render as "" so the cell stays blank.
func FormatINR(v any) string {
	if v == nil {
		return ""
	}
	amount, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(amount, 'f', 2, 64), ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian places commas after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	b.WriteString(head[:lead])
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
