package cart

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price with exactly two decimals and a comma
// separator, the way the shelf displays money (39.9 -> "39,90").
func FormatPrice(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// ParsePrice accepts either a comma or a period as the decimal separator.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

// NormalizePrice rewrites a user-typed price to period-decimal form for
// transmission. Callers validate with ParsePrice first.
func NormalizePrice(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}
