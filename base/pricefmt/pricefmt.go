package pricefmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount of whole currency units for display,
// e.g. 1250 -> "1,250.00". Arithmetic stays on int64 everywhere else;
// decimal is only used at the presentation edge.
func FormatPrice(amount int64) string {
	fixed := decimal.NewFromInt(amount).StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	whole, frac := parts[0], parts[1]

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
