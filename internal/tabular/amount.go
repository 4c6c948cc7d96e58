package tabular

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a human-formatted monetary cell. Currency symbols,
// thousands separators, and surrounding whitespace are stripped before
// parsing. The second return is false when no usable number remains;
// callers treat that as a zero contribution, never as a failure.
func ParseAmount(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
