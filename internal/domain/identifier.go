package domain

import "strings"

// CanonicalLength is the number of trailing digits a normalized mobile
// identifier keeps. All cross-dataset joins run on this key.
const CanonicalLength = 7

// DefaultCallingCode is the national calling code stripped from the front
// of otherwise-valid subscriber numbers before truncation.
const DefaultCallingCode = "220"

// NormalizeMobile collapses a raw mobile identifier into its canonical
// form: every non-digit character is removed, a leading callingCode is
// stripped when it fronts a full national number, and only the last
// CanonicalLength digits are kept. Inputs with fewer digits are returned
// as their bare digit string; an empty or digit-free input normalizes to
// "". Normalization is idempotent and never fails.
func NormalizeMobile(raw, callingCode string) string {
	digits := digitsOnly(raw)
	if callingCode != "" &&
		len(digits) == len(callingCode)+CanonicalLength &&
		strings.HasPrefix(digits, callingCode) {
		digits = digits[len(callingCode):]
	}
	if len(digits) > CanonicalLength {
		digits = digits[len(digits)-CanonicalLength:]
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
