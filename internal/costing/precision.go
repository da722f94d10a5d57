package costing

import "strings"

// ValidatePrecision reports whether literal is a non-negative decimal whose
// fractional part carries at most maxScale digits.
//
// The check runs on the literal representation on purpose: "2.50" has two
// fractional digit positions even though its normalized value has one, and
// accepting it under maxScale 1 would silently diverge from what the caller
// typed. Rates use scale 1, prices and costs use scale 2.
func ValidatePrecision(literal string, maxScale int) bool {
	if maxScale < 0 {
		return false
	}
	s := strings.TrimSpace(literal)
	if s == "" {
		return false
	}
	if s[0] == '+' {
		s = s[1:]
	}
	if s == "" || s[0] == '-' {
		return false
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return false
	}
	if hasDot && fracPart == "" {
		return false
	}
	for _, part := range [2]string{intPart, fracPart} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return false
			}
		}
	}

	return len(fracPart) <= maxScale
}
