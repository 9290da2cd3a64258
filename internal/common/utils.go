package common

import "strings"

// HasAny reports whether s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Unit limits a score to the closed interval [0, 1].
func Unit(v float64) float64 {
	if v != v || v < 0 { // NaN compares false to itself
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
