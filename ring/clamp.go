package ring

import "golang.org/x/exp/constraints"

// Clamp confines v to [lo, hi]. Clamp, Min and Max are standalone
// helpers; the gcd and monomial packages do not call them.
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a, b.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a, b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
