// Package gcd implements the Brown (dense modular) and Zippel (sparse
// modular) multivariate GCD algorithms over ℤ[x_1..x_n], plus
// square-root and quadratic-root routines over F_p (quadratic.go), on
// top of the generic mpoly/ring/interp/bigint/modular layers.
package gcd

import "github.com/jonathanmweiss/go-mpoly/mpoly"

// Divides is the J-module divisibility oracle the Brown/Zippel
// pipelines use to confirm a candidate GCD actually divides both
// inputs exactly (spec's 4.5 "divides" mode): a thin wrapper over the
// heap kernel's own Divides, named at the package level so callers in
// this package read as "gcd.Divides(candidate, a)" rather than reaching
// into mpoly directly.
func Divides[T any](a, b *mpoly.Poly[T]) (quotient *mpoly.Poly[T], ok bool) {
	return a.Divides(b)
}
