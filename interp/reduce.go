// Package interp implements the homomorphic lifters that connect the ℤ
// and 𝔽ₚ worlds the Brown/Zippel GCD recursion moves between: reduction
// mod a machine prime, symmetric lifting back to ℤ, term-wise CRT merges
// across primes (CRT/MCRT), and Newton interpolation along a single
// variable within one fixed prime (InterpReduce/InterpCRT).
package interp

import (
	"math/big"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/modular"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// ReduceModP reduces every ℤ coefficient of a mod field's prime,
// dropping any term whose coefficient reduces to zero (the monomial
// support shrinks exactly when a coefficient was divisible by p).
func ReduceModP(a *mpoly.Poly[*big.Int], field *modular.PrimeField) *mpoly.Poly[uint64] {
	ctx := mpoly.NewContext[uint64](a.Ctx.Mon, modular.NewFieldRing(field))
	out := mpoly.NewPoly(ctx)
	p := new(big.Int).SetUint64(field.Modulus())

	for i := 0; i < a.Len(); i++ {
		r := new(big.Int).Mod(a.Coeffs[i], p)
		v := r.Uint64()
		if v == 0 {
			continue
		}
		out.PushTerm(v, a.ExpAt(i))
	}
	out.SortAndCombine()
	return out
}

// LiftModP inverts ReduceModP: every 𝔽ₚ coefficient of ap is mapped back
// to ℤ via the symmetric lift into (-p/2, p/2]. Used to seed the first
// prime's lift in a Brown run.
func LiftModP(ap *mpoly.Poly[uint64], field *modular.PrimeField, r bigint.Ring) *mpoly.Poly[*big.Int] {
	ctx := mpoly.NewContext[*big.Int](ap.Ctx.Mon, r)
	out := mpoly.NewPoly(ctx)
	p := new(big.Int).SetUint64(field.Modulus())

	for i := 0; i < ap.Len(); i++ {
		v := bigint.SymmetricRange(new(big.Int).SetUint64(ap.Coeffs[i]), p)
		out.PushTerm(v, ap.ExpAt(i))
	}
	out.SortAndCombine()
	return out
}
