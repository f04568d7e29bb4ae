package mpoly

import "github.com/jonathanmweiss/go-mpoly/ring"

// Content returns the GCD of p's coefficients, the building block of the
// Brown/Zippel content-split step. Requires a ring.GCDRing (bigint.Ring
// for ℤ; modular.FieldRing's GCD is trivially 1 for any nonzero input,
// since every field element is a unit).
func Content[T any](p *Poly[T], r ring.GCDRing[T]) T {
	c := r.Zero()
	for i := 0; i < p.Len(); i++ {
		c = r.GCD(c, p.Coeffs[i])
	}
	return c
}

// DivExactScalar divides every coefficient of p by c, assuming c exactly
// divides each one (the caller has just computed c as p's content).
func (p *Poly[T]) DivExactScalar(c T) *Poly[T] {
	r := p.Ctx.R
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len())
	for i := 0; i < p.Len(); i++ {
		out.PushTerm(r.DivExact(p.Coeffs[i], c), p.ExpAt(i))
	}
	return out
}
