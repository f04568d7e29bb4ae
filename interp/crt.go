package interp

import (
	"math/big"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// CRT updates h (a ℤ lift valid mod m) so that it is unchanged mod m and
// equals ap mod p, merging term-by-term over the *union* of h's and
// ap's monomial support (a term present in only one operand is combined
// against an implicit zero residue in the other modulus). changed
// reports whether any coefficient of the result actually differs from
// h's — the stopping criterion a Brown/Zippel prime loop watches for.
func CRT(h *mpoly.Poly[*big.Int], m *big.Int, ap *mpoly.Poly[uint64], p uint64) (merged *mpoly.Poly[*big.Int], newModulus *big.Int, changed bool) {
	mon := h.Ctx.Mon
	out := mpoly.NewPoly(h.Ctx)
	pBig := new(big.Int).SetUint64(p)
	newModulus = new(big.Int).Mul(m, pBig)

	i, j := 0, 0
	for i < h.Len() || j < ap.Len() {
		switch {
		case j >= ap.Len() || (i < h.Len() && mon.Cmp(h.ExpAt(i), ap.ExpAt(j)) > 0):
			_, v := bigint.CRT(m, h.Coeffs[i], pBig, big.NewInt(0))
			out.PushTerm(v, h.ExpAt(i))
			if v.Cmp(h.Coeffs[i]) != 0 {
				changed = true
			}
			i++
		case i >= h.Len() || mon.Cmp(h.ExpAt(i), ap.ExpAt(j)) < 0:
			_, v := bigint.CRT(m, big.NewInt(0), pBig, new(big.Int).SetUint64(ap.Coeffs[j]))
			out.PushTerm(v, ap.ExpAt(j))
			changed = true
			j++
		default:
			_, v := bigint.CRT(m, h.Coeffs[i], pBig, new(big.Int).SetUint64(ap.Coeffs[j]))
			out.PushTerm(v, h.ExpAt(i))
			if v.Cmp(h.Coeffs[i]) != 0 {
				changed = true
			}
			i++
			j++
		}
	}

	out.SortAndCombine()
	return out, newModulus, changed
}

// MCRT is CRT's faster sibling for when h and ap are already known to
// share identical monomial support (Zippel's sparse form is fixed by
// construction): the merge pass is skipped in favor of a direct
// index-wise zip.
func MCRT(h *mpoly.Poly[*big.Int], m *big.Int, ap *mpoly.Poly[uint64], p uint64) *mpoly.Poly[*big.Int] {
	out := mpoly.NewPoly(h.Ctx)
	pBig := new(big.Int).SetUint64(p)

	for i := 0; i < h.Len(); i++ {
		_, v := bigint.CRT(m, h.Coeffs[i], pBig, new(big.Int).SetUint64(ap.Coeffs[i]))
		out.PushTerm(v, h.ExpAt(i))
	}
	out.SortAndCombine()
	return out
}
