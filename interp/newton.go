package interp

import (
	"golang.org/x/exp/slices"

	"github.com/jonathanmweiss/go-mpoly/modular"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// InterpReduce evaluates a dense-in-the-main-variable Newton form h
// (grouped by exponent of the variable being interpolated away, as
// produced by mpoly.Poly.ToUnivar) at the field point alpha, via sparse
// Horner evaluation over the exponent gaps between consecutive terms.
// The result is a polynomial in the remaining variables.
func InterpReduce(h *mpoly.Univar[uint64], alpha uint64, field *modular.PrimeField) *mpoly.Poly[uint64] {
	if len(h.Terms) == 0 {
		return mpoly.NewPoly(h.Ctx)
	}

	v := h.Terms[0].Coeff
	prevExp := h.Terms[0].Exp
	for _, term := range h.Terms[1:] {
		gap := prevExp - term.Exp
		v = v.ScalarMul(field.Pow(alpha, gap)).Add(term.Coeff)
		prevExp = term.Exp
	}
	return v.ScalarMul(field.Pow(alpha, prevExp))
}

// InterpCRT performs one Newton-interpolation update along the variable
// h is dense in: given h already matching every previous evaluation
// point (recorded in the node polynomial mod(x) = Π(x-α_i)) and a new
// image g = A(..., α), it computes the correction
//
//	c = (g - h(α)) / mod(α)
//
// and returns h' = h + c·mod(x), which additionally matches g at α,
// together with mod extended by the new linear factor (x-α). changed
// reports whether the correction was nonzero.
func InterpCRT(h *mpoly.Univar[uint64], mod *modular.Polynomial, ring *modular.DensePolyRing, g *mpoly.Poly[uint64], alpha uint64, field *modular.PrimeField) (newH *mpoly.Univar[uint64], newMod *modular.Polynomial, changed bool) {
	atAlpha := InterpReduce(h, alpha, field)
	diff := g.Sub(atAlpha)

	modAtAlpha := ring.Evaluate(mod, alpha)
	c := diff.ScalarMul(field.Inverse(modAtAlpha))
	changed = !c.IsZero()

	newH = mergeNewtonCoeff(h, c, mod)

	factor := modular.NewPolynomial(field, []uint64{field.Neg(alpha), 1}, false)
	newMod = ring.MulPoly(mod, factor)

	return newH, newMod, changed
}

// mergeNewtonCoeff folds c*mod(x) into h's dense-in-the-main-variable
// term list: mod's coefficients (lowest degree first) each scale c by a
// scalar, landing at the corresponding main-variable exponent.
func mergeNewtonCoeff(h *mpoly.Univar[uint64], c *mpoly.Poly[uint64], mod *modular.Polynomial) *mpoly.Univar[uint64] {
	byExp := map[uint64]*mpoly.Poly[uint64]{}
	for _, t := range h.Terms {
		byExp[t.Exp] = t.Coeff
	}

	for e, s := range mod.ToSlice() {
		if s == 0 {
			continue
		}
		contribution := c.ScalarMul(s)
		exp := uint64(e)
		if existing, ok := byExp[exp]; ok {
			byExp[exp] = existing.Add(contribution)
		} else {
			byExp[exp] = contribution
		}
	}

	out := &mpoly.Univar[uint64]{Ctx: h.Ctx, MainVar: h.MainVar}
	for exp, coeff := range byExp {
		if coeff.IsZero() {
			continue
		}
		out.Terms = append(out.Terms, mpoly.UnivarTerm[uint64]{Exp: exp, Coeff: coeff})
	}

	slices.SortFunc(out.Terms, func(a, b mpoly.UnivarTerm[uint64]) int {
		switch {
		case a.Exp > b.Exp:
			return -1
		case a.Exp < b.Exp:
			return 1
		default:
			return 0
		}
	})

	return out
}
