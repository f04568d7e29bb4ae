package gcd

import (
	"math/big"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/interp"
	"github.com/jonathanmweiss/go-mpoly/modular"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// GcdBrown computes gcd(a, b) over ℤ[x_0..x_{n-1}] via Brown's dense
// modular algorithm: split off each operand's integer content, bound
// the result's coefficients by a Landau-Mignotte-style estimate, then
// accumulate images mod a sequence of machine primes (each image built
// by the dense evaluation/interpolation recursion in gcdModPLevel)
// into a symmetric-range CRT lift until the lift stabilizes past the
// bound.
func GcdBrown(a, b *mpoly.Poly[*big.Int]) *mpoly.Poly[*big.Int] {
	if a.IsZero() {
		return b.Copy()
	}
	if b.IsZero() {
		return a.Copy()
	}

	zRing := bigint.Ring{}
	ctx := a.Ctx
	mon := ctx.Mon
	nv := ctx.NVars()

	ca := mpoly.Content(a, zRing)
	cb := mpoly.Content(b, zRing)
	contentGCD := bigint.GCD(ca, cb)

	ap := a.DivExactScalar(ca)
	bp := b.DivExactScalar(cb)
	gamma := bigint.GCD(ap.LeadCoeff(), bp.LeadCoeff())

	bound := landauMignotteBound(ap, bp)

	var h *mpoly.Poly[*big.Int]
	var bestLeadExp []uint64
	modulus := big.NewInt(1)

	prime := uint64(1) << 61
	for {
		prime = prevProbablePrime(prime - 1)
		if prime < 2 {
			panic("gcd: exhausted machine primes without a stable lift")
		}

		pBig := new(big.Int).SetUint64(prime)
		if new(big.Int).Mod(ap.LeadCoeff(), pBig).Sign() == 0 {
			continue
		}
		if new(big.Int).Mod(bp.LeadCoeff(), pBig).Sign() == 0 {
			continue
		}

		field, err := modular.NewPrimeField(prime)
		if err != nil {
			continue
		}

		apMod := interp.ReduceModP(ap, field)
		bpMod := interp.ReduceModP(bp, field)
		if apMod.IsZero() || bpMod.IsZero() {
			continue
		}

		gMod := gcdModPLevel(apMod, bpMod, nv-1, field)
		if gMod.IsZero() {
			continue
		}
		gammaModP := new(big.Int).Mod(gamma, pBig).Uint64()
		gMod = gMod.ScalarMul(field.Mul(gammaModP, field.Inverse(gMod.LeadCoeff())))

		if h != nil {
			switch cmp := mon.Cmp(gMod.LeadExp(), bestLeadExp); {
			case cmp < 0:
				continue // unlucky prime: leading monomial dropped, discard
			case cmp > 0:
				h = nil // previous lift was built on unlucky primes, restart
				modulus = big.NewInt(1)
			}
		}

		var changed bool
		if h == nil {
			h = interp.LiftModP(gMod, field, zRing)
			modulus = pBig
			bestLeadExp = gMod.LeadExp()
			changed = true
		} else {
			h, modulus, changed = interp.CRT(h, modulus, gMod, prime)
		}

		if !changed && bigint.BitLen(modulus) > bound {
			break
		}
	}

	gc := mpoly.Content(h, zRing)
	result := h
	if !zRing.IsZero(gc) {
		result = h.DivExactScalar(gc)
	}
	return result.ScalarMul(contentGCD)
}

// landauMignotteBound estimates the bit length any coefficient of
// gcd(ap, bp) can reach: a divisor's coefficients are bounded by
// roughly 2^min(deg ap, deg bp) times the smaller operand's
// coefficient norm (von zur Gathen & Gerhard, Theorem 6.33). The
// ||.||_2 norm itself is over-approximated here by the largest
// coefficient's bit length plus half the log2 of the term count,
// trading a tighter bound for a one-line estimate.
func landauMignotteBound(ap, bp *mpoly.Poly[*big.Int]) int {
	na := coeffNormBitLenEstimate(ap)
	nb := coeffNormBitLenEstimate(bp)
	n := na
	if nb < n {
		n = nb
	}

	d := ap.TotalDegree()
	if bp.TotalDegree() < d {
		d = bp.TotalDegree()
	}

	return n + d + 2
}

func coeffNormBitLenEstimate(p *mpoly.Poly[*big.Int]) int {
	maxBits := 0
	for i := 0; i < p.Len(); i++ {
		if b := bigint.BitLen(p.Coeffs[i]); b > maxBits {
			maxBits = b
		}
	}
	termBits := 0
	for t := p.Len(); t > 1; t >>= 1 {
		termBits++
	}
	return maxBits + termBits/2 + 1
}

// prevProbablePrime returns the largest probable prime <= n that fits
// a uint64, or 0 if none is found down to 2 (exhaustion, treated by
// callers as a hard failure). A hand-rolled linear probable-prime
// search rather than a library routine: no example repo in the
// retrieved pack ships a next/prev-prime utility, and this mirrors the
// single ProbablyPrime call modular.NewPrimeField already makes to
// validate its own modulus.
func prevProbablePrime(n uint64) uint64 {
	if n < 2 {
		return 0
	}
	if n == 2 {
		return 2
	}
	candidate := n
	if candidate%2 == 0 {
		candidate--
	}
	for candidate >= 3 {
		if new(big.Int).SetUint64(candidate).ProbablyPrime(20) {
			return candidate
		}
		candidate -= 2
	}
	return 0
}

// gcdModPLevel computes gcd(a, b) in F_p[x_0..x_{nv-1}] by dense
// evaluation/interpolation: the base case (mainVar == 0) hands off to
// the univariate Euclidean algorithm; otherwise it evaluates variable
// mainVar at a sequence of points, recurses one variable down on each
// image, and reassembles the results via Newton interpolation along
// mainVar (interp.InterpCRT), restarting the interpolation whenever a
// lower-degree image reveals that every prior point was unlucky.
func gcdModPLevel(a, b *mpoly.Poly[uint64], mainVar int, field *modular.PrimeField) *mpoly.Poly[uint64] {
	if mainVar == 0 {
		return univariateGcdModP(a, b, field)
	}
	return denseInterpLevel(a, b, mainVar, field, func(av, bv *mpoly.Poly[uint64]) *mpoly.Poly[uint64] {
		return gcdModPLevel(av, bv, mainVar-1, field)
	})
}

// denseInterpLevel factors out the evaluate/recurse/interpolate loop
// shared by gcdModPLevel and gcd/zippel.go's dense-variable levels:
// callers supply how to recurse on each evaluated image (a plain
// variable-peeling recursion for Brown, or a skeleton-aware sparse
// solve for Zippel's designated sparse variable), this function owns
// the Newton-interpolation bookkeeping (degree bound, asymmetric
// lucky-point restart, termination) around it.
func denseInterpLevel(a, b *mpoly.Poly[uint64], mainVar int, field *modular.PrimeField, recurse func(av, bv *mpoly.Poly[uint64]) *mpoly.Poly[uint64]) *mpoly.Poly[uint64] {
	degBound := a.Degree(mainVar)
	if d := b.Degree(mainVar); d < degBound {
		degBound = d
	}

	ring := modular.NewDensePolyRing(field)
	h := &mpoly.Univar[uint64]{Ctx: a.Ctx, MainVar: mainVar}
	mod := modular.NewPolynomial(field, []uint64{1}, false)
	minDeg := -1

	maxAttempts := 4*(degBound+2) + 8
	alpha := uint64(0)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		av := a.EvaluateOne(mainVar, alpha)
		bv := b.EvaluateOne(mainVar, alpha)
		alpha++

		if av.IsZero() || bv.IsZero() {
			continue // unlucky point: a leading coefficient vanished here
		}

		gv := recurse(av, bv)
		if gv.IsZero() {
			continue
		}
		gv = gv.ScalarMul(field.Inverse(gv.LeadCoeff()))

		d := gv.TotalDegree()
		switch {
		case minDeg < 0:
			minDeg = d
		case d > minDeg:
			continue // unlucky point: spurious extra degree, discard
		case d < minDeg:
			h = &mpoly.Univar[uint64]{Ctx: a.Ctx, MainVar: mainVar}
			mod = modular.NewPolynomial(field, []uint64{1}, false)
			minDeg = d
		}

		newH, newMod, changed := interp.InterpCRT(h, mod, ring, gv, alpha-1, field)
		h, mod = newH, newMod

		if !changed && mod.Degree() > degBound {
			break
		}
	}

	return mpoly.FromUnivar(h)
}

// univariateGcdModP bottoms out the recursion on the one surviving
// variable, via the monic Euclidean GCD already implemented on
// modular.Polynomial.
func univariateGcdModP(a, b *mpoly.Poly[uint64], field *modular.PrimeField) *mpoly.Poly[uint64] {
	ring := modular.NewDensePolyRing(field)
	g := ring.Gcd(denseFromUnivar(a, field), denseFromUnivar(b, field))
	return univarFromDense(g, a.Ctx)
}

// denseFromUnivar flattens a Poly that only varies in variable 0 into
// a modular.Polynomial coefficient array, lowest degree first.
func denseFromUnivar(p *mpoly.Poly[uint64], field *modular.PrimeField) *modular.Polynomial {
	u := p.ToUnivar(0)
	maxExp := uint64(0)
	for _, t := range u.Terms {
		if t.Exp > maxExp {
			maxExp = t.Exp
		}
	}

	inner := make([]uint64, maxExp+1)
	for _, t := range u.Terms {
		if t.Coeff.Len() == 0 {
			continue
		}
		inner[t.Exp] = t.Coeff.Coeffs[0]
	}
	return modular.NewPolynomial(field, inner, false)
}

// univarFromDense is denseFromUnivar's inverse, reinflating a
// modular.Polynomial back into a Poly whose every term's nonzero
// exponent is in variable 0.
func univarFromDense(poly *modular.Polynomial, ctx *mpoly.Context[uint64]) *mpoly.Poly[uint64] {
	out := mpoly.NewPoly(ctx)
	exp := make([]uint64, ctx.NVars())

	for i, c := range poly.ToSlice() {
		if c == 0 {
			continue
		}
		exp[0] = uint64(i)
		packed, err := ctx.Mon.Pack(exp)
		if err != nil {
			panic(err)
		}
		out.PushTerm(c, packed)
	}
	out.SortAndCombine()
	return out
}
