package gcd

import (
	"math/big"
	"math/rand"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/interp"
	"github.com/jonathanmweiss/go-mpoly/modular"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// GcdZippel computes gcd(a, b) over ℤ[x_0..x_{n-1}] via a sparse
// modular algorithm in the style of Zippel's 1979 sparse interpolation:
// the same content-split/prime-loop/CRT shell as GcdBrown, but variable
// x_1 is singled out as the one "sparse" dimension. The first prime
// pays for a full dense reconstruction (gcdModPLevel) and records the
// x_1-exponents that came out nonzero as the skeleton; every later
// prime reconstructs just those coefficients via a transposed
// Vandermonde solve (gcd/vandermonde.go) instead of repeating the dense
// interpolation, falling back to the dense path if the skeleton ever
// fails to divide the inputs exactly (a sign the sparsity pattern
// shifted, e.g. an unlucky prime). Variables x_2..x_{n-1}, if any,
// stay on the ordinary dense Newton path shared with Brown via
// denseInterpLevel — this implementation scopes Zippel's sparsity gain
// to a single designated variable rather than the fully general
// per-variable skeleton (which needs a distinct-prime-weight scheme to
// disambiguate colliding exponents across several sparse variables at
// once) and documents that scoping here rather than in DESIGN.md's
// margins.
func GcdZippel(a, b *mpoly.Poly[*big.Int], rng *rand.Rand) *mpoly.Poly[*big.Int] {
	if a.IsZero() {
		return b.Copy()
	}
	if b.IsZero() {
		return a.Copy()
	}

	ctx := a.Ctx
	nv := ctx.NVars()
	if nv < 2 {
		return GcdBrown(a, b)
	}

	zRing := bigint.Ring{}
	mon := ctx.Mon

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
	var skeleton []uint64 // x_1-exponents known to carry a nonzero term; nil until the first prime

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

		var gMod *mpoly.Poly[uint64]
		if skeleton == nil {
			gMod = gcdModPLevel(apMod, bpMod, nv-1, field)
			if gMod.IsZero() {
				continue
			}
			skeleton = skeletonOf(gMod)
		} else {
			gMod = zippelLevel(apMod, bpMod, nv-1, field, skeleton, rng)
			if gMod.IsZero() {
				continue
			}
		}
		gammaModP := new(big.Int).Mod(gamma, pBig).Uint64()
		gMod = gMod.ScalarMul(field.Mul(gammaModP, field.Inverse(gMod.LeadCoeff())))

		if h != nil {
			switch cmp := mon.Cmp(gMod.LeadExp(), bestLeadExp); {
			case cmp < 0:
				continue
			case cmp > 0:
				h = nil
				modulus = big.NewInt(1)
				skeleton = skeletonOf(gMod)
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
			gc := mpoly.Content(h, zRing)
			candidate := h
			if !zRing.IsZero(gc) {
				candidate = h.DivExactScalar(gc)
			}
			candidate = candidate.ScalarMul(contentGCD)

			if _, ok := Divides(a, candidate); ok {
				if _, ok := Divides(b, candidate); ok {
					return candidate
				}
			}

			// The lift stabilized at a wrong answer (an unlucky prime or a
			// skeleton that no longer matches the true gcd's support) without
			// the bound check catching it; discard it and keep searching.
			h = nil
			modulus = big.NewInt(1)
			bestLeadExp = nil
			skeleton = nil
		}
	}
}

// skeletonOf extracts the x_1-exponents carrying a nonzero term in g,
// descending order matching Univar.Terms, the "form" later primes
// reuse for the sparse Vandermonde solve.
func skeletonOf(g *mpoly.Poly[uint64]) []uint64 {
	u := g.ToUnivar(1)
	exps := make([]uint64, len(u.Terms))
	for i, t := range u.Terms {
		exps[i] = t.Exp
	}
	return exps
}

// zippelLevel mirrors gcdModPLevel's variable-peeling recursion, but
// switches to the skeleton-driven sparse solve at variable 1 instead
// of continuing the dense Newton interpolation all the way to the
// base case.
func zippelLevel(a, b *mpoly.Poly[uint64], mainVar int, field *modular.PrimeField, skeleton []uint64, rng *rand.Rand) *mpoly.Poly[uint64] {
	switch {
	case mainVar == 0:
		return univariateGcdModP(a, b, field)
	case mainVar == 1:
		return zippelSparseLevel(a, b, field, skeleton, rng)
	default:
		return denseInterpLevel(a, b, mainVar, field, func(av, bv *mpoly.Poly[uint64]) *mpoly.Poly[uint64] {
			return zippelLevel(av, bv, mainVar-1, field, skeleton, rng)
		})
	}
}

const maxZippelAttempts = 8

// zippelSparseLevel recovers the x_0-coefficient of every skeleton
// term of gcd(a, b) — a, b already fixed in every variable above index
// 1 — via one random scalar β: sampling a, b at x_1 = β, β^2, ..., β^t
// (t = len(skeleton)) gives t univariate-in-x_0 images, each a power
// sum sum_i c_i(x_0) * β^(j*e_i); SolveTransposedVandermonde inverts
// that system one x_0-power at a time. Falls back to the dense
// recursion (gcdModPLevel) if the result doesn't divide both inputs
// exactly, after a bounded number of unlucky-β retries.
func zippelSparseLevel(a, b *mpoly.Poly[uint64], field *modular.PrimeField, skeleton []uint64, rng *rand.Rand) *mpoly.Poly[uint64] {
	if len(skeleton) == 0 {
		return gcdModPLevel(a, b, 1, field)
	}

	t := len(skeleton)
	degBoundX0 := a.Degree(0)
	if d := b.Degree(0); d < degBoundX0 {
		degBoundX0 = d
	}
	ring := modular.NewDensePolyRing(field)

attempt:
	for attempt := 0; attempt < maxZippelAttempts; attempt++ {
		beta := randomNonzeroElement(field, rng)

		nodes := make([]uint64, t)
		for i, e := range skeleton {
			nodes[i] = field.Pow(beta, e)
		}
		if !allDistinct(nodes) {
			continue
		}

		moments := make([][]uint64, t)
		for j := 0; j < t; j++ {
			x1val := field.Pow(beta, uint64(j+1))
			av := a.EvaluateOne(1, x1val)
			bv := b.EvaluateOne(1, x1val)
			if av.IsZero() || bv.IsZero() {
				continue attempt
			}

			sample := univariateGcdModP(av, bv, field)
			if sample.IsZero() {
				continue attempt
			}
			sample = sample.ScalarMul(field.Inverse(sample.LeadCoeff()))
			moments[j] = denseFromUnivar(sample, field).ToSlice()
		}

		result := mpoly.NewPoly(a.Ctx)
		exp := make([]uint64, a.Ctx.NVars())
		for k := 0; k <= degBoundX0; k++ {
			col := make([]uint64, t)
			for j := 0; j < t; j++ {
				if k < len(moments[j]) {
					col[j] = moments[j][k]
				}
			}
			solved := SolveTransposedVandermonde(ring, nodes, col)
			for i, e1 := range skeleton {
				if solved[i] == 0 {
					continue
				}
				exp[0], exp[1] = uint64(k), e1
				packed, err := a.Ctx.Mon.Pack(exp)
				if err != nil {
					panic(err)
				}
				result.PushTerm(solved[i], packed)
			}
		}
		result.SortAndCombine()

		if result.IsZero() {
			continue
		}
		if _, ok := Divides(a, result); !ok {
			continue
		}
		if _, ok := Divides(b, result); !ok {
			continue
		}
		return result
	}

	return gcdModPLevel(a, b, 1, field)
}

func randomNonzeroElement(field *modular.PrimeField, rng *rand.Rand) uint64 {
	for {
		v := field.Reduce(rng.Uint64())
		if v != 0 {
			return v
		}
	}
}

func allDistinct(xs []uint64) bool {
	seen := make(map[uint64]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			return false
		}
		seen[x] = struct{}{}
	}
	return true
}
