package gcd

import "github.com/jonathanmweiss/go-mpoly/modular"

// SolveTransposedVandermonde recovers the coefficient vector c from a
// sequence of power-sum samples moments[k-1] = sum_i c[i] * nodes[i]^k,
// k = 1..t, where t = len(nodes) = len(moments) and nodes are
// distinct nonzero field elements (von zur Gathen & Gerhard, Modern
// Computer Algebra, Algorithm 10.8). Zippel's sparse interpolation
// (gcd/zippel.go) uses this to recover a term's coefficient across the
// skeleton of monomials once their node values (the monomial evaluated
// at the random probe point) are fixed: sampling the image polynomial
// at successive powers of a single scalar gives exactly this moment
// sequence, one linear solve recovering every coefficient in the form
// at once instead of one evaluation per unknown.
//
// Built directly on top of DensePolyRing/ProductOfRoots/LongDiv rather
// than a hand-rolled Vandermonde solver: the dual of Lagrange
// interpolation (modular.Interpolator.Interpolate) is this transposed
// solve, and both reduce to the same P(y) = prod(y - node_i) /
// (y - node_i) construction, so the dense polynomial ring already
// carries every primitive this needs.
func SolveTransposedVandermonde(ring *modular.DensePolyRing, nodes, moments []uint64) []uint64 {
	t := len(nodes)
	if len(moments) != t {
		panic("gcd: SolveTransposedVandermonde: nodes/moments length mismatch")
	}
	if t == 0 {
		return nil
	}

	field := ring.PrimeField
	p := ring.ProductOfRoots(nodes)

	c := make([]uint64, t)
	for i, v := range nodes {
		linear := modular.NewPolynomial(field, []uint64{field.Neg(field.Reduce(v)), 1}, false)
		qi, _ := ring.LongDiv(p, linear)

		qiAtV := ring.Evaluate(qi, v)
		inv := field.Inverse(field.Mul(qiAtV, field.Reduce(v)))

		coeffs := qi.ToSlice()
		acc := field.NewAccumulator()
		for k, w := range coeffs {
			if k >= len(moments) {
				break
			}
			acc.AddProduct(w, moments[k])
		}

		c[i] = field.Mul(acc.Value(), inv)
	}

	return c
}
