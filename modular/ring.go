package modular

import "sync"

// DensePolyRing is the operational ring of Polynomial values over a fixed
// PrimeField: it owns the NTT twiddle cache and every Add/Sub/Mul/Div/GCD
// operation on dense univariate polynomials.
type DensePolyRing struct {
	*PrimeField
	mu           sync.RWMutex
	twiddleCache map[int]*twiddleSet // key: n
}

// NewDensePolyRing constructs a ring over the provided coefficient field.
func NewDensePolyRing(f *PrimeField) *DensePolyRing {
	return &DensePolyRing{
		PrimeField:   f,
		twiddleCache: map[int]*twiddleSet{},
	}
}

func (r *DensePolyRing) Field() *PrimeField { return r.PrimeField }

func (r *DensePolyRing) Zero() *Polynomial {
	return NewPolynomial(r.PrimeField, []uint64{0}, false)
}

func (r *DensePolyRing) Constant(u uint64) *Polynomial {
	return NewPolynomial(r.PrimeField, []uint64{r.Reduce(u)}, false)
}

func ensureLen(p *Polynomial, n int) {
	if len(p.inner) < n {
		tmp := make([]uint64, n)
		copy(tmp, p.inner)
		p.inner = tmp
	} else {
		p.inner = p.inner[:n]
	}
}

func (r *DensePolyRing) trimTrailingZeros(p *Polynomial) {
	if len(p.inner) == 0 || p.isNTT {
		return
	}
	i := len(p.inner) - 1
	for i >= 0 && r.Reduce(p.inner[i]) == 0 {
		i--
	}
	p.inner = p.inner[:i+1]
}

// Evaluate applies Horner's rule. Panics if a is in NTT domain (the
// teacher's own restriction: an NTT-domain polynomial is a table of
// evaluations, not coefficients, so "evaluate at x" is not meaningful
// without first transforming back).
func (r *DensePolyRing) Evaluate(a *Polynomial, x uint64) uint64 {
	if a.isNTT {
		panic("modular: Evaluate not supported in NTT domain")
	}

	result := uint64(0)
	for i := len(a.inner) - 1; i >= 0; i-- {
		result = r.Add(a.inner[i], r.Mul(x, result))
	}
	return result
}

func (r *DensePolyRing) MulScalar(a *Polynomial, scalar uint64) *Polynomial {
	s := r.Reduce(scalar)
	c := &Polynomial{f: r.PrimeField, inner: make([]uint64, len(a.inner)), isNTT: a.isNTT}
	for i := range a.inner {
		c.inner[i] = r.Mul(a.inner[i], s)
	}
	r.trimTrailingZeros(c)
	return c
}

func (r *DensePolyRing) AddPoly(a, b *Polynomial) *Polynomial {
	if !preOpVerification(a, b) {
		panic("modular: AddPoly preOpVerification failed")
	}

	n := max(len(a.inner), len(b.inner))
	c := &Polynomial{f: r.PrimeField, inner: make([]uint64, n), isNTT: a.isNTT}

	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a.inner) {
			av = r.Reduce(a.inner[i])
		}
		if i < len(b.inner) {
			bv = r.Reduce(b.inner[i])
		}
		c.inner[i] = r.Add(av, bv)
	}

	r.trimTrailingZeros(c)
	return c
}

func (r *DensePolyRing) SubPoly(a, b *Polynomial) *Polynomial {
	if !preOpVerification(a, b) {
		panic("modular: SubPoly preOpVerification failed")
	}

	n := max(len(a.inner), len(b.inner))
	c := &Polynomial{f: r.PrimeField, inner: make([]uint64, n), isNTT: a.isNTT}

	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a.inner) {
			av = r.Reduce(a.inner[i])
		}
		if i < len(b.inner) {
			bv = r.Reduce(b.inner[i])
		}
		c.inner[i] = r.Sub(av, bv)
	}

	r.trimTrailingZeros(c)
	return c
}

func (r *DensePolyRing) NegPoly(a *Polynomial) *Polynomial {
	return r.SubPoly(r.Zero(), a)
}

// MulPoly multiplies using an Accumulator-backed schoolbook convolution
// (each a[i]*b[j] product is added to the running output coefficient
// through a fresh Accumulator and reduced with one Value() call per
// product), or a pointwise product when both operands already live in
// NTT domain.
func (r *DensePolyRing) MulPoly(a, b *Polynomial) *Polynomial {
	if !preOpVerification(a, b) {
		panic("modular: MulPoly preOpVerification failed")
	}

	if a.isNTT && b.isNTT {
		n := len(a.inner)
		c := &Polynomial{f: r.PrimeField, inner: make([]uint64, n), isNTT: true}
		for i := 0; i < n; i++ {
			c.inner[i] = r.Mul(a.inner[i], b.inner[i])
		}
		return c
	}

	newLen := len(a.inner) + len(b.inner) - 1
	out := make([]uint64, newLen)

	for i := range a.inner {
		ai := r.Reduce(a.inner[i])
		if ai == 0 {
			continue
		}
		for j := range b.inner {
			acc := r.NewAccumulator()
			acc.Add(out[i+j])
			acc.AddProduct(ai, b.inner[j])
			out[i+j] = acc.Value()
		}
	}

	c := &Polynomial{f: r.PrimeField, inner: out, isNTT: false}
	r.trimTrailingZeros(c)
	return c
}

func (r *DensePolyRing) monomialMultPoly(ai uint64, deg int, p *Polynomial) *Polynomial {
	prod := make([]uint64, len(p.inner)+deg)
	for i := range p.inner {
		prod[i+deg] = r.Mul(ai, p.inner[i])
	}
	return NewPolynomial(r.PrimeField, prod, p.isNTT)
}

// LongDiv follows Algorithm 2.5 (polynomial division with remainder) in
// von zur Gathen & Gerhard's Modern Computer Algebra: returns q, rem
// such that a = q*b + rem, deg(rem) < deg(b).
func (r *DensePolyRing) LongDiv(a, b *Polynomial) (q, rem *Polynomial) {
	if !preOpVerification(a, b) {
		panic("modular: LongDiv preOpVerification failed")
	}
	if b.isNTT {
		panic("modular: LongDiv does not accept NTT-domain operands")
	}
	if b.IsZero() {
		panic("modular: division by the zero polynomial")
	}

	n, m := a.Degree(), b.Degree()
	if n < m {
		return r.Zero(), a.Copy()
	}

	u := r.Inverse(b.LeadCoeff())

	rem = a.Copy()
	qInner := make([]uint64, n-m+1)

	for i := n - m; i >= 0; i-- {
		if rem.Degree() == m+i {
			qInner[i] = r.Mul(rem.LeadCoeff(), u)
			rem = r.SubPoly(rem, r.monomialMultPoly(qInner[i], i, b))
		}
	}

	q = NewPolynomial(r.PrimeField, qInner, false)
	q.removeLeadingZeroes()
	r.trimTrailingZeros(rem)

	return q, rem
}

// PartialExtendedEuclidean runs the extended Euclidean algorithm,
// stopping once the remaining remainder's degree drops below
// stopDegree. Returns gcd, x, y such that a*x + b*y = gcd.
func (r *DensePolyRing) PartialExtendedEuclidean(a, b *Polynomial, stopDegree int) (gcd, x, y *Polynomial) {
	A := a.Copy()
	B := b.Copy()

	x0, x1 := r.Constant(1), r.Constant(0)
	y0, y1 := r.Constant(0), r.Constant(1)

	for A.Degree() >= stopDegree {
		if B.Degree() < 0 {
			break
		}

		q, rrem := r.LongDiv(A, B)
		A, B = B, rrem

		x0, x1 = x1, r.SubPoly(x0, r.MulPoly(q, x1))
		y0, y1 = y1, r.SubPoly(y0, r.MulPoly(q, y1))
	}

	return A, x0, y0
}

// Gcd returns the monic univariate GCD of a and b, the base case for the
// recursive Brown/Zippel multivariate drivers.
func (r *DensePolyRing) Gcd(a, b *Polynomial) *Polynomial {
	g, _, _ := r.PartialExtendedEuclidean(a, b, 0)
	g.removeLeadingZeroes()
	if g.IsZero() {
		return g
	}
	lc := g.LeadCoeff()
	if lc == 1 {
		return g
	}
	return r.MulScalar(g, r.Inverse(lc))
}

// ProductOfRoots computes prod (x - r_i), used by
// gcd.SolveTransposedVandermonde to build the node polynomial of its
// transposed-Vandermonde solve.
func (r *DensePolyRing) ProductOfRoots(roots []uint64) *Polynomial {
	n := len(roots)
	if n == 0 {
		return r.Constant(1)
	}

	coeffs := make([]uint64, n+1)
	coeffs[0] = 1

	deg := 0
	for _, root := range roots {
		neg := r.Neg(r.Reduce(root))
		coeffs[deg+1] = 0
		for j := deg; j >= 0; j-- {
			coeffs[j+1] = r.Add(coeffs[j+1], coeffs[j])
			coeffs[j] = r.Mul(coeffs[j], neg)
		}
		deg++
	}

	return NewPolynomial(r.PrimeField, coeffs[:deg+1], false)
}

// Resultant computes Res(a, b) via the Euclidean remainder sequence,
// tracking the sign/scale adjustment at each pseudo-division step. The
// gcd drivers do not call it.
func (r *DensePolyRing) Resultant(a, b *Polynomial) uint64 {
	A, B := a.Copy(), b.Copy()
	if A.IsZero() || B.IsZero() {
		return 0
	}

	res := uint64(1)
	for B.Degree() > 0 {
		degA, degB := A.Degree(), B.Degree()
		lcB := B.LeadCoeff()

		q, rem := r.LongDiv(A, B)
		_ = q

		res = r.Mul(res, r.Pow(lcB, uint64(degA-rem.Degree())))
		if degA*degB%2 == 1 {
			res = r.Neg(res)
		}

		A, B = B, rem
		if B.IsZero() {
			if A.Degree() == 0 {
				return r.Mul(res, r.Pow(A.LeadCoeff(), uint64(degB)))
			}
			return 0
		}
	}

	res = r.Mul(res, r.Pow(B.LeadCoeff(), uint64(A.Degree())))
	return res
}
