package modular

// nttMulThreshold is the coefficient count past which NTT-accelerated
// multiplication/division starts winning over schoolbook, used by
// mulFull and NttPartialExtendedEuclidean to pick the NTT path.
const nttMulThreshold = 256

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// revTop reverses the top L coefficients: rev_L(f) = x^(L-1) * f(1/x)
// truncated to L terms, using the true degree (ignoring trailing zeros).
func (r *DensePolyRing) revTop(f *Polynomial, L int) *Polynomial {
	out := &Polynomial{f: r.PrimeField, isNTT: false}
	if L <= 0 {
		return out
	}
	out.inner = make([]uint64, L)

	n := f.Degree()
	if n < 0 {
		return out
	}

	for i := 0; i < L; i++ {
		if j := n - i; j >= 0 {
			out.inner[i] = r.Reduce(f.inner[j])
		}
	}
	return out
}

// mulTrunc computes the low L coefficients of a*b via NTT: pads both
// operands to a power-of-two transform size, multiplies pointwise, and
// truncates the inverse transform to L terms.
func (r *DensePolyRing) mulTrunc(a, b *Polynomial, L int) *Polynomial {
	out := &Polynomial{f: r.PrimeField, isNTT: false}
	if L <= 0 || a == nil || b == nil {
		out.inner = []uint64{0}
		return out
	}

	la := min(len(a.inner), L)
	lb := min(len(b.inner), L)
	if la == 0 || lb == 0 {
		out.inner = []uint64{0}
		return out
	}

	total := la + lb - 1
	convLen := min(L, total)
	n := nextPow2(total)

	aBuf := &Polynomial{f: r.PrimeField, inner: make([]uint64, n)}
	for i := 0; i < la; i++ {
		aBuf.inner[i] = r.Reduce(a.inner[i])
	}
	bBuf := &Polynomial{f: r.PrimeField, inner: make([]uint64, n)}
	for i := 0; i < lb; i++ {
		bBuf.inner[i] = r.Reduce(b.inner[i])
	}

	if err := r.NttForward(aBuf); err != nil {
		panic(err)
	}
	if err := r.NttForward(bBuf); err != nil {
		panic(err)
	}

	for i := 0; i < n; i++ {
		aBuf.inner[i] = r.Mul(aBuf.inner[i], bBuf.inner[i])
	}

	if err := r.nttBackwardNoTrim(aBuf); err != nil {
		panic(err)
	}

	out.inner = aBuf.inner[:convLen]
	return out
}

// seriesInverse computes t such that b*t = 1 (mod x^k) via Newton
// iteration, doubling precision each step. Requires b.inner[0] != 0.
func (r *DensePolyRing) seriesInverse(b *Polynomial, k int) *Polynomial {
	if k <= 0 {
		return &Polynomial{f: r.PrimeField, inner: []uint64{0}}
	}
	b0 := r.Reduce(b.inner[0])
	if b0 == 0 {
		panic("modular: seriesInverse constant term is zero")
	}

	t := &Polynomial{f: r.PrimeField, inner: []uint64{r.Inverse(b0)}}
	two := r.Reduce(2)

	for l := 1; l < k; {
		m := l << 1
		if m > k {
			m = k
		}

		tmp := r.mulTrunc(b, t, m)
		if len(tmp.inner) < m {
			z := make([]uint64, m)
			copy(z, tmp.inner)
			tmp.inner = z
		}
		tmp.inner[0] = r.Sub(two, tmp.inner[0])
		for i := 1; i < m; i++ {
			tmp.inner[i] = r.Neg(tmp.inner[i])
		}

		t = r.mulTrunc(t, tmp, m)
		l = m
	}
	return t
}

// mulFull computes a*b in coefficient domain, using NTT when the
// combined length clears nttMulThreshold and schoolbook otherwise.
func (r *DensePolyRing) mulFull(a, b *Polynomial) *Polynomial {
	la, lb := len(a.inner), len(b.inner)
	if la == 0 || lb == 0 {
		return r.Zero()
	}
	total := la + lb - 1
	if total >= nttMulThreshold {
		return r.mulTrunc(a, b, total)
	}
	return r.MulPoly(a, b)
}

// LongDivNTT follows section 9.1 of von zur Gathen & Gerhard's Modern
// Computer Algebra: reverse both operands, invert the reversed divisor
// mod x^k via Newton iteration, multiply, and reverse back. Faster than
// LongDiv once operand sizes clear nttMulThreshold.
func (r *DensePolyRing) LongDivNTT(a, b *Polynomial) (q, rem *Polynomial) {
	if a == nil || b == nil || a.isNTT || b.isNTT {
		panic("modular: LongDivNTT expects non-nil coefficient-domain polynomials")
	}
	n := a.Degree()
	m := b.Degree()
	if m < 0 {
		panic("modular: division by the zero polynomial")
	}
	if n < m {
		return r.Zero(), a.Copy()
	}

	k := n - m + 1

	aStar := r.revTop(a, k)
	bStar := r.revTop(b, m+1)
	if r.Reduce(bStar.inner[0]) == 0 {
		panic("modular: division by polynomial with zero leading coefficient")
	}

	t := r.seriesInverse(bStar, k)
	qStar := r.mulTrunc(aStar, t, k)
	q = r.revTop(qStar, k)

	prod := r.mulTrunc(q, b, n+1)
	rem = r.SubPoly(a, prod)
	r.trimTrailingZeros(rem)

	return q, rem
}

// NttPartialExtendedEuclidean is PartialExtendedEuclidean with
// NTT-accelerated division/multiplication once operand sizes clear
// nttMulThreshold. DensePolyRing.Gcd, the univariate base case of the
// gcd drivers, uses the plain PartialExtendedEuclidean instead.
func (r *DensePolyRing) NttPartialExtendedEuclidean(a, b *Polynomial, stopDegree int) (gcd, x, y *Polynomial) {
	A := a.Copy()
	B := b.Copy()
	A.isNTT, B.isNTT = false, false

	x0, x1 := r.Constant(1), r.Constant(0)
	y0, y1 := r.Constant(0), r.Constant(1)

	for A.Degree() >= stopDegree {
		if B.Degree() < 0 {
			break
		}

		var q, rrem *Polynomial
		if len(A.inner)+len(B.inner) >= nttMulThreshold {
			q, rrem = r.LongDivNTT(A, B)
		} else {
			q, rrem = r.LongDiv(A, B)
		}
		A, B = B, rrem

		x0, x1 = x1, r.SubPoly(x0, r.mulFull(q, x1))
		y0, y1 = y1, r.SubPoly(y0, r.mulFull(q, y1))
	}

	return A, x0, y0
}
