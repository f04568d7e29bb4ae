package modular

import "errors"

// Interpolator reconstructs a dense univariate polynomial from point
// samples via Lagrange interpolation. Interpolation and transposed-
// Vandermonde solving are dual problems over the same evaluation points,
// but gcd/vandermonde.go's solver builds on DensePolyRing directly and the
// gcd package does not call Interpolator.
type Interpolator struct {
	ring *DensePolyRing
}

func NewInterpolator(r *DensePolyRing) *Interpolator {
	return &Interpolator{ring: r}
}

var (
	ErrPointsSizeMismatch = errors.New("modular: interpolation points size mismatch")
	ErrNonUniqueXs        = errors.New("modular: non-unique interpolation x values")
)

// Interpolate returns the unique polynomial of degree < len(xs) passing
// through (xs[i], ys[i]), following the standard optimized Lagrange
// construction:
//
//  1. m(x) = prod_i (x - x_i)
//  2. q_i(x) = m(x) / (x - x_i), an O(n) fast division since the divisor
//     has degree 1
//  3. l_i(x) = q_i(x) / q_i(x_i)
//  4. result = sum_i y_i * l_i(x)
//
// Total cost is O(n^2).
func (in *Interpolator) Interpolate(xs, ys []uint64) (*Polynomial, error) {
	if err := validateInterpolationPoints(xs, ys); err != nil {
		return nil, err
	}

	r := in.ring
	miSlice := in.createMiSlice(xs)

	m := r.Constant(1)
	for _, mi := range miSlice {
		m = r.MulPoly(m, mi)
	}

	liSlice := make([]*Polynomial, len(xs))
	for i, mi := range miSlice {
		qi := in.mDivMi(m, mi)
		s := r.Evaluate(qi, xs[i])
		sInv := r.Inverse(s)
		liSlice[i] = r.MulScalar(qi, sInv)
	}

	for i := range liSlice {
		liSlice[i] = r.MulScalar(liSlice[i], ys[i])
	}

	return in.similarDegreePolySum(liSlice), nil
}

func (in *Interpolator) similarDegreePolySum(polys []*Polynomial) *Polynomial {
	r := in.ring
	n := 0
	for _, p := range polys {
		if len(p.inner) > n {
			n = len(p.inner)
		}
	}

	inner := make([]uint64, n)
	for _, p := range polys {
		for i, c := range p.inner {
			inner[i] = r.Add(inner[i], c)
		}
	}

	out := NewPolynomial(r.PrimeField, inner, false)
	r.trimTrailingZeros(out)
	return out
}

// createMiSlice builds the m_i(x) = (x - x_i) linear factors.
func (in *Interpolator) createMiSlice(xs []uint64) []*Polynomial {
	r := in.ring
	miSlice := make([]*Polynomial, len(xs))
	for i, x := range xs {
		miSlice[i] = NewPolynomial(r.PrimeField, []uint64{r.Neg(r.Reduce(x)), 1}, false)
	}
	return miSlice
}

// mDivMi divides m by mi in O(n), exploiting deg(mi) == 1 and the fact
// that the division is known to be exact (no remainder).
func (in *Interpolator) mDivMi(m, mi *Polynomial) *Polynomial {
	r := in.ring
	mCopy := m.Copy()
	qInner := make([]uint64, len(mCopy.inner)-1)
	ui := mi.inner[0]

	for i := len(mCopy.inner) - 1; i > 0; i-- {
		qInner[i-1] = mCopy.inner[i]
		tmp := r.Neg(r.Mul(mCopy.inner[i], ui))
		mCopy.inner[i-1] = r.Add(tmp, mCopy.inner[i-1])
	}

	return NewPolynomial(r.PrimeField, qInner, false)
}

func validateInterpolationPoints(xs, ys []uint64) error {
	if len(xs) != len(ys) {
		return ErrPointsSizeMismatch
	}

	seen := make(map[uint64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	if len(seen) != len(xs) {
		return ErrNonUniqueXs
	}

	return nil
}
