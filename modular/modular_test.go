package modular

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrime = 1009 // matches the modulus used throughout spec scenarios S1-S6

func newTestField(t *testing.T) *PrimeField {
	t.Helper()
	f, err := NewPrimeField(testPrime)
	require.NoError(t, err)
	return f
}

func TestFieldArithmetic(t *testing.T) {
	f := newTestField(t)

	assert.Equal(t, uint64(5), f.Add(testPrime-2, 7))
	assert.Equal(t, uint64(testPrime-1), f.Sub(0, 1))
	assert.Equal(t, uint64(1), f.Mul(f.Inverse(7), 7))
	assert.Equal(t, uint64(1), f.Pow(7, 0))

	for a := uint64(1); a < 20; a++ {
		got := f.Mul(a, f.Inverse(a))
		assert.Equal(t, uint64(1), got, "a=%d", a)
	}
}

func TestFieldInverseZeroPanics(t *testing.T) {
	f := newTestField(t)
	assert.Panics(t, func() { f.Inverse(0) })
}

func TestAccumulatorMatchesNaiveSum(t *testing.T) {
	f := newTestField(t)
	rng := rand.New(rand.NewSource(1))

	acc := f.NewAccumulator()
	want := uint64(0)
	for i := 0; i < 200; i++ {
		a := rng.Uint64() % testPrime
		b := rng.Uint64() % testPrime
		acc.AddProduct(a, b)
		want = f.Add(want, f.Mul(a, b))
	}

	assert.Equal(t, want, acc.Value())
}

func TestAccumulatorSubProduct(t *testing.T) {
	f := newTestField(t)
	acc := f.NewAccumulator()
	acc.AddProduct(10, 10)
	acc.SubProduct(3, 3)
	assert.Equal(t, f.Sub(f.Mul(10, 10), f.Mul(3, 3)), acc.Value())
}

func TestLongDiv(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)

	// a = x^3 + 2x + 1, b = x + 1
	a := NewPolynomial(f, []uint64{1, 2, 0, 1}, false)
	b := NewPolynomial(f, []uint64{1, 1}, false)

	q, rem := r.LongDiv(a, b)

	reconstructed := r.AddPoly(r.MulPoly(q, b), rem)
	assert.True(t, a.Equals(reconstructed))
	assert.True(t, rem.Degree() < b.Degree())
}

func TestLongDivNTTMatchesLongDiv(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)
	rng := rand.New(rand.NewSource(2))

	aInner := make([]uint64, 40)
	for i := range aInner {
		aInner[i] = rng.Uint64() % testPrime
	}
	bInner := make([]uint64, 7)
	for i := range bInner {
		bInner[i] = rng.Uint64() % testPrime
	}
	bInner[len(bInner)-1] = 1 // ensure a nonzero, invertible leading coeff

	a := NewPolynomial(f, aInner, false)
	b := NewPolynomial(f, bInner, false)

	qSlow, rSlow := r.LongDiv(a.Copy(), b.Copy())
	qFast, rFast := r.LongDivNTT(a.Copy(), b.Copy())

	assert.True(t, qSlow.Equals(qFast))
	assert.True(t, rSlow.Equals(rFast))
}

func TestNttRoundTrip(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)

	inner := make([]uint64, 16)
	for i := range inner {
		inner[i] = uint64(i + 1)
	}
	p := NewPolynomial(f, inner, false)
	orig := p.Copy()

	require.NoError(t, r.NttForward(p))
	assert.True(t, p.IsNTT())
	require.NoError(t, r.NttBackward(p))

	assert.True(t, orig.Equals(p))
}

func TestGcdDividesBoth(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)

	// common factor (x - 3); a = (x-3)(x-5), b = (x-3)(x+2)
	common := NewPolynomial(f, []uint64{f.Neg(3), 1}, false)
	a := r.MulPoly(common, NewPolynomial(f, []uint64{f.Neg(5), 1}, false))
	b := r.MulPoly(common, NewPolynomial(f, []uint64{2, 1}, false))

	g := r.Gcd(a, b)
	assert.Equal(t, 1, g.Degree())

	_, rem := r.LongDiv(a, g)
	assert.True(t, rem.IsZero())
	_, rem = r.LongDiv(b, g)
	assert.True(t, rem.IsZero())
}

func TestInterpolateReconstructsPolynomial(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)
	interp := NewInterpolator(r)

	// p(x) = 3 + 2x + 5x^2
	p := NewPolynomial(f, []uint64{3, 2, 5}, false)

	xs := []uint64{1, 2, 3}
	ys := make([]uint64, len(xs))
	for i, x := range xs {
		ys[i] = r.Evaluate(p, x)
	}

	got, err := interp.Interpolate(xs, ys)
	require.NoError(t, err)
	assert.True(t, p.Equals(got))
}

func TestInterpolateRejectsDuplicatePoints(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)
	interp := NewInterpolator(r)

	_, err := interp.Interpolate([]uint64{1, 1}, []uint64{2, 3})
	assert.ErrorIs(t, err, ErrNonUniqueXs)
}

func TestProductOfRoots(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)

	p := r.ProductOfRoots([]uint64{1, 2, 3})
	for _, root := range []uint64{1, 2, 3} {
		assert.Equal(t, uint64(0), r.Evaluate(p, root))
	}
}

func TestResultantZeroWhenSharedRoot(t *testing.T) {
	f := newTestField(t)
	r := NewDensePolyRing(f)

	common := NewPolynomial(f, []uint64{f.Neg(4), 1}, false)
	a := r.MulPoly(common, NewPolynomial(f, []uint64{1, 1}, false))
	b := r.MulPoly(common, NewPolynomial(f, []uint64{2, 1}, false))

	assert.Equal(t, uint64(0), r.Resultant(a, b))
}

func BenchmarkMulFullNTT(b *testing.B) {
	f, _ := NewPrimeField(testPrime)
	r := NewDensePolyRing(f)
	rng := rand.New(rand.NewSource(3))

	inner := make([]uint64, 512)
	for i := range inner {
		inner[i] = rng.Uint64() % testPrime
	}
	p := NewPolynomial(f, inner, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.mulFull(p, p)
	}
}
