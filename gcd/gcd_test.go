package gcd_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/gcd"
	"github.com/jonathanmweiss/go-mpoly/monomial"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

func zCtx(t *testing.T, nvars int) *mpoly.Context[*big.Int] {
	t.Helper()
	mon, err := monomial.NewContext(nvars, monomial.DegRevLex, 24)
	require.NoError(t, err)
	return mpoly.NewContext[*big.Int](mon, bigint.Ring{})
}

func bi(v int64) *big.Int { return big.NewInt(v) }

// term3 builds a single-term polynomial over a 3-variable context (x, y, z).
func term3(t *testing.T, ctx *mpoly.Context[*big.Int], coeff int64, ex, ey, ez uint64) *mpoly.Poly[*big.Int] {
	t.Helper()
	exp, err := ctx.Mon.Pack([]uint64{ex, ey, ez})
	require.NoError(t, err)
	p := mpoly.NewPoly(ctx)
	p.PushTerm(bi(coeff), exp)
	return p
}

func sum(t *testing.T, ctx *mpoly.Context[*big.Int], terms ...*mpoly.Poly[*big.Int]) *mpoly.Poly[*big.Int] {
	t.Helper()
	out := mpoly.NewPoly(ctx)
	for _, term := range terms {
		out = out.Add(term)
	}
	out.SortAndCombine()
	return out
}

// powerSum3 builds x^d + y^d + z^d.
func powerSum3(t *testing.T, ctx *mpoly.Context[*big.Int], d uint64) *mpoly.Poly[*big.Int] {
	t.Helper()
	return sum(t, ctx,
		term3(t, ctx, 1, d, 0, 0),
		term3(t, ctx, 1, 0, d, 0),
		term3(t, ctx, 1, 0, 0, d),
	)
}

// TestGcdBrownScenarioS1 mirrors spec scenario S1: gcd((x^3+y^3+z^3)*T,
// (x^5+y^5+z^5)*T) == T where T = x^7+y^7+z^7.
func TestGcdBrownScenarioS1(t *testing.T) {
	ctx := zCtx(t, 3)
	a := powerSum3(t, ctx, 3)
	b := powerSum3(t, ctx, 5)
	tpoly := powerSum3(t, ctx, 7)

	at := a.Mul(tpoly)
	bt := b.Mul(tpoly)

	g := gcd.GcdBrown(at, bt)
	assert.True(t, g.Equal(tpoly))
}

// TestGcdBrownScenarioS2 mirrors spec scenario S2: two polynomials
// differing only in the coefficient of their shared linear term are
// coprime.
func TestGcdBrownScenarioS2(t *testing.T) {
	ctx := zCtx(t, 3)
	a := sum(t, ctx, term3(t, ctx, 1, 2, 1, 0), term3(t, ctx, 1, 1, 2, 0), term3(t, ctx, 1, 0, 0, 1))
	b := sum(t, ctx, term3(t, ctx, 1, 2, 1, 0), term3(t, ctx, 1, 1, 2, 0), term3(t, ctx, 2, 0, 0, 1))

	g := gcd.GcdBrown(a, b)
	require.Equal(t, 1, g.Len())
	assert.Equal(t, bi(1), g.LeadCoeff())
	assert.Equal(t, 0, g.TotalDegree())
}

// TestGcdZippelScenarioS1 exercises the sparse path on the same
// scenario as TestGcdBrownScenarioS1.
func TestGcdZippelScenarioS1(t *testing.T) {
	ctx := zCtx(t, 3)
	a := powerSum3(t, ctx, 3)
	b := powerSum3(t, ctx, 5)
	tpoly := powerSum3(t, ctx, 7)

	at := a.Mul(tpoly)
	bt := b.Mul(tpoly)

	rng := rand.New(rand.NewSource(7))
	g := gcd.GcdZippel(at, bt, rng)
	assert.True(t, g.Equal(tpoly))
}

// TestDividesScenarioS4 mirrors spec scenario S4: divides(x^2 y^2 z^2,
// x y z) == (true, x y z).
func TestDividesScenarioS4(t *testing.T) {
	ctx := zCtx(t, 3)
	a := term3(t, ctx, 1, 1, 1, 1)
	b := term3(t, ctx, 1, 2, 2, 2)

	q, ok := gcd.Divides(b, a)
	require.True(t, ok)
	assert.True(t, q.Equal(a))
}

// TestDividesScenarioS5 mirrors spec scenario S5: a divisor exponent
// so large it cannot even be packed into the monomial's field width is
// rejected outright, the "not realisable as a quotient monomial"
// outcome one layer below Divides itself.
func TestDividesScenarioS5(t *testing.T) {
	mon, err := monomial.NewContext(1, monomial.Lex, 8) // 8-bit field, max exponent 127
	require.NoError(t, err)

	_, err = mon.Pack([]uint64{1 << 20})
	assert.Error(t, err)
}
