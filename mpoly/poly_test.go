package mpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-mpoly/bigint"
)

// buildNmodPoly constructs 2*x^2*y + 3*x*y^2 + 5 (nmod) from individually
// pushed, out-of-order terms, exercising SortAndCombine.
func buildNmodPoly(t *testing.T, ctx *Context[uint64]) *Poly[uint64] {
	t.Helper()
	p := NewPoly(ctx)
	term(t, ctx, p, 5, 0, 0, 0)
	term(t, ctx, p, 3, 1, 2, 0)
	term(t, ctx, p, 2, 2, 1, 0)
	p.SortAndCombine()
	return p
}

func TestSortAndCombineOrdersDescendingAndMerges(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, 2, 2, 1, 0)
	term(t, ctx, p, 3, 1, 2, 0)
	term(t, ctx, p, 1, 2, 1, 0) // duplicate monomial of the first term
	term(t, ctx, p, 5, 0, 0, 0)
	p.SortAndCombine()

	require.Equal(t, 3, p.Len())
	assert.Equal(t, uint64(3), p.Coeffs[0]) // 2+1 merged
	assert.Equal(t, uint64(3), p.Coeffs[1])
	assert.Equal(t, uint64(5), p.Coeffs[2])
}

func TestSortAndCombineDropsZeroSum(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, 7, 1, 0, 0)
	term(t, ctx, p, testPrime-7, 1, 0, 0)
	p.SortAndCombine()

	assert.Equal(t, 0, p.Len())
	assert.True(t, p.IsZero())
}

func TestAddSubScalarMulNeg(t *testing.T) {
	ctx := newNmodCtx(t)
	a := buildNmodPoly(t, ctx)

	sum := a.Add(a)
	for i := range sum.Coeffs {
		assert.Equal(t, (a.Coeffs[i]*2)%testPrime, sum.Coeffs[i])
	}

	diff := a.Sub(a)
	assert.True(t, diff.IsZero())

	scaled := a.ScalarMul(2)
	assert.True(t, scaled.Equal(sum))

	neg := a.Neg()
	assert.True(t, a.Add(neg).IsZero())
}

func TestDerivative(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, 1, 2, 0, 0) // x^2
	p.SortAndCombine()

	d := p.Derivative(0)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, uint64(2), d.Coeffs[0]) // d/dx x^2 = 2x

	dy := p.Derivative(1)
	assert.True(t, dy.IsZero())
}

func TestTotalDegreeAndDegree(t *testing.T) {
	ctx := newNmodCtx(t)
	p := buildNmodPoly(t, ctx) // terms of degree 3, 3, 0

	assert.Equal(t, 3, p.TotalDegree())
	assert.Equal(t, 2, p.Degree(0)) // x^2*y contributes x-exponent 2
	assert.Equal(t, 2, p.Degree(1)) // 3*x*y^2 contributes y-exponent 2
	assert.Equal(t, 0, p.Degree(2)) // z never appears, but the poly is nonempty

	assert.Equal(t, -1, NewPoly(ctx).TotalDegree())
}

func TestGetCoeffAtMonomialAndSetTermCoeff(t *testing.T) {
	ctx := newNmodCtx(t)
	p := buildNmodPoly(t, ctx)

	exp, err := ctx.Mon.Pack([]uint64{2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), p.GetCoeffAtMonomial(exp))

	constExp, err := ctx.Mon.Pack([]uint64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), p.GetCoeffAtMonomial(constExp))

	missing, err := ctx.Mon.Pack([]uint64{0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.GetCoeffAtMonomial(missing))

	p.SetTermCoeff(missing, 9)
	assert.Equal(t, uint64(9), p.GetCoeffAtMonomial(missing))
	require.Equal(t, 4, p.Len())

	p.SetTermCoeff(missing, 0)
	assert.Equal(t, uint64(0), p.GetCoeffAtMonomial(missing))
	require.Equal(t, 3, p.Len())
}

func TestContentAndDivExactScalar(t *testing.T) {
	ctx := newBigCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, bi(6), 1, 0, 0)
	term(t, ctx, p, bi(9), 0, 1, 0)
	term(t, ctx, p, bi(15), 0, 0, 1)
	p.SortAndCombine()

	c := Content[*big.Int](p, bigint.Ring{})
	assert.Equal(t, bi(3), c)

	reduced := p.DivExactScalar(c)
	xExp, err := ctx.Mon.Pack([]uint64{1, 0, 0})
	require.NoError(t, err)
	yExp, err := ctx.Mon.Pack([]uint64{0, 1, 0})
	require.NoError(t, err)
	zExp, err := ctx.Mon.Pack([]uint64{0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, bi(2), reduced.GetCoeffAtMonomial(xExp))
	assert.Equal(t, bi(3), reduced.GetCoeffAtMonomial(yExp))
	assert.Equal(t, bi(5), reduced.GetCoeffAtMonomial(zExp))
}
