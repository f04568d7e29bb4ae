package mpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulMatchesHandComputedProduct(t *testing.T) {
	ctx := newNmodCtx(t)

	// (x + y) * (x - y) = x^2 - y^2
	a := NewPoly(ctx)
	term(t, ctx, a, 1, 1, 0, 0)
	term(t, ctx, a, 1, 0, 1, 0)
	a.SortAndCombine()

	b := NewPoly(ctx)
	term(t, ctx, b, 1, 1, 0, 0)
	term(t, ctx, b, testPrime-1, 0, 1, 0)
	b.SortAndCombine()

	got := a.Mul(b)

	want := NewPoly(ctx)
	term(t, ctx, want, 1, 2, 0, 0)
	term(t, ctx, want, testPrime-1, 0, 2, 0)
	want.SortAndCombine()

	assert.True(t, got.Equal(want))
}

func TestMulWithZeroOperand(t *testing.T) {
	ctx := newNmodCtx(t)
	a := buildNmodPoly(t, ctx)
	zero := NewPoly(ctx)

	assert.True(t, a.Mul(zero).IsZero())
	assert.True(t, zero.Mul(a).IsZero())
}

func TestDivRemExactDivision(t *testing.T) {
	ctx := newNmodCtx(t)

	// (x^2 - y^2) / (x - y) = x + y, remainder 0
	dividend := NewPoly(ctx)
	term(t, ctx, dividend, 1, 2, 0, 0)
	term(t, ctx, dividend, testPrime-1, 0, 2, 0)
	dividend.SortAndCombine()

	divisor := NewPoly(ctx)
	term(t, ctx, divisor, 1, 1, 0, 0)
	term(t, ctx, divisor, testPrime-1, 0, 1, 0)
	divisor.SortAndCombine()

	q, rem := dividend.DivRem(divisor)
	assert.True(t, rem.IsZero())

	recombined := q.Mul(divisor)
	assert.True(t, recombined.Equal(dividend))

	quotient, ok := dividend.Divides(divisor)
	require.True(t, ok)
	assert.True(t, quotient.Equal(q))
}

func TestDivRemWithNonzeroRemainder(t *testing.T) {
	ctx := newNmodCtx(t)

	// x^2 + 1 divided by x leaves quotient x, remainder 1.
	dividend := NewPoly(ctx)
	term(t, ctx, dividend, 1, 2, 0, 0)
	term(t, ctx, dividend, 1, 0, 0, 0)
	dividend.SortAndCombine()

	divisor := NewPoly(ctx)
	term(t, ctx, divisor, 1, 1, 0, 0)
	divisor.SortAndCombine()

	q, rem := dividend.DivRem(divisor)
	require.Equal(t, 1, q.Len())
	require.Equal(t, 1, rem.Len())
	assert.Equal(t, uint64(1), rem.Coeffs[0])

	_, ok := dividend.Divides(divisor)
	assert.False(t, ok)
}

func TestMulSub(t *testing.T) {
	ctx := newNmodCtx(t)
	a := buildNmodPoly(t, ctx)
	b := buildNmodPoly(t, ctx)

	c := a.Mul(b)
	result := c.MulSub(a, b)
	assert.True(t, result.IsZero())
}
