package mpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalFixture builds x^2*y + 3*y^2 + 7.
func evalFixture(t *testing.T, ctx *Context[uint64]) *Poly[uint64] {
	t.Helper()
	p := NewPoly(ctx)
	term(t, ctx, p, 1, 2, 1, 0)
	term(t, ctx, p, 3, 0, 2, 0)
	term(t, ctx, p, 7, 0, 0, 0)
	p.SortAndCombine()
	return p
}

func TestEvaluateAll(t *testing.T) {
	ctx := newNmodCtx(t)
	p := evalFixture(t, ctx)

	got := p.EvaluateAll([]uint64{2, 3, 5})
	assert.Equal(t, uint64(46), got) // 4*3 + 3*9 + 7 = 46
}

func TestEvaluateOneSubstitutesAndKeepsOthers(t *testing.T) {
	ctx := newNmodCtx(t)
	p := evalFixture(t, ctx)

	result := p.EvaluateOne(1, 3) // substitute y=3

	require.Equal(t, 2, result.Len())

	xExp, err := ctx.Mon.Pack([]uint64{2, 0, 0})
	require.NoError(t, err)
	constExp, err := ctx.Mon.Pack([]uint64{0, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), result.GetCoeffAtMonomial(xExp))
	assert.Equal(t, uint64(34), result.GetCoeffAtMonomial(constExp)) // 3*9+7
}

func TestEvaluateOneThenEvaluateAllMatchesDirect(t *testing.T) {
	ctx := newNmodCtx(t)
	p := evalFixture(t, ctx)

	partial := p.EvaluateOne(1, 3)
	got := partial.EvaluateAll([]uint64{2, 0, 0})

	want := p.EvaluateAll([]uint64{2, 3, 0})
	assert.Equal(t, want, got)
}
