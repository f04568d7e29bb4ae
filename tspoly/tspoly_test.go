package tspoly_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/monomial"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
	"github.com/jonathanmweiss/go-mpoly/tspoly"
)

func zCtx1(t *testing.T) *mpoly.Context[*big.Int] {
	t.Helper()
	mon, err := monomial.NewContext(1, monomial.Lex, 24)
	require.NoError(t, err)
	return mpoly.NewContext[*big.Int](mon, bigint.Ring{})
}

func linear1(t *testing.T, ctx *mpoly.Context[*big.Int], e uint64, coeff int64) *mpoly.Poly[*big.Int] {
	t.Helper()
	exp, err := ctx.Mon.Pack([]uint64{e})
	require.NoError(t, err)
	p := mpoly.NewPoly(ctx)
	p.PushTerm(big.NewInt(coeff), exp)
	return p
}

func TestTSPolyNewFromPolyAndTerm(t *testing.T) {
	ctx := zCtx1(t)
	p := linear1(t, ctx, 1, 1).Add(linear1(t, ctx, 0, -1)) // x - 1

	ts := tspoly.NewFromPoly(p)
	require.Equal(t, p.Len(), ts.Len())
	for i := 0; i < p.Len(); i++ {
		c, exp := ts.Term(i)
		assert.Equal(t, p.TermCoeff(i), c)
		assert.Equal(t, p.ExpAt(i), exp)
	}
}

func TestTSPolyAppendAndSteal(t *testing.T) {
	ctx := zCtx1(t)
	ts := tspoly.New[*big.Int]()

	exp1, err := ctx.Mon.Pack([]uint64{2})
	require.NoError(t, err)
	exp0, err := ctx.Mon.Pack([]uint64{1})
	require.NoError(t, err)

	ts.Append([]*big.Int{big.NewInt(3)}, [][]uint64{exp1})
	ts.Append([]*big.Int{big.NewInt(5)}, [][]uint64{exp0})

	require.Equal(t, 2, ts.Len())
	c0, e0 := ts.Term(0)
	assert.Equal(t, big.NewInt(3), c0)
	assert.Equal(t, exp1, e0)

	out := ts.Steal(ctx)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 0, ts.Len())
}

func TestTSPolySnapshotPolyDoesNotClear(t *testing.T) {
	ctx := zCtx1(t)
	p := linear1(t, ctx, 1, 7)
	ts := tspoly.NewFromPoly(p)

	snap := ts.SnapshotPoly(ctx)
	require.Equal(t, 1, snap.Len())
	require.Equal(t, 1, ts.Len()) // unaffected by SnapshotPoly
}
