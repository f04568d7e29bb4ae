package tspoly_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-mpoly/mpoly"
	"github.com/jonathanmweiss/go-mpoly/tspoly"
)

// productOfLinears builds prod_{r=lo}^{hi} (x - r) over a 1-variable Lex context.
func productOfLinears(t *testing.T, ctx *mpoly.Context[*big.Int], lo, hi int64) *mpoly.Poly[*big.Int] {
	t.Helper()
	out := linear1(t, ctx, 0, 1) // constant 1
	for r := lo; r <= hi; r++ {
		out = out.Mul(linear1(t, ctx, 1, 1).Add(linear1(t, ctx, 0, -r)))
	}
	return out
}

func TestDivideChunkedExactDivision(t *testing.T) {
	ctx := zCtx1(t)
	d := productOfLinears(t, ctx, 1, 6) // (x-1)...(x-6)
	b := linear1(t, ctx, 1, 1).Add(linear1(t, ctx, 0, -1)) // x - 1
	want := productOfLinears(t, ctx, 2, 6)

	q, ok, err := tspoly.DivideChunked(d, b, 0, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, q.Equal(want))
}

func TestDivideChunkedNonExactDivision(t *testing.T) {
	ctx := zCtx1(t)
	d := linear1(t, ctx, 2, 1).Add(linear1(t, ctx, 0, 1)) // x^2 + 1
	b := linear1(t, ctx, 1, 1).Add(linear1(t, ctx, 0, -1)) // x - 1

	q, ok, err := tspoly.DivideChunked(d, b, 0, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, q)
}

func TestDivideChunkedZeroDividend(t *testing.T) {
	ctx := zCtx1(t)
	d := mpoly.NewPoly(ctx)
	b := linear1(t, ctx, 1, 1)

	q, ok, err := tspoly.DivideChunked(d, b, 0, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, q.IsZero())
}

func TestDivideChunkedSingleChunkMatchesDivides(t *testing.T) {
	ctx := zCtx1(t)
	d := productOfLinears(t, ctx, 1, 4)
	b := linear1(t, ctx, 1, 1).Add(linear1(t, ctx, 0, -2)) // x - 2

	want, ok := d.Divides(b)
	require.True(t, ok)

	q, ok, err := tspoly.DivideChunked(d, b, 0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, q.Equal(want))
}
