package mpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUnivarFromUnivarRoundTrip(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, 5, 0, 1, 0) // 5y
	term(t, ctx, p, 2, 2, 1, 0) // 2x^2y
	term(t, ctx, p, 3, 4, 1, 0) // 3x^4y
	p.SortAndCombine()

	u := p.ToUnivar(0)
	require.Len(t, u.Terms, 3)
	assert.Equal(t, uint64(4), u.Terms[0].Exp) // descending
	assert.Equal(t, uint64(2), u.Terms[1].Exp)
	assert.Equal(t, uint64(0), u.Terms[2].Exp)

	back := FromUnivar(u)
	assert.True(t, back.Equal(p))
}

func TestDeflateInflateRoundTrip(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	term(t, ctx, p, 1, 2, 4, 0)
	term(t, ctx, p, 2, 6, 8, 0)
	p.SortAndCombine()

	shift, stride := p.DeflationStrides()
	assert.Equal(t, []uint64{2, 4, 0}, shift)
	assert.Equal(t, []uint64{4, 4, 1}, stride)

	deflated := p.Deflate(shift, stride)
	reinflated := deflated.Inflate(shift, stride)
	assert.True(t, reinflated.Equal(p))

	exp, err := ctx.Mon.Pack([]uint64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), deflated.GetCoeffAtMonomial(exp))
}

func TestDeflationStridesOnEmptyPoly(t *testing.T) {
	ctx := newNmodCtx(t)
	p := NewPoly(ctx)
	shift, stride := p.DeflationStrides()
	assert.Equal(t, []uint64{0, 0, 0}, shift)
	assert.Equal(t, []uint64{0, 0, 0}, stride)
}
