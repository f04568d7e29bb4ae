package mpoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-mpoly/bigint"
	"github.com/jonathanmweiss/go-mpoly/modular"
	"github.com/jonathanmweiss/go-mpoly/monomial"
)

const testPrime = 1009

// newNmodCtx builds a 3-variable (x, y, z) degrevlex context over Z/1009Z,
// matching the scenario modulus and order used throughout spec.md's
// worked examples.
func newNmodCtx(t *testing.T) *Context[uint64] {
	t.Helper()
	mon, err := monomial.NewContext(3, monomial.DegRevLex, 16)
	require.NoError(t, err)
	field, err := modular.NewPrimeField(testPrime)
	require.NoError(t, err)
	return NewContext[uint64](mon, modular.NewFieldRing(field))
}

func newBigCtx(t *testing.T) *Context[*big.Int] {
	t.Helper()
	mon, err := monomial.NewContext(3, monomial.DegRevLex, 16)
	require.NoError(t, err)
	return NewContext[*big.Int](mon, bigint.Ring{})
}

// term is a small test helper: pushes a single (coeff, x, y, z) term.
func term[T any](t *testing.T, ctx *Context[T], p *Poly[T], coeff T, x, y, z uint64) {
	t.Helper()
	exp, err := ctx.Mon.Pack([]uint64{x, y, z})
	require.NoError(t, err)
	p.PushTerm(coeff, exp)
}

func bi(v int64) *big.Int { return big.NewInt(v) }
