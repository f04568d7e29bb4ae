// Package mpoly implements sparse distributed multivariate polynomials
// over a generic coefficient ring: the packed-monomial container, the
// heap-scheduled multiply/divide kernel (Monagan-Pearce), the
// univariate-with-multivariate-coefficients view, and the evaluator.
package mpoly

import (
	"github.com/jonathanmweiss/go-mpoly/monomial"
	"github.com/jonathanmweiss/go-mpoly/ring"
)

// Context binds a monomial packing layout to a coefficient ring; every
// Poly[T] built from it shares the same variable count, order, and
// field-bit-width.
type Context[T any] struct {
	Mon *monomial.Context
	R   ring.AccumulatorRing[T]
}

func NewContext[T any](mon *monomial.Context, r ring.AccumulatorRing[T]) *Context[T] {
	return &Context[T]{Mon: mon, R: r}
}

func (c *Context[T]) NVars() int { return c.Mon.NVars }
func (c *Context[T]) N() int     { return c.Mon.N }
