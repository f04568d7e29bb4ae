package mpoly

import (
	"golang.org/x/exp/slices"
)

// Poly is a sparse distributed multivariate polynomial: a list of terms,
// each a coefficient in T paired with a packed exponent vector, kept in
// strictly descending monomial order after SortAndCombine. Coeffs and
// Exps grow independently (exps_alloc/coeffs_alloc in FLINT's terms),
// since Exps holds N words per term while Coeffs holds exactly one T.
type Poly[T any] struct {
	Ctx    *Context[T]
	Coeffs []T
	Exps   []uint64 // flattened, N words per term
}

func NewPoly[T any](ctx *Context[T]) *Poly[T] {
	return &Poly[T]{Ctx: ctx}
}

// Len returns the number of terms.
func (p *Poly[T]) Len() int {
	return len(p.Coeffs)
}

func (p *Poly[T]) n() int { return p.Ctx.Mon.N }

// FitLength ensures Coeffs and Exps have capacity for at least n terms,
// growing geometrically (double) like FLINT's coeffs_alloc/exps_alloc.
func (p *Poly[T]) FitLength(n int) {
	if cap(p.Coeffs) < n {
		newCap := max(n, 2*cap(p.Coeffs))
		grown := make([]T, len(p.Coeffs), newCap)
		copy(grown, p.Coeffs)
		p.Coeffs = grown
	}
	wantWords := n * p.n()
	if cap(p.Exps) < wantWords {
		newCap := max(wantWords, 2*cap(p.Exps))
		grown := make([]uint64, len(p.Exps), newCap)
		copy(grown, p.Exps)
		p.Exps = grown
	}
}

// PushTerm appends a single (coeff, exp) term without checking for an
// existing term at the same monomial; call SortAndCombine once a batch
// of terms has been pushed to restore the sorted, combined invariant.
func (p *Poly[T]) PushTerm(coeff T, exp []uint64) {
	p.FitLength(p.Len() + 1)
	p.Coeffs = append(p.Coeffs, coeff)
	p.Exps = append(p.Exps, exp...)
}

// ExpAt returns a view of the i-th term's packed exponent vector.
func (p *Poly[T]) ExpAt(i int) []uint64 {
	n := p.n()
	return p.Exps[i*n : (i+1)*n]
}

// TermCoeff returns the i-th term's coefficient.
func (p *Poly[T]) TermCoeff(i int) T { return p.Coeffs[i] }

// SortAndCombine sorts terms into strictly descending monomial order and
// merges equal-monomial terms by summing coefficients, dropping any that
// cancel to zero. Must be called after any batch of PushTerm calls
// before the polynomial is used by DivRem/Mul/evaluation.
func (p *Poly[T]) SortAndCombine() {
	n := p.Len()
	if n == 0 {
		return
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	mon := p.Ctx.Mon
	slices.SortFunc(idx, func(a, b int) int {
		return mon.Cmp(p.ExpAt(b), p.ExpAt(a)) // descending
	})

	r := p.Ctx.R
	newCoeffs := make([]T, 0, n)
	newExps := make([]uint64, 0, len(p.Exps))

	i := 0
	for i < n {
		exp := p.ExpAt(idx[i])
		sum := r.NewAccumulator()
		sum.Add(p.Coeffs[idx[i]])
		j := i + 1
		for j < n && mon.Equal(exp, p.ExpAt(idx[j])) {
			sum.Add(p.Coeffs[idx[j]])
			j++
		}
		c := sum.Value()
		if !r.IsZero(c) {
			newCoeffs = append(newCoeffs, c)
			newExps = append(newExps, exp...)
		}
		i = j
	}

	p.Coeffs = newCoeffs
	p.Exps = newExps
}

func (p *Poly[T]) IsZero() bool { return p.Len() == 0 }

// LeadCoeff returns the coefficient of the largest-order term, or the
// ring's zero if the polynomial has no terms.
func (p *Poly[T]) LeadCoeff() T {
	if p.Len() == 0 {
		return p.Ctx.R.Zero()
	}
	return p.Coeffs[0]
}

// LeadExp returns the largest-order term's packed exponent vector.
func (p *Poly[T]) LeadExp() []uint64 {
	if p.Len() == 0 {
		return p.Ctx.Mon.New()
	}
	return p.ExpAt(0)
}

func (p *Poly[T]) Copy() *Poly[T] {
	c := &Poly[T]{Ctx: p.Ctx}
	c.Coeffs = append([]T(nil), p.Coeffs...)
	c.Exps = append([]uint64(nil), p.Exps...)
	return c
}

// Neg returns -p.
func (p *Poly[T]) Neg() *Poly[T] {
	r := p.Ctx.R
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len())
	for i := 0; i < p.Len(); i++ {
		out.PushTerm(r.Neg(p.Coeffs[i]), p.ExpAt(i))
	}
	return out
}

// ScalarMul returns p scaled by the constant c.
func (p *Poly[T]) ScalarMul(c T) *Poly[T] {
	r := p.Ctx.R
	out := NewPoly(p.Ctx)
	if r.IsZero(c) {
		return out
	}
	out.FitLength(p.Len())
	for i := 0; i < p.Len(); i++ {
		out.PushTerm(r.Mul(p.Coeffs[i], c), p.ExpAt(i))
	}
	return out
}

// Add merges two sorted polynomials in a single linear pass (the
// non-heap fast path FLINT reserves for binary add/sub; heap scheduling
// is only needed once more than two operands interleave, as in Mul/DivRem).
func (p *Poly[T]) Add(q *Poly[T]) *Poly[T] {
	return mergeAddSub(p, q, false)
}

// Sub returns p - q via the same linear merge as Add.
func (p *Poly[T]) Sub(q *Poly[T]) *Poly[T] {
	return mergeAddSub(p, q, true)
}

func mergeAddSub[T any](p, q *Poly[T], subtract bool) *Poly[T] {
	mon := p.Ctx.Mon
	r := p.Ctx.R
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len() + q.Len())

	i, j := 0, 0
	for i < p.Len() && j < q.Len() {
		switch c := mon.Cmp(p.ExpAt(i), q.ExpAt(j)); {
		case c > 0:
			out.PushTerm(p.Coeffs[i], p.ExpAt(i))
			i++
		case c < 0:
			qc := q.Coeffs[j]
			if subtract {
				qc = r.Neg(qc)
			}
			out.PushTerm(qc, q.ExpAt(j))
			j++
		default:
			var sum T
			if subtract {
				sum = r.Sub(p.Coeffs[i], q.Coeffs[j])
			} else {
				sum = r.Add(p.Coeffs[i], q.Coeffs[j])
			}
			if !r.IsZero(sum) {
				out.PushTerm(sum, p.ExpAt(i))
			}
			i++
			j++
		}
	}
	for ; i < p.Len(); i++ {
		out.PushTerm(p.Coeffs[i], p.ExpAt(i))
	}
	for ; j < q.Len(); j++ {
		qc := q.Coeffs[j]
		if subtract {
			qc = r.Neg(qc)
		}
		out.PushTerm(qc, q.ExpAt(j))
	}

	return out
}

// Equal reports whether p and q have identical terms in identical order.
func (p *Poly[T]) Equal(q *Poly[T]) bool {
	if p.Len() != q.Len() {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		if !p.Ctx.Mon.Equal(p.ExpAt(i), q.ExpAt(i)) {
			return false
		}
		if !p.Ctx.R.Equal(p.Coeffs[i], q.Coeffs[i]) {
			return false
		}
	}
	return true
}

// GetCoeffAtMonomial returns the coefficient of the given exponent
// vector, or the ring's zero if no such term exists. Linear scan: sparse
// polynomials in this package are not assumed large enough to need a
// hashed monomial index.
func (p *Poly[T]) GetCoeffAtMonomial(exp []uint64) T {
	for i := 0; i < p.Len(); i++ {
		if p.Ctx.Mon.Equal(p.ExpAt(i), exp) {
			return p.Coeffs[i]
		}
	}
	return p.Ctx.R.Zero()
}

// SetTermCoeff overwrites the coefficient at exp if a term exists there,
// inserts a new term and re-sorts otherwise, or removes the term if c is
// zero.
func (p *Poly[T]) SetTermCoeff(exp []uint64, c T) {
	for i := 0; i < p.Len(); i++ {
		if p.Ctx.Mon.Equal(p.ExpAt(i), exp) {
			if p.Ctx.R.IsZero(c) {
				p.Coeffs = append(p.Coeffs[:i], p.Coeffs[i+1:]...)
				n := p.n()
				p.Exps = append(p.Exps[:i*n], p.Exps[(i+1)*n:]...)
				return
			}
			p.Coeffs[i] = c
			return
		}
	}
	if p.Ctx.R.IsZero(c) {
		return
	}
	p.PushTerm(c, exp)
	p.SortAndCombine()
}

// TotalDegree returns the largest total degree across all terms, or -1
// for the zero polynomial.
func (p *Poly[T]) TotalDegree() int {
	best := -1
	for i := 0; i < p.Len(); i++ {
		d := int(p.Ctx.Mon.Degree(p.ExpAt(i)))
		if d > best {
			best = d
		}
	}
	return best
}

// Degree returns the highest exponent of variable v across all terms,
// or -1 for the zero polynomial.
func (p *Poly[T]) Degree(v int) int {
	best := -1
	for i := 0; i < p.Len(); i++ {
		exps, _ := p.Ctx.Mon.Unpack(p.ExpAt(i))
		if e := int(exps[v]); e > best {
			best = e
		}
	}
	return best
}

// Derivative returns d/dx_v of p.
func (p *Poly[T]) Derivative(v int) *Poly[T] {
	r := p.Ctx.R
	mon := p.Ctx.Mon
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len())

	for i := 0; i < p.Len(); i++ {
		exps, _ := mon.Unpack(p.ExpAt(i))
		if exps[v] == 0 {
			continue
		}
		newCoeff := r.Mul(p.Coeffs[i], r.FromInt64(int64(exps[v])))
		if r.IsZero(newCoeff) {
			continue
		}
		exps[v]--
		newExp, err := mon.Pack(exps)
		if err != nil {
			panic(err)
		}
		out.PushTerm(newCoeff, newExp)
	}

	return out
}
