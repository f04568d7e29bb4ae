package mpoly

import (
	"container/heap"

	"github.com/jonathanmweiss/go-mpoly/monomial"
)

// mustAdd sums two packed monomials and panics if the context's bit
// width can't hold the result, rather than letting an overflowing field
// silently bleed into its neighbour. Every heap-entry exponent in this
// file is built through this helper instead of mon.Add directly, so an
// under-sized bits_per_field fails loudly at the point of overflow
// instead of producing a mathematically wrong polynomial; see
// DESIGN.md's monomial section for why the kernel stops here rather
// than retrying the operation at a wider packing.
func mustAdd(mon *monomial.Context, a, b []uint64) []uint64 {
	sum, ok := mon.CheckedAdd(a, b)
	if !ok {
		panic("mpoly: monomial exponent overflow, context's bits_per_field too small")
	}
	return sum
}

// mulHeap is a binary max-heap (by monomial order) of pending
// (poly-A-index, poly-B-index) candidate products, the scheduling
// structure behind Mul (divHeap below plays the same role for DivRem and
// DivRemFloor). Go's container/heap stands in
// for FLINT's hand-rolled array-backed binary heap with chain-pooled
// equal-key nodes (divrem_monagan_pearce.c's mpoly_heap1_s/HEAP_ASSIGN):
// here, nodes tied at the same monomial are instead drained into a plain
// slice by the caller before scheduling their successors, which plays
// the same role as the chain pool without a hand-managed linked list.
type mulEntry struct {
	exp    []uint64
	ai, bj int
}

type mulHeap struct {
	mon     interface{ Cmp(a, b []uint64) int }
	entries []*mulEntry
}

func (h *mulHeap) Len() int { return len(h.entries) }
func (h *mulHeap) Less(i, j int) bool {
	return h.mon.Cmp(h.entries[i].exp, h.entries[j].exp) > 0 // max-heap
}
func (h *mulHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *mulHeap) Push(x any)    { h.entries = append(h.entries, x.(*mulEntry)) }
func (h *mulHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// Mul computes p*q via heap-scheduled multiplication (Johnson's
// algorithm, the same scheduling family Monagan-Pearce generalizes to
// division in heap.go's DivRem): at most len(p) candidate products (one
// per started row of p) are live in the heap at any time, each (i,j) pair visited
// exactly once.
func (p *Poly[T]) Mul(q *Poly[T]) *Poly[T] {
	if p.Len() == 0 || q.Len() == 0 {
		return NewPoly(p.Ctx)
	}

	mon := p.Ctx.Mon
	r := p.Ctx.R
	out := NewPoly(p.Ctx)

	h := &mulHeap{mon: mon}
	heap.Init(h)
	heap.Push(h, &mulEntry{exp: mustAdd(mon, p.ExpAt(0), q.ExpAt(0)), ai: 0, bj: 0})

	for h.Len() > 0 {
		exp := append([]uint64(nil), h.entries[0].exp...)
		acc := r.NewAccumulator()

		var popped []*mulEntry
		for h.Len() > 0 && mon.Equal(h.entries[0].exp, exp) {
			e := heap.Pop(h).(*mulEntry)
			acc.AddProduct(p.Coeffs[e.ai], q.Coeffs[e.bj])
			popped = append(popped, e)
		}

		c := acc.Value()
		if !r.IsZero(c) {
			out.PushTerm(c, exp)
		}

		for _, e := range popped {
			if e.bj+1 < q.Len() {
				heap.Push(h, &mulEntry{exp: mustAdd(mon, p.ExpAt(e.ai), q.ExpAt(e.bj+1)), ai: e.ai, bj: e.bj + 1})
			}
			if e.bj == 0 && e.ai+1 < p.Len() {
				heap.Push(h, &mulEntry{exp: mustAdd(mon, p.ExpAt(e.ai+1), q.ExpAt(0)), ai: e.ai + 1, bj: 0})
			}
		}
	}

	return out
}

// MulSub computes c - a*b. Implemented as a compose of Mul and Sub
// rather than a fused single heap pass (the teacher has no multi-operand
// heap fusion to draw on either, and Add/Sub are already a cheap linear
// merge): this trades one extra O(n) merge pass for a much simpler,
// directly-testable implementation.
func (c *Poly[T]) MulSub(a, b *Poly[T]) *Poly[T] {
	return c.Sub(a.Mul(b))
}

// divEntry is a node in the division heap: either an as-yet-unconsumed
// dividend term (fromA) or a cross term q[qi]*divisor[bj] (qi indexes
// the quotient built so far).
type divEntry struct {
	exp    []uint64
	fromA  bool
	aIdx   int
	qi, bj int
}

type divHeap struct {
	mon     interface{ Cmp(a, b []uint64) int }
	entries []*divEntry
}

func (h *divHeap) Len() int { return len(h.entries) }
func (h *divHeap) Less(i, j int) bool {
	return h.mon.Cmp(h.entries[i].exp, h.entries[j].exp) > 0
}
func (h *divHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *divHeap) Push(x any)    { h.entries = append(h.entries, x.(*divEntry)) }
func (h *divHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// DivRem computes q, r such that p = q*b + r and no term of r is
// divisible by lead(b), via single-divisor heap-scheduled division
// (Monagan & Pearce's heap division, the same algorithm family
// original_source/nmod_mpoly/divrem_monagan_pearce.c ports to C): each
// live heap node is either an unconsumed dividend term or a quotient*
// divisor cross term, and a new cross term (qi, 1) is scheduled exactly
// once, right when quotient term qi is created, taking the place of the
// C code's hind-array delayed-insertion bookkeeping.
func (p *Poly[T]) DivRem(b *Poly[T]) (q, rem *Poly[T]) {
	if b.Len() == 0 {
		panic("mpoly: division by the zero polynomial")
	}

	mon := p.Ctx.Mon
	r := p.Ctx.R
	q = NewPoly(p.Ctx)
	rem = NewPoly(p.Ctx)

	lead := b.ExpAt(0)
	leadCoeff := b.Coeffs[0]

	h := &divHeap{mon: mon}
	heap.Init(h)
	if p.Len() > 0 {
		heap.Push(h, &divEntry{exp: p.ExpAt(0), fromA: true, aIdx: 0})
	}

	for h.Len() > 0 {
		exp := append([]uint64(nil), h.entries[0].exp...)
		acc := r.NewAccumulator()

		var popped []*divEntry
		for h.Len() > 0 && mon.Equal(h.entries[0].exp, exp) {
			e := heap.Pop(h).(*divEntry)
			if e.fromA {
				acc.Add(p.Coeffs[e.aIdx])
			} else {
				acc.SubProduct(q.Coeffs[e.qi], b.Coeffs[e.bj])
			}
			popped = append(popped, e)
		}

		coeff := acc.Value()

		if !r.IsZero(coeff) {
			var qCoeff T
			exact := mon.Divides(exp, lead)
			if exact {
				qCoeff = r.DivExact(coeff, leadCoeff)
				exact = r.Equal(r.Mul(qCoeff, leadCoeff), coeff)
			}
			if exact {
				qExp := mon.Sub(exp, lead)
				qi := q.Len()
				q.PushTerm(qCoeff, qExp)

				if b.Len() > 1 {
					heap.Push(h, &divEntry{exp: mustAdd(mon, qExp, b.ExpAt(1)), qi: qi, bj: 1})
				}
			} else {
				rem.PushTerm(coeff, exp)
			}
		}

		for _, e := range popped {
			if e.fromA {
				if e.aIdx+1 < p.Len() {
					heap.Push(h, &divEntry{exp: p.ExpAt(e.aIdx + 1), fromA: true, aIdx: e.aIdx + 1})
				}
			} else if e.bj+1 < b.Len() {
				newExp := mustAdd(mon, q.ExpAt(e.qi), b.ExpAt(e.bj+1))
				heap.Push(h, &divEntry{exp: newExp, qi: e.qi, bj: e.bj + 1})
			}
		}
	}

	return q, rem
}

// Divides reports whether b divides p exactly, returning the quotient
// when it does. This is the J-module divisibility oracle gcd.Divides
// wraps for use as a GCD cofactor check.
func (p *Poly[T]) Divides(b *Poly[T]) (quotient *Poly[T], ok bool) {
	q, r := p.DivRem(b)
	return q, r.Len() == 0
}

// DivRemFloor behaves exactly like DivRem, except a candidate quotient
// term whose exponent falls below floor (per the context's monomial
// order) is left in the remainder instead of being divided out. This is
// the "emin" lower bound: any node whose would-be quotient exponent
// drops below the floor is deferred rather than resolved here, which is
// what lets tspoly.Pool split one division across several chunks, each
// owning a floor-bounded band of the quotient's exponent range and
// handing the deferred tail to the next chunk.
func (p *Poly[T]) DivRemFloor(b *Poly[T], floor []uint64) (q, rem *Poly[T]) {
	if b.Len() == 0 {
		panic("mpoly: division by the zero polynomial")
	}

	mon := p.Ctx.Mon
	r := p.Ctx.R
	q = NewPoly(p.Ctx)
	rem = NewPoly(p.Ctx)

	lead := b.ExpAt(0)
	leadCoeff := b.Coeffs[0]

	h := &divHeap{mon: mon}
	heap.Init(h)
	if p.Len() > 0 {
		heap.Push(h, &divEntry{exp: p.ExpAt(0), fromA: true, aIdx: 0})
	}

	for h.Len() > 0 {
		exp := append([]uint64(nil), h.entries[0].exp...)
		acc := r.NewAccumulator()

		var popped []*divEntry
		for h.Len() > 0 && mon.Equal(h.entries[0].exp, exp) {
			e := heap.Pop(h).(*divEntry)
			if e.fromA {
				acc.Add(p.Coeffs[e.aIdx])
			} else {
				acc.SubProduct(q.Coeffs[e.qi], b.Coeffs[e.bj])
			}
			popped = append(popped, e)
		}

		coeff := acc.Value()

		accepted := false
		if !r.IsZero(coeff) && mon.Divides(exp, lead) {
			qExp := mon.Sub(exp, lead)
			qCoeff := r.DivExact(coeff, leadCoeff)
			if mon.Cmp(qExp, floor) >= 0 && r.Equal(r.Mul(qCoeff, leadCoeff), coeff) {
				qi := q.Len()
				q.PushTerm(qCoeff, qExp)

				if b.Len() > 1 {
					heap.Push(h, &divEntry{exp: mustAdd(mon, qExp, b.ExpAt(1)), qi: qi, bj: 1})
				}
				accepted = true
			}
		}
		if !accepted && !r.IsZero(coeff) {
			rem.PushTerm(coeff, exp)
		}

		for _, e := range popped {
			if e.fromA {
				if e.aIdx+1 < p.Len() {
					heap.Push(h, &divEntry{exp: p.ExpAt(e.aIdx + 1), fromA: true, aIdx: e.aIdx + 1})
				}
			} else if e.bj+1 < b.Len() {
				newExp := mustAdd(mon, q.ExpAt(e.qi), b.ExpAt(e.bj+1))
				heap.Push(h, &divEntry{exp: newExp, qi: e.qi, bj: e.bj + 1})
			}
		}
	}

	return q, rem
}
