// Package tspoly implements the shared, thread-safe polynomial and
// worker-pool coordinator that back chunked parallel exact division:
// TSPoly is an append-only container safe for one appender racing
// against many readers, and Pool hands independent exponent bands of
// one division out to a fixed set of goroutines under a strict
// producer hand-off (see pool.go).
package tspoly

import (
	"sync"
	"sync/atomic"

	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// snapshot is one immutable, fully-built view of a TSPoly's contents.
// Append never mutates a published snapshot; it builds a new one and
// swaps the pointer, so any reader that already loaded a snapshot keeps
// seeing consistent data regardless of further Appends.
type snapshot[T any] struct {
	coeffs []T
	exps   [][]uint64
}

// TSPoly is an append-only polynomial: init from an array, append an
// array of terms, steal the buffers into a normal polynomial on clear —
// the three mutating operations spec.md's shared-resource model allows.
// Only one goroutine is expected to call Append (or Steal) at a time;
// Len and Term never block on it.
type TSPoly[T any] struct {
	appendMu sync.Mutex
	snap     atomic.Pointer[snapshot[T]]
}

// New returns an empty TSPoly.
func New[T any]() *TSPoly[T] {
	t := &TSPoly[T]{}
	t.snap.Store(&snapshot[T]{})
	return t
}

// NewFromPoly seeds a TSPoly with p's terms (the "init from an array" op).
func NewFromPoly[T any](p *mpoly.Poly[T]) *TSPoly[T] {
	t := &TSPoly[T]{}
	coeffs := make([]T, p.Len())
	exps := make([][]uint64, p.Len())
	for i := range coeffs {
		coeffs[i] = p.TermCoeff(i)
		exps[i] = append([]uint64(nil), p.ExpAt(i)...)
	}
	t.snap.Store(&snapshot[T]{coeffs: coeffs, exps: exps})
	return t
}

// Len returns the number of published terms.
func (t *TSPoly[T]) Len() int {
	return len(t.snap.Load().coeffs)
}

// Term returns a snapshot-consistent view of the i-th term: i must be
// less than some Len() the caller already observed. Safe to call
// concurrently with Append.
func (t *TSPoly[T]) Term(i int) (T, []uint64) {
	s := t.snap.Load()
	return s.coeffs[i], s.exps[i]
}

// Append publishes newCoeffs/newExps as the new tail, in the order
// given — callers are responsible for supplying terms in the strictly
// descending monomial order the rest of the package relies on. The new
// backing arrays are built in full before the pointer swap, and the old
// ones are left untouched, so a reader holding the previous snapshot
// never observes a torn update.
func (t *TSPoly[T]) Append(newCoeffs []T, newExps [][]uint64) {
	t.appendMu.Lock()
	defer t.appendMu.Unlock()

	old := t.snap.Load()
	coeffs := make([]T, len(old.coeffs)+len(newCoeffs))
	exps := make([][]uint64, len(old.exps)+len(newExps))
	copy(coeffs, old.coeffs)
	copy(coeffs[len(old.coeffs):], newCoeffs)
	copy(exps, old.exps)
	copy(exps[len(old.exps):], newExps)

	t.snap.Store(&snapshot[T]{coeffs: coeffs, exps: exps})
}

// AppendPoly appends p's terms, in p's own order, as the new tail.
func (t *TSPoly[T]) AppendPoly(p *mpoly.Poly[T]) {
	if p.Len() == 0 {
		return
	}
	coeffs := make([]T, p.Len())
	exps := make([][]uint64, p.Len())
	for i := range coeffs {
		coeffs[i] = p.TermCoeff(i)
		exps[i] = append([]uint64(nil), p.ExpAt(i)...)
	}
	t.Append(coeffs, exps)
}

// SnapshotPoly returns t's current contents as an ordinary polynomial,
// without clearing t. Unlike Steal this may be called repeatedly while
// other goroutines keep appending.
func (t *TSPoly[T]) SnapshotPoly(ctx *mpoly.Context[T]) *mpoly.Poly[T] {
	s := t.snap.Load()
	out := mpoly.NewPoly(ctx)
	out.FitLength(len(s.coeffs))
	for i := range s.coeffs {
		out.PushTerm(s.coeffs[i], s.exps[i])
	}
	return out
}

// Steal drains t's contents into a plain polynomial and clears t — the
// one-shot "steal buffers into a normal polynomial on clear" operation.
// Not safe to interleave with further Append calls.
func (t *TSPoly[T]) Steal(ctx *mpoly.Context[T]) *mpoly.Poly[T] {
	t.appendMu.Lock()
	defer t.appendMu.Unlock()

	out := t.SnapshotPoly(ctx)
	t.snap.Store(&snapshot[T]{})
	return out
}
