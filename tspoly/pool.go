package tspoly

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathanmweiss/go-mpoly/monomial"
	"github.com/jonathanmweiss/go-mpoly/mpoly"
)

// chunk is one worker's exponent band of the quotient, numbered in the
// order its band appears in the monomial order (chunk 0 owns the
// highest band). done flips once the chunk has published every
// quotient term it is ever going to.
type chunk struct {
	id   int
	done bool
}

// Pool coordinates a fixed set of chunks across one chunked division
// call. A fresh Pool is built per call — the "process mutex covering
// the chunk list and the cur pointer" spec.md describes is this type's
// mu/cond pair, and the actual OS threads are obtained from
// errgroup.Group, the pool-handle external collaborator spec.md's
// external-interfaces section assumes is passed in by the caller.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	chunks []*chunk
	failed bool
}

func newPool(n int) *Pool {
	p := &Pool{chunks: make([]*chunk, n)}
	p.cond = sync.NewCond(&p.mu)
	for i := range p.chunks {
		p.chunks[i] = &chunk{id: i}
	}
	return p
}

// waitForTurn blocks until chunk c is allowed to become the producer:
// either c is the first-in-order chunk, or the chunk immediately before
// it has finished. Returns false if the pool was cancelled (another
// chunk detected a non-exact division) while waiting.
func (p *Pool) waitForTurn(c *chunk) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.failed {
			return false
		}
		if c.id == 0 || p.chunks[c.id-1].done {
			return true
		}
		p.cond.Wait()
	}
}

func (p *Pool) markDone(c *chunk) {
	p.mu.Lock()
	c.done = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *Pool) markFailed() {
	p.mu.Lock()
	p.failed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// DivideChunked performs the same exact multivariate division as
// (*mpoly.Poly).Divides, partitioning the work across numChunks
// goroutines coordinated through a Pool and a shared TSPoly quotient.
// ok is false (with a nil quotient) when the division isn't exact,
// mirroring Divides; a non-nil error is only returned on a genuine
// scheduling failure, not a non-exact division.
//
// Requires ctx.Mon's order to be monomial.Lex: chunking partitions the
// quotient's exponent range in mainVar, and the floor-based hand-off
// (DivRemFloor, mpoly/heap.go) only orders chunks correctly relative to
// each other when exponent comparisons are dominated by mainVar, which
// Lex guarantees and DegLex/DegRevLex do not.
//
// Work is split along mainVar's exponent range, highest band first:
// chunk i does not become eligible to publish until chunk i-1 has
// published everything it ever will (Pool.waitForTurn), matching
// spec.md's producer hand-off. Each chunk's own work, once it is its
// turn, is computed compositionally — subtract b times every quotient
// term published so far from d, then run DivRemFloor bounded to this
// chunk's band — rather than FLINT's single fused cross-term heap
// streaming across chunks; see DESIGN.md for why (recomputing the full
// correction each turn costs extra arithmetic but stays built entirely
// out of already-trusted Sub/Mul/DivRemFloor, which matters more than
// peak throughput here).
func DivideChunked[T any](d, b *mpoly.Poly[T], mainVar, numChunks int) (*mpoly.Poly[T], bool, error) {
	if b.Len() == 0 {
		panic("tspoly: division by the zero polynomial")
	}
	ctx := d.Ctx
	if ctx.Mon.Order != monomial.Lex {
		panic("tspoly: DivideChunked requires a Lex monomial context")
	}
	if d.IsZero() {
		return mpoly.NewPoly(ctx), true, nil
	}

	degBound := d.Degree(mainVar) - b.Degree(mainVar)
	if degBound < 0 {
		return nil, false, nil
	}

	if numChunks < 1 {
		numChunks = 1
	}
	if numChunks > degBound+1 {
		numChunks = degBound + 1
	}

	floors := make([][]uint64, numChunks)
	span := (degBound + 1 + numChunks - 1) / numChunks
	for i := 0; i < numChunks; i++ {
		lo := degBound - (i+1)*span + 1
		if lo < 0 {
			lo = 0
		}
		exp := make([]uint64, ctx.NVars())
		exp[mainVar] = uint64(lo)
		packed, err := ctx.Mon.Pack(exp)
		if err != nil {
			return nil, false, err
		}
		floors[i] = packed
	}

	shared := New[T]()
	pool := newPool(numChunks)

	var g errgroup.Group
	for i := 0; i < numChunks; i++ {
		c := pool.chunks[i]
		last := i == numChunks-1
		g.Go(func() error {
			if !pool.waitForTurn(c) {
				return nil
			}

			known := shared.SnapshotPoly(ctx)
			effective := d.Sub(known.Mul(b))
			qPart, remPart := effective.DivRemFloor(b, floors[c.id])

			if last && remPart.Len() != 0 {
				pool.markFailed()
				pool.markDone(c)
				return nil
			}

			shared.AppendPoly(qPart)
			pool.markDone(c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	if pool.failed {
		return nil, false, nil
	}

	return shared.Steal(ctx), true, nil
}
