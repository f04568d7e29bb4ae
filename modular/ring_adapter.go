package modular

import "github.com/jonathanmweiss/go-mpoly/ring"

// FieldRing adapts a *PrimeField to ring.AccumulatorRing[uint64], the
// contract mpoly.Poly[uint64] and the heap kernel are written against
// when working over 𝔽ₚ.
type FieldRing struct {
	*PrimeField
}

func NewFieldRing(f *PrimeField) FieldRing { return FieldRing{f} }

func (FieldRing) Zero() uint64 { return 0 }
func (FieldRing) One() uint64  { return 1 }

func (r FieldRing) IsZero(a uint64) bool { return r.Reduce(a) == 0 }

func (r FieldRing) DivExact(a, b uint64) uint64 {
	return r.Mul(a, r.Inverse(b))
}

func (r FieldRing) FromInt64(x int64) uint64 {
	if x >= 0 {
		return r.Reduce(uint64(x))
	}
	return r.Neg(r.Reduce(uint64(-x)))
}

// GCD in a field is trivial: any two nonzero elements are associates (a
// unit multiple of each other), so their "content" is 1; gcd(0,0) = 0.
func (r FieldRing) GCD(a, b uint64) uint64 {
	if r.IsZero(a) && r.IsZero(b) {
		return 0
	}
	return 1
}

func (r FieldRing) NewAccumulator() ring.Accumulator[uint64] {
	return r.PrimeField.NewAccumulator()
}

var (
	_ ring.Ring[uint64]            = FieldRing{}
	_ ring.AccumulatorRing[uint64] = FieldRing{}
	_ ring.GCDRing[uint64]         = FieldRing{}
	_ ring.Accumulator[uint64]     = (*Accumulator)(nil)
)
