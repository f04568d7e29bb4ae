// Package ring generalizes go-gao's concrete field.Field interface into a
// type-parameterized Ring[T], so the sparse multivariate heap kernel in
// package mpoly can share one implementation across both coefficient
// domains spec.md requires: 𝔽ₚ (T=uint64, backed by modular.PrimeField)
// and ℤ (T=*big.Int, backed by bigint.Ring).
package ring

// Ring is the coefficient-domain contract mpoly.Poly[T] and the heap
// kernel are written against. It mirrors go-gao's Field interface
// method-for-method, generalized to an arbitrary coefficient type.
type Ring[T any] interface {
	Zero() T
	One() T
	IsZero(a T) bool
	Equal(a, b T) bool

	Add(a, b T) T
	Sub(a, b T) T
	Neg(a T) T
	Mul(a, b T) T

	// DivExact divides a by b, assuming the caller has already verified
	// b divides a exactly (content division, exact-division checks after
	// a GCD cofactor multiply).
	DivExact(a, b T) T

	// FromInt64 embeds a small signed integer into the ring, used by
	// Derivative (multiplying a coefficient by an exponent count).
	FromInt64(x int64) T
}

// GCDRing is a Ring that can additionally compute a content GCD across
// coefficients. Only ℤ has a non-trivial notion of content; a field's
// GCD is trivial (every nonzero element is a unit), but the method is
// still useful there for a uniform Content implementation in mpoly.
type GCDRing[T any] interface {
	Ring[T]
	GCD(a, b T) T
}

// Accumulator defers reduction/normalization across many AddProduct/
// SubProduct contributions before a single Value() call, mirroring
// modular.Accumulator's triple-word scheme generalized to any coefficient
// domain (for ℤ, bigint.Accumulator just sums into a single *big.Int,
// since unbounded integers have no reduction step to defer).
type Accumulator[T any] interface {
	AddProduct(a, b T)
	SubProduct(a, b T)
	Add(a T)
	Sub(a T)
	Value() T
}

// AccumulatorRing is a Ring that can also mint fresh Accumulators, the
// capability the heap kernel actually needs at each popped node.
type AccumulatorRing[T any] interface {
	Ring[T]
	NewAccumulator() Accumulator[T]
}
