// Package bigint implements the ℤ coefficient domain: arbitrary-precision
// integer primitives (add/sub/mul/neg/exact-division), content/GCD, and
// symmetric-range CRT, all wrapping math/big — the one place in this
// repository that falls back to the standard library, because no example
// repo in the retrieved pack ships an arbitrary-precision integer library
// (FLINT's fmpz has no Go analogue anywhere in the corpus).
package bigint

import (
	"math/big"

	"github.com/jonathanmweiss/go-mpoly/ring"
)

// Ring adapts *big.Int arithmetic to ring.AccumulatorRing[*big.Int], the
// contract mpoly.Poly[*big.Int] and the heap kernel are written against
// when working over ℤ. All methods return freshly allocated values; they
// never mutate their arguments, matching mpoly's expectation that ring
// operations are pure.
type Ring struct{}

func (Ring) Zero() *big.Int { return new(big.Int) }
func (Ring) One() *big.Int  { return big.NewInt(1) }

func (Ring) IsZero(a *big.Int) bool { return a.Sign() == 0 }
func (Ring) Equal(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}

func (Ring) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (Ring) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func (Ring) Neg(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }
func (Ring) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// DivExact assumes b divides a exactly (the caller has already verified
// this, e.g. after a content split or a GCD cofactor back-multiply) and
// uses plain Quo rather than re-deriving a remainder check.
func (Ring) DivExact(a, b *big.Int) *big.Int {
	q := new(big.Int)
	q.Quo(a, b)
	return q
}

func (Ring) FromInt64(x int64) *big.Int { return big.NewInt(x) }

func (Ring) GCD(a, b *big.Int) *big.Int { return GCD(a, b) }

func (Ring) NewAccumulator() ring.Accumulator[*big.Int] {
	return &Accumulator{total: new(big.Int)}
}

var (
	_ ring.Ring[*big.Int]            = Ring{}
	_ ring.AccumulatorRing[*big.Int] = Ring{}
	_ ring.GCDRing[*big.Int]         = Ring{}
)

// Accumulator sums ℤ contributions directly into a running *big.Int:
// unlike modular.Accumulator there is no modulus to defer reduction
// against, so AddProduct/SubProduct are plain big.Int FMA-style updates.
type Accumulator struct {
	total *big.Int
}

func (a *Accumulator) AddProduct(x, y *big.Int) {
	a.total.Add(a.total, new(big.Int).Mul(x, y))
}

func (a *Accumulator) SubProduct(x, y *big.Int) {
	a.total.Sub(a.total, new(big.Int).Mul(x, y))
}

func (a *Accumulator) Add(x *big.Int) { a.total.Add(a.total, x) }
func (a *Accumulator) Sub(x *big.Int) { a.total.Sub(a.total, x) }

func (a *Accumulator) Value() *big.Int {
	v := a.total
	a.total = new(big.Int)
	return v
}

// Abs returns |a|.
func Abs(a *big.Int) *big.Int {
	return new(big.Int).Abs(a)
}

// GCD returns gcd(|a|, |b|); gcd(0, 0) = 0 by convention, matching
// fmpz_gcd.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, Abs(a), Abs(b))
}

// Content returns the GCD of a coefficient list, the building block of
// the Brown/Zippel content-split step (fmpz_mpolyu_content_fmpz):
// content(0 coefficients) = 0.
func Content(coeffs []*big.Int) *big.Int {
	c := new(big.Int)
	for _, v := range coeffs {
		c = GCD(c, v)
	}
	return c
}

// BitLen returns the bit length of |a|, used by the Landau-Mignotte
// coefficient bound in gcd.GcdBrown.
func BitLen(a *big.Int) int {
	return a.BitLen()
}

// CRT combines (m1, r1) and (m2, r2) (two coprime moduli and their
// residues) into a single (modulus, residue) pair with
// residue ≡ r1 (mod m1), residue ≡ r2 (mod m2), the residue taken in the
// symmetric range (-modulus/2, modulus/2], matching the sign convention
// FLINT's fmpz CRT routines use when lifting a Brown/Zippel GCD's
// coefficients back to ℤ.
func CRT(m1, r1, m2, r2 *big.Int) (modulus, residue *big.Int) {
	modulus = new(big.Int).Mul(m1, m2)

	// Solve residue = r1 + m1*t where t = (r2-r1)*m1^-1 mod m2.
	m1InvModM2 := new(big.Int).ModInverse(m1, m2)
	if m1InvModM2 == nil {
		panic("bigint: CRT moduli are not coprime")
	}

	diff := new(big.Int).Sub(r2, r1)
	t := new(big.Int).Mul(diff, m1InvModM2)
	t.Mod(t, m2)

	residue = new(big.Int).Mul(m1, t)
	residue.Add(residue, r1)
	residue.Mod(residue, modulus)

	return modulus, SymmetricRange(residue, modulus)
}

// SymmetricRange maps a value already reduced mod m (0 <= v < m) into
// the symmetric range (-m/2, m/2].
func SymmetricRange(v, m *big.Int) *big.Int {
	half := new(big.Int).Rsh(m, 1)
	out := new(big.Int).Set(v)
	if out.Cmp(half) > 0 {
		out.Sub(out, m)
	}
	return out
}
