package monomial

// Cmp compares two packed monomials in the context's order: positive if
// a orders after b (a is "larger", e.g. a higher leading term), negative
// if before, zero if equal. Implemented with the XOR compare-mask trick:
// XORing both operands with cmpMask before an ordinary word-wise unsigned
// compare reverses the effective ordering exactly on the fields DegRevLex
// needs reversed (the per-variable fields, not the degree field), without
// a branch per field.
func (c *Context) Cmp(a, b []uint64) int {
	for i := 0; i < c.N; i++ {
		xa := a[i] ^ c.cmpMask[i]
		xb := b[i] ^ c.cmpMask[i]
		if xa != xb {
			if xa > xb {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Equal reports whether two packed monomials are identical.
func (c *Context) Equal(a, b []uint64) bool {
	for i := 0; i < c.N; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Overflows reports whether any field's guard bit is set, i.e. a prior
// Add pushed some field's exponent sum past the context's MaxExponent.
func (c *Context) Overflows(packed []uint64) bool {
	for i := 0; i < c.N; i++ {
		if packed[i]&c.overflowMask[i] != 0 {
			return true
		}
	}
	return false
}

// Add sums two packed monomials field-wise without checking for
// overflow; callers that cannot guarantee headroom should use
// CheckedAdd. This is the hot path inside the heap kernel's up/right
// scheduling, where bit widths are chosen up front to make overflow rare
// and the check is hoisted to one Overflows call per emitted heap entry.
func (c *Context) Add(a, b []uint64) []uint64 {
	out := make([]uint64, c.N)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// AddInto adds b into the existing packed monomial dst (dst += b),
// avoiding an allocation for every heap insertion.
func (c *Context) AddInto(dst, b []uint64) {
	for i := range dst {
		dst[i] += b[i]
	}
}

// CheckedAdd sums a and b field-wise and reports whether any field
// overflowed past MaxExponent, via the guard-bit trick: a legitimate
// field sum that stays in range never sets the guard bit, while an
// overflowing sum carries into it.
func (c *Context) CheckedAdd(a, b []uint64) (sum []uint64, ok bool) {
	sum = c.Add(a, b)
	return sum, !c.Overflows(sum)
}

// Sub subtracts b from a field-wise, assuming the caller has already
// established (e.g. via Divides) that every field of a is >= the
// corresponding field of b.
func (c *Context) Sub(a, b []uint64) []uint64 {
	out := make([]uint64, c.N)
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// Divides reports whether the monomial b divides the monomial a, i.e.
// a_i >= b_i for every field. Implemented as a masked word-wise
// subtraction: any field where a_i < b_i wraps around and sets that
// field's guard bit (0 in both valid operands), making the same overflow
// mask that flags Add-overflow also flag a failed subtraction here. The
// borrow also reaches the next more significant field of the word, but
// only once some field has already failed, so the answer is unaffected.
func (c *Context) Divides(a, b []uint64) bool {
	for i := 0; i < c.N; i++ {
		diff := a[i] - b[i]
		if diff&c.overflowMask[i] != 0 {
			return false
		}
	}
	return true
}

// Halves divides every field's exponent by two, used by the
// characteristic-2 quadratic root method to recover a monomial's square
// root once its exponent vector is known to be all-even. ok is false if
// any field is odd.
func (c *Context) Halves(packed []uint64) (half []uint64, ok bool) {
	exps, err := c.Unpack(packed)
	if err != nil {
		return nil, false
	}
	halved := make([]uint64, c.NVars)
	for i, e := range exps {
		if e&1 != 0 {
			return nil, false
		}
		halved[i] = e / 2
	}
	packedHalf, err := c.Pack(halved)
	if err != nil {
		return nil, false
	}
	return packedHalf, true
}

// IsZero reports whether packed represents the zero exponent vector
// (the monomial 1).
func (c *Context) IsZero(packed []uint64) bool {
	for _, w := range packed {
		if w != 0 {
			return false
		}
	}
	return true
}
