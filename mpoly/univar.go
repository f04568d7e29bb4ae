package mpoly

import "golang.org/x/exp/slices"

// UnivarTerm pairs a main-variable exponent with its multivariate
// coefficient polynomial (the remaining variables' contribution).
type UnivarTerm[T any] struct {
	Exp   uint64
	Coeff *Poly[T]
}

// Univar is p viewed as a dense-in-structure (but sparsely stored, only
// nonzero exponents present), univariate-in-one-variable polynomial with
// multivariate coefficients: the "nested univariate form" the recursive
// Brown/Zippel drivers peel one variable off at a time.
type Univar[T any] struct {
	Ctx     *Context[T]
	MainVar int
	Terms   []UnivarTerm[T] // sorted descending by Exp
}

// ToUnivar groups p's terms by their exponent of variable mainVar.
func (p *Poly[T]) ToUnivar(mainVar int) *Univar[T] {
	mon := p.Ctx.Mon
	buckets := map[uint64]*Poly[T]{}
	var exps []uint64

	for i := 0; i < p.Len(); i++ {
		e, _ := mon.Unpack(p.ExpAt(i))
		mainExp := e[mainVar]
		e[mainVar] = 0
		coeffExp, err := mon.Pack(e)
		if err != nil {
			panic(err)
		}

		bucket, ok := buckets[mainExp]
		if !ok {
			bucket = NewPoly(p.Ctx)
			buckets[mainExp] = bucket
			exps = append(exps, mainExp)
		}
		bucket.PushTerm(p.Coeffs[i], coeffExp)
	}

	slices.SortFunc(exps, func(a, b uint64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})

	u := &Univar[T]{Ctx: p.Ctx, MainVar: mainVar}
	for _, e := range exps {
		bucket := buckets[e]
		bucket.SortAndCombine()
		u.Terms = append(u.Terms, UnivarTerm[T]{Exp: e, Coeff: bucket})
	}

	return u
}

// FromUnivar reassembles a Univar view back into a flat Poly.
func FromUnivar[T any](u *Univar[T]) *Poly[T] {
	mon := u.Ctx.Mon
	out := NewPoly(u.Ctx)

	for _, term := range u.Terms {
		for i := 0; i < term.Coeff.Len(); i++ {
			e, _ := mon.Unpack(term.Coeff.ExpAt(i))
			e[u.MainVar] = term.Exp
			packed, err := mon.Pack(e)
			if err != nil {
				panic(err)
			}
			out.PushTerm(term.Coeff.Coeffs[i], packed)
		}
	}

	out.SortAndCombine()
	return out
}

// Deflate divides every variable's exponent by the corresponding stride
// after subtracting shift, assuming (e_i - shift_i) is exactly divisible
// by stride_i for every term and every variable, as holds for the
// shift/stride that DeflationStrides computes from the polynomial's own
// minimum exponents and their GCD. ToUnivar does not call it.
func (p *Poly[T]) Deflate(shift, stride []uint64) *Poly[T] {
	mon := p.Ctx.Mon
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len())

	for i := 0; i < p.Len(); i++ {
		e, _ := mon.Unpack(p.ExpAt(i))
		for v := range e {
			if stride[v] == 0 {
				continue
			}
			e[v] = (e[v] - shift[v]) / stride[v]
		}
		packed, err := mon.Pack(e)
		if err != nil {
			panic(err)
		}
		out.PushTerm(p.Coeffs[i], packed)
	}

	return out
}

// Inflate is Deflate's inverse: e_i -> e_i*stride_i + shift_i.
func (p *Poly[T]) Inflate(shift, stride []uint64) *Poly[T] {
	mon := p.Ctx.Mon
	out := NewPoly(p.Ctx)
	out.FitLength(p.Len())

	for i := 0; i < p.Len(); i++ {
		e, _ := mon.Unpack(p.ExpAt(i))
		for v := range e {
			e[v] = e[v]*stride[v] + shift[v]
		}
		packed, err := mon.Pack(e)
		if err != nil {
			panic(err)
		}
		out.PushTerm(p.Coeffs[i], packed)
	}

	return out
}

// DeflationStrides computes, per variable, the minimum exponent
// (shift) and the GCD of (e_i - shift) across all terms (stride), the
// standard input to Deflate.
func (p *Poly[T]) DeflationStrides() (shift, stride []uint64) {
	nv := p.Ctx.NVars()
	shift = make([]uint64, nv)
	stride = make([]uint64, nv)
	if p.Len() == 0 {
		return shift, stride
	}

	mon := p.Ctx.Mon
	first, _ := mon.Unpack(p.ExpAt(0))
	copy(shift, first)

	for i := 1; i < p.Len(); i++ {
		e, _ := mon.Unpack(p.ExpAt(i))
		for v := range e {
			if e[v] < shift[v] {
				shift[v] = e[v]
			}
		}
	}

	for i := 0; i < p.Len(); i++ {
		e, _ := mon.Unpack(p.ExpAt(i))
		for v := range e {
			stride[v] = gcdUint64(stride[v], e[v]-shift[v])
		}
	}
	for v := range stride {
		if stride[v] == 0 {
			stride[v] = 1
		}
	}

	return shift, stride
}

func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
