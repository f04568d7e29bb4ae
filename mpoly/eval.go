package mpoly

import "github.com/jonathanmweiss/go-mpoly/ring"

// EvaluateAll evaluates p at a point, one value per variable, using a
// per-variable power cache grown lazily as larger exponents are seen.
// Grounded on the teacher's Horner-style Evaluate in modular/ring.go,
// generalized to the sparse multivariate case: the same variable value
// gets raised to many different exponents across terms, rather than
// folded left-to-right as in univariate Horner evaluation.
func (p *Poly[T]) EvaluateAll(point []T) T {
	r := p.Ctx.R
	mon := p.Ctx.Mon
	nv := p.Ctx.NVars()

	caches := make([][]T, nv)
	for v := 0; v < nv; v++ {
		caches[v] = []T{r.One()}
	}
	powerOf := func(v int, e uint64) T {
		c := caches[v]
		for uint64(len(c)) <= e {
			c = append(c, r.Mul(c[len(c)-1], point[v]))
		}
		caches[v] = c
		return c[e]
	}

	acc := r.NewAccumulator()
	for i := 0; i < p.Len(); i++ {
		exps, _ := mon.Unpack(p.ExpAt(i))
		term := r.One()
		for v, e := range exps {
			if e == 0 {
				continue
			}
			term = r.Mul(term, powerOf(v, e))
		}
		acc.AddProduct(p.Coeffs[i], term)
	}
	return acc.Value()
}

// EvaluateOne substitutes point for variable v, returning a polynomial
// in the remaining variables. Folds one scaled coefficient polynomial
// per distinct exponent of v through a geobucket accumulator rather than
// a naive running Add, since both the number of distinct exponents and
// the size of each contribution can be large for sparse inputs (this is
// the evaluator Zippel's sparse interpolation uses to take its samples).
func (p *Poly[T]) EvaluateOne(v int, point T) *Poly[T] {
	r := p.Ctx.R
	u := p.ToUnivar(v)

	bucket := newGeobucket(p.Ctx)
	for _, term := range u.Terms {
		scaled := term.Coeff.ScalarMul(pow(r, point, term.Exp))
		bucket.Add(scaled)
	}
	return bucket.Sum()
}

func pow[T any](r ring.Ring[T], base T, e uint64) T {
	result := r.One()
	b := base
	for e > 0 {
		if e&1 == 1 {
			result = r.Mul(result, b)
		}
		b = r.Mul(b, b)
		e >>= 1
	}
	return result
}
