package modular

import "errors"

// twiddleSet caches the per-length table of precomputed powers of a root
// of unity, keyed by transform length.
type twiddleSet struct {
	root    uint64
	rootInv uint64
}

func (r *DensePolyRing) twiddles(n int) (*twiddleSet, error) {
	r.mu.RLock()
	ts, ok := r.twiddleCache[n]
	r.mu.RUnlock()
	if ok {
		return ts, nil
	}

	psi, err := r.GetRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}

	ts = &twiddleSet{root: psi, rootInv: r.Inverse(psi)}

	r.mu.Lock()
	r.twiddleCache[n] = ts
	r.mu.Unlock()

	return ts, nil
}

// NttForward converts a coefficient vector to NTT (point-value) form
// in-place. Length must be a power of two and the field must provide an
// n-th primitive root of unity.
func (r *DensePolyRing) NttForward(a *Polynomial) error {
	if a == nil || len(a.inner) == 0 {
		return nil
	}
	if a.isNTT {
		return nil
	}
	n := len(a.inner)
	if !IsPowerOfTwo(uint64(n)) {
		return errors.New("modular: NttForward length must be a power of two")
	}

	ts, err := r.twiddles(n)
	if err != nil {
		return err
	}
	psi := ts.root

	bitReverseInPlace(a.inner)

	for m := 2; m <= n; m <<= 1 {
		wm := r.Pow(psi, uint64(n/m))
		for k := 0; k < n; k += m {
			w := uint64(1)
			for j := 0; j < m/2; j++ {
				u := a.inner[k+j]
				t := r.Mul(w, a.inner[k+j+m/2])
				a.inner[k+j] = r.Add(u, t)
				a.inner[k+j+m/2] = r.Sub(u, t)
				w = r.Mul(w, wm)
			}
		}
	}

	a.isNTT = true
	return nil
}

// nttBackwardNoTrim is NttBackward without the final trim, used by
// mulTrunc where the caller wants the fixed-length coefficient buffer
// before slicing out the low L terms.
func (r *DensePolyRing) nttBackwardNoTrim(a *Polynomial) error {
	if a == nil || len(a.inner) == 0 {
		return nil
	}
	if !a.isNTT {
		return nil
	}
	n := len(a.inner)
	if !IsPowerOfTwo(uint64(n)) {
		return errors.New("modular: NttBackward length must be a power of two")
	}

	ts, err := r.twiddles(n)
	if err != nil {
		return err
	}
	psiInv := ts.rootInv

	bitReverseInPlace(a.inner)

	for m := 2; m <= n; m <<= 1 {
		wm := r.Pow(psiInv, uint64(n/m))
		for k := 0; k < n; k += m {
			w := uint64(1)
			for j := 0; j < m/2; j++ {
				u := a.inner[k+j]
				t := r.Mul(w, a.inner[k+j+m/2])
				a.inner[k+j] = r.Add(u, t)
				a.inner[k+j+m/2] = r.Sub(u, t)
				w = r.Mul(w, wm)
			}
		}
	}

	nInv := r.Inverse(uint64(n))
	for i := 0; i < n; i++ {
		a.inner[i] = r.Mul(a.inner[i], nInv)
	}

	a.isNTT = false
	return nil
}

// NttBackward converts an NTT (point-value) vector back to coefficient
// form in-place.
func (r *DensePolyRing) NttBackward(a *Polynomial) error {
	if err := r.nttBackwardNoTrim(a); err != nil {
		return err
	}
	r.trimTrailingZeros(a)
	return nil
}

func bitReverseInPlace(xs []uint64) {
	n := len(xs)
	if n <= 1 {
		return
	}
	j := 0
	for i := 1; i < n-1; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j &^= bit
			bit >>= 1
		}
		j |= bit
		if i < j {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
