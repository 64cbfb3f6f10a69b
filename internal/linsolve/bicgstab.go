package linsolve

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// ErrNoConverge is returned when BiCGStab exhausts its iteration budget
// without reaching the requested residual tolerance.
var ErrNoConverge = fmt.Errorf("linsolve: bicgstab did not converge within the iteration cap")

// Options configures the solve. Zero values select the library defaults
// noted in the component design ("tolerance and iteration caps follow the
// library defaults").
type Options struct {
	Tol         float64
	MaxIter     int
	ILUSweeps   int
	JacobiIters int
}

func (o Options) withDefaults() Options {
	if o.Tol == 0 {
		o.Tol = 1e-8
	}
	if o.MaxIter == 0 {
		o.MaxIter = 500
	}
	if o.ILUSweeps == 0 {
		o.ILUSweeps = 3
	}
	if o.JacobiIters == 0 {
		o.JacobiIters = 2
	}
	return o
}

// Solve solves A*x = b for x using BiCGStab preconditioned with a
// Chow-Patel incomplete-LU factorisation, per the component design's
// suspension and divergence solve steps.
func Solve(a *sparse.SparseArray, b *sparse.DenseArray, n int, opts Options) ([]float64, error) {
	opts = opts.withDefaults()
	csr := FromSparse(a, n)
	precond := NewILU(csr, opts.ILUSweeps, opts.JacobiIters)

	rhs := append([]float64(nil), b.Elements...)
	x := make([]float64, n)

	r := sub(rhs, csr.Mul(x))
	rHat := append([]float64(nil), r...)
	rho, alpha, omega := 1.0, 1.0, 1.0
	v := make([]float64, n)
	p := make([]float64, n)

	bnorm := floats.Norm(rhs, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	if floats.Norm(r, 2)/bnorm < opts.Tol {
		return x, nil
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		rhoNew := floats.Dot(rHat, r)
		if rhoNew == 0 {
			return x, ErrNoConverge
		}
		if iter > 0 {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		} else {
			copy(p, r)
		}
		rho = rhoNew

		pHat := precond.Solve(p)
		v = csr.Mul(pHat)
		alpha = rho / floats.Dot(rHat, v)

		s := make([]float64, n)
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		if floats.Norm(s, 2)/bnorm < opts.Tol {
			for i := range x {
				x[i] += alpha * pHat[i]
			}
			return x, nil
		}

		sHat := precond.Solve(s)
		t := csr.Mul(sHat)
		tDotT := floats.Dot(t, t)
		if tDotT == 0 {
			return x, ErrNoConverge
		}
		omega = floats.Dot(t, s) / tDotT

		for i := range x {
			x[i] += alpha*pHat[i] + omega*sHat[i]
		}
		for i := range r {
			r[i] = s[i] - omega*t[i]
		}

		if floats.Norm(r, 2)/bnorm < opts.Tol {
			return x, nil
		}
		if omega == 0 {
			return x, ErrNoConverge
		}
	}
	return x, ErrNoConverge
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
