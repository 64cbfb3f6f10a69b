package linsolve

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

// TestSolveDiagonalSystem checks BiCGStab+ILU against a trivial diagonal
// system, where the exact solution is known in closed form.
func TestSolveDiagonalSystem(t *testing.T) {
	n := 4
	A := sparse.ZerosSparse(n, n)
	b := sparse.ZerosDense(n)
	want := []float64{1, 2, 3, 4}
	for i := 0; i < n; i++ {
		A.Set(float64(i+1), i, i)
		b.Set(want[i]*float64(i+1), i)
	}
	x, err := Solve(A, b, n, Options{})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	for i := range want {
		if diff := math.Abs(x[i] - want[i]); diff > 1e-6 {
			t.Errorf("x[%d] = %g, want %g", i, x[i], want[i])
		}
	}
}

// TestSolveTridiagonalSystem checks convergence on a small
// diagonally-dominant tridiagonal system, the same structural shape as the
// suspension assembly for a single face's column of layers.
func TestSolveTridiagonalSystem(t *testing.T) {
	n := 5
	A := sparse.ZerosSparse(n, n)
	b := sparse.ZerosDense(n)
	for i := 0; i < n; i++ {
		A.Set(4, i, i)
		if i > 0 {
			A.Set(-1, i, i-1)
		}
		if i < n-1 {
			A.Set(-1, i, i+1)
		}
		b.Set(1, i)
	}
	x, err := Solve(A, b, n, Options{})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	// Residual check rather than a hand-derived closed form.
	csr := FromSparse(A, n)
	r := csr.Mul(x)
	for i := range r {
		if diff := math.Abs(r[i] - 1); diff > 1e-4 {
			t.Errorf("(A*x)[%d] = %g, want ~1 (residual %g)", i, r[i], diff)
		}
	}
}

func TestFromSparseRoundTrip(t *testing.T) {
	n := 3
	A := sparse.ZerosSparse(n, n)
	A.Set(2, 0, 0)
	A.Set(3, 0, 1)
	A.Set(5, 2, 2)
	csr := FromSparse(A, n)
	y := csr.Mul([]float64{1, 1, 1})
	want := []float64{5, 0, 5}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("Mul()[%d] = %g, want %g", i, y[i], want[i])
		}
	}
}
