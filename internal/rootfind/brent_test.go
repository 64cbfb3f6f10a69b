package rootfind

import (
	"math"
	"testing"
)

func TestBrentPolynomial(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	root, err := Brent(f, 0, 2, 40, 100)
	if err != nil {
		t.Fatalf("Brent returned error: %v", err)
	}
	if diff := math.Abs(root - math.Sqrt2); diff > 1e-9 {
		t.Errorf("root = %g, want %g", root, math.Sqrt2)
	}
}

func TestBrentNotBracketed(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, err := Brent(f, 0, 2, 40, 100)
	if err != ErrNotBracketed {
		t.Errorf("expected ErrNotBracketed, got %v", err)
	}
}

func TestBrentEnergyBalanceShape(t *testing.T) {
	// A monotone function with a root away from either endpoint,
	// resembling the shape of the sublimation energy balance.
	f := func(ts float64) float64 { return 260 - ts + 0.01*(ts-260)*(ts-260) }
	root, err := Brent(f, 200, 300, 30, 500)
	if err != nil {
		t.Fatalf("Brent returned error: %v", err)
	}
	if resid := math.Abs(f(root)); resid > 1e-6 {
		t.Errorf("residual = %g, want < 1e-6", resid)
	}
}
