package pbsm3d

import (
	"math"
	"testing"

	"github.com/spatialmodel/pbsm3d/internal/rootfind"
)

// TestTsRootFindScenario6 mirrors end-to-end scenario 6: for the given
// ambient conditions the solved particle surface temperature should lie
// in (250, 275) K with a near-zero residual.
func TestTsRootFindScenario6(t *testing.T) {
	tAir := 263.15
	rh := 50.0
	pressure := 90000.0
	uHoriz := 5.0
	cz := 2.0

	rhoA := standardDryAirDensity(tAir-273.15, pressure)
	q := specificHumidity(rh, tAir, pressure)

	rm := 4.6e-5 * math.Pow(cz, -0.258)
	xrz := 0.005 * math.Pow(uHoriz, 1.36)
	omega := 1.1e7 * math.Pow(rm, 1.8)
	vr := omega + 3*xrz*math.Cos(math.Pi/4)
	re := 2 * rm * vr / airViscosity
	nu := 1.79 + 0.606*math.Sqrt(re)
	sh := nu
	d := 2.06e-5 * math.Pow(tAir/273, 1.75)
	lambdaT := 6.3e-5*(tAir-273.15) + 6.73e-3

	f := tsurfaceBalance(d, sh, latentHeatSublimation, q, rhoA, nu, tAir, lambdaT, pressure)
	ts, err := rootfind.Brent(f, tsRootLo, tsRootHi, tsRootBits, tsRootMaxIter)
	if err != nil {
		t.Fatalf("root-find failed: %v", err)
	}
	if ts <= 250 || ts >= 275 {
		t.Errorf("Ts = %g, want in (250, 275)", ts)
	}
	if resid := math.Abs(f(ts)); resid > 1e-6 {
		t.Errorf("residual f(Ts) = %g, want < 1e-6", resid)
	}
}

func TestRunSublimationQuiescent(t *testing.T) {
	m := newEquilateralTriangle(100)
	cfg := Config{}.WithDefaults()
	drv := FaceDrivers{U2: 0, Phi: 0, T: -10, RH: 70, SWE: 0}
	salt, err := runSaltation(m.Face(0), drv, cfg, 3600)
	if err != nil {
		t.Fatalf("runSaltation: %v", err)
	}
	_, b, aux := assembleSuspension(m, []*SaltState{salt}, []FaceDrivers{drv}, cfg)
	c := toDenseArray(b.Elements) // zero concentration field when there is no source
	for i := range c.Elements {
		c.Elements[i] = 0
	}
	res, err := runSublimation(m, []FaceDrivers{drv}, aux, c, cfg)
	if err != nil {
		t.Fatalf("runSublimation returned error: %v", err)
	}
	if res[0].Qsusp != 0 {
		t.Errorf("Qsusp = %g, want 0 with zero concentration", res[0].Qsusp)
	}
	if res[0].Qsubl != 0 {
		t.Errorf("Qsubl = %g, want 0 with zero concentration", res[0].Qsubl)
	}
}
