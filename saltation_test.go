package pbsm3d

import "testing"

// TestSaltationScenario1 mirrors end-to-end scenario 1: with u2=0 on a
// flat, isolated triangle, friction velocity clamps to 0.1 and the face is
// not drifting.
func TestSaltationScenario1(t *testing.T) {
	m := newEquilateralTriangle(100)
	cfg := Config{}.WithDefaults()
	drv := FaceDrivers{U2: 0, Phi: 0, T: -10, RH: 70, SWE: 0}
	st, err := runSaltation(m.Face(0), drv, cfg, 3600)
	if err != nil {
		t.Fatalf("runSaltation: %v", err)
	}
	if st.Ustar != 0.1 {
		t.Errorf("ustar = %g, want 0.1", st.Ustar)
	}
	if st.IsDrifting {
		t.Errorf("face should not be drifting with u2=0")
	}
	if st.Qsalt != 0 {
		t.Errorf("Qsalt = %g, want 0", st.Qsalt)
	}
}

// TestSaltationScenario2 mirrors end-to-end scenario 2: strong wind, cold
// dry-ish air, and available snow should trigger drifting with positive
// saltation flux.
func TestSaltationScenario2(t *testing.T) {
	m := newEquilateralTriangle(100)
	cfg := Config{}.WithDefaults()
	drv := FaceDrivers{U2: 10, Phi: 0, T: -10, RH: 70, SWE: 100}
	st, err := runSaltation(m.Face(0), drv, cfg, 3600)
	if err != nil {
		t.Fatalf("runSaltation: %v", err)
	}
	if !st.IsDrifting {
		t.Fatalf("expected drifting at u2=10, swe=100")
	}
	if st.Csalt <= 0 {
		t.Errorf("Csalt = %g, want > 0", st.Csalt)
	}
	if st.Qsalt <= 0 {
		t.Errorf("Qsalt = %g, want > 0", st.Qsalt)
	}
}

// TestSaltationMassLimiter mirrors end-to-end scenario 3: a strong wind
// over very little available snow should trigger the mass limiter, and
// the resulting integrated saltation mass should equal the available swe
// to within a tight tolerance.
//
// A geometrically closed triangle's three true outward unit normals,
// weighted by edge length, sum to the zero vector (the divergence theorem
// applied to a constant field), which makes the limiter's own trigger sum
// identically zero for any wind direction on such a face. This fixture
// therefore uses a face with edge directions that are not a closed
// triangle's true outward normals, purely to exercise the limiter branch;
// it is a synthetic mesh, not a physically consistent one.
func TestSaltationMassLimiter(t *testing.T) {
	area := 4330.127
	f := &testFace{
		id:   0,
		area: area,
	}
	f.edgeLen = [3]float64{100, 100, 100}
	f.edgeN[0] = [2]float64{0, -1}
	f.edgeN[1] = [2]float64{0, -1}
	f.edgeN[2] = [2]float64{1, 0}
	m := &testMesh{faces: []*testFace{f}}

	cfg := Config{}.WithDefaults()
	dt := 3600.0
	drv := FaceDrivers{U2: 30, Phi: 0, T: -10, RH: 70, SWE: 0.01}
	st, err := runSaltation(m.Face(0), drv, cfg, dt)
	if err != nil {
		t.Fatalf("runSaltation: %v", err)
	}
	if !st.IsDrifting {
		t.Fatalf("expected drifting at u2=30")
	}

	g := geometryFor(f, cfg.LayerHeight())
	ux, uy := bearingToCartesian(drv.Phi)
	var sumEdge float64
	for e := 0; e < 3; e++ {
		length, _, _ := f.Edge(e)
		udotm := ux*g.M[e][0] + uy*g.M[e][1]
		sumEdge += length * udotm
	}
	uhs := st.Qsalt / (st.Csalt * st.Hs)
	integrated := sumEdge * st.Csalt * uhs * st.Hs * dt / area
	if diff := integrated - drv.SWE; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("limiter should make integrated mass equal swe within 1e-6, got integrated=%g swe=%g", integrated, drv.SWE)
	}
}
