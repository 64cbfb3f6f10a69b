package pbsm3d

import "math"

const (
	gravity   = 9.81
	rhoAir    = 1.225 // ambient air density, kg/m^3
	rhoIce    = 917.0 // particle density, kg/m^3
	saltCoefA = 0.18
	saltDiam  = 0.48e-3 // m
	z0Ref     = 0.001   // fixed reference roughness for the u10 diagnostic
)

// runSaltation computes the per-face saltation stage described in the
// component design's saltation stage: friction velocity, roughness,
// saltation depth and threshold, saltation concentration and flux, and the
// mass limiter that prevents saltation from removing more snow than is
// available in one timestep. It returns a non-nil *DomainError when the
// mass limiter's rescaling denominator is zero or NaN; Csalt and Qsalt are
// already coerced to zero in that case, so the error is diagnostic only.
func runSaltation(f Face, drv FaceDrivers, cfg Config, dt float64) (*SaltState, error) {
	swe := drv.SWE
	if math.IsNaN(swe) {
		swe = 0
	}

	g := geometryFor(f, cfg.LayerHeight())

	s := &SaltState{}
	s.Ustar = frictionVelocity(drv.U2)
	g.Z0 = math.Max(0.001, 0.1203*s.Ustar*s.Ustar/(2*gravity))
	s.Hs = 0.08436 * math.Pow(s.Ustar, 1.27)
	s.UstarTh = saltCoefA * math.Sqrt((rhoIce-rhoAir)/rhoAir*saltDiam*gravity)
	s.U10 = logScaleWind(drv.U2, 2, 10, 0, z0Ref)

	s.IsDrifting = s.Ustar > s.UstarTh && swe > 0
	if !s.IsDrifting {
		return s, nil
	}

	s.QsuspPBSM = math.Pow(s.U10, 4.13) / 674100

	s.Csalt = rhoAir / (3.29 * s.Ustar) * (1 - s.UstarTh*s.UstarTh/(s.Ustar*s.Ustar))
	uhs := math.Max(0.1, logScaleWind(drv.U2, 2, s.Hs, 0, g.Z0)/2)
	s.Qsalt = s.Csalt * uhs * s.Hs

	ux, uy := bearingToCartesian(drv.Phi)
	area := f.Area()
	layerHeight := cfg.LayerHeight()
	var sumEdge float64
	for e := 0; e < 3; e++ {
		length := g.A[e] / layerHeight
		udotm := ux*g.M[e][0] + uy*g.M[e][1]
		sumEdge += length * udotm
	}

	sigma := sumEdge * s.Qsalt
	potentialLoss := sigma * dt / area
	if potentialLoss > swe {
		denom := dt * s.Hs * uhs * sumEdge
		if denom == 0 || math.IsNaN(denom) {
			s.Csalt = 0
			s.Qsalt = 0
			return s, &DomainError{Face: f.ID(), What: "mass limiter denominator is zero or NaN; saltation flux suppressed"}
		}
		s.Csalt = swe * area / denom
		s.Qsalt = s.Csalt * uhs * s.Hs
		if math.IsNaN(s.Csalt) || math.IsNaN(s.Qsalt) {
			s.Csalt = 0
			s.Qsalt = 0
			return s, &DomainError{Face: f.ID(), What: "mass limiter rescale produced a NaN concentration; saltation flux suppressed"}
		}
	}
	return s, nil
}
