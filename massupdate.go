package pbsm3d

import "math"

// applyMassUpdate combines the solved divergence with the sublimation flux
// and the timestep to update per-face drift mass and cumulative drift, per
// the mass update component design.
func applyMassUpdate(dSdt float64, qsubl float64, dt float64, out *Outputs) {
	qdep := dSdt
	if math.IsNaN(qdep) {
		qdep = 0
	}
	out.DriftMass = (-qdep + qsubl) * dt
	out.DriftMassNoSubl = -qdep * dt
	out.SumDrift += out.DriftMass
}
