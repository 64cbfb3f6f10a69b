package pbsm3d

import (
	"math"

	"github.com/ctessum/sparse"

	"github.com/spatialmodel/pbsm3d/internal/rootfind"
)

const (
	airViscosity          = 1.88e-5 // kinematic viscosity of air, m^2/s
	latentHeatSublimation = 2.838e6 // J/kg
	tsRootLo              = 200.0
	tsRootHi              = 300.0
	tsRootBits            = 30
	tsRootMaxIter         = 500
)

// sublimationResult holds the per-face outputs of the sublimation stage:
// vertically integrated suspension and sublimation fluxes and the
// clamped, per-layer concentration and diffusivity fields the module
// reports back to the collaborator.
type sublimationResult struct {
	Qsusp float64
	Qsubl float64
	C     []float64
	K     []float64
}

// tsurfaceBalance closes over the per-layer ambient conditions and returns
// the implicit particle-temperature energy balance function whose root is
// the particle surface temperature Ts, following the component design's
// sublimation stage.
func tsurfaceBalance(d, sh, ls, q, rhoA, nu, tAir, lambdaT float64, pressure float64) func(float64) float64 {
	return func(ts float64) float64 {
		qs := specificHumidity(100, ts, pressure)
		return (d*sh*ls*(q-qs)*rhoA+nu*tAir*lambdaT)/(lambdaT*nu) - ts
	}
}

// runSublimation computes the per-face, per-layer sublimation mass balance
// from the solved suspension concentration field, following the component
// design's sublimation stage: a bracketed root-find for particle surface
// temperature drives the per-layer mass-loss rate, which is combined with
// the mean particle mass closure into a sublimation rate constant. Faces
// are independent of one another, so this runs under forEachFace; each
// face only ever writes its own results and errs slot.
func runSublimation(mesh Mesh, drivers []FaceDrivers, aux [][]layerAux, c *sparse.DenseArray, cfg Config) ([]sublimationResult, error) {
	ntri := mesh.Nfaces()
	layerHeight := cfg.LayerHeight()
	results := make([]sublimationResult, ntri)
	errs := make([]error, ntri)

	forEachFace(ntri, func(i int) {
		f := mesh.Face(i)
		drv := drivers[i]
		tAir := drv.T + 273.15
		pressure := standardPressure(f.Elevation())
		rhoA := standardDryAirDensity(drv.T, pressure)
		q := specificHumidity(drv.RH, tAir, pressure)

		res := sublimationResult{C: make([]float64, nlayers), K: make([]float64, nlayers)}

		for z := 0; z < nlayers; z++ {
			idx := ntri*z + i
			cVal := c.Get1d(idx)
			if cVal < 0 {
				cVal = 0
			}
			a := aux[i][z]
			res.C[z] = cVal
			res.K[z] = a.Kv

			res.Qsusp += cVal * a.UHoriz * layerHeight

			rm := 4.6e-5 * math.Pow(a.Cz, -0.258)
			xrz := 0.005 * math.Pow(a.UHoriz, 1.36)
			omega := 1.1e7 * math.Pow(rm, 1.8)
			vr := omega + 3*xrz*math.Cos(math.Pi/4)
			re := 2 * rm * vr / airViscosity
			nu := 1.79 + 0.606*math.Sqrt(re)
			sh := nu
			d := 2.06e-5 * math.Pow(tAir/273, 1.75)
			lambdaT := 6.3e-5*(tAir-273.15) + 6.73e-3

			fTs := tsurfaceBalance(d, sh, latentHeatSublimation, q, rhoA, nu, tAir, lambdaT, pressure)
			ts, err := rootfind.Brent(fTs, tsRootLo, tsRootHi, tsRootBits, tsRootMaxIter)
			if err != nil {
				errs[i] = &NumericError{Stage: "sublimation Ts root-find", Err: err}
				return
			}

			dmdt := 2 * math.Pi * rm * lambdaT / latentHeatSublimation * nu * (ts - tAir)
			alpha := 4.08 + 12.6*a.Cz
			mm := 4.0 / 3.0 * math.Pi * rhoIce * rm * rm * rm * (1 + 3/alpha + 2/(alpha*alpha))
			csubl := dmdt / mm
			res.Qsubl += csubl * cVal * layerHeight
		}
		results[i] = res
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
