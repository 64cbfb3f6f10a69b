package pbsm3d

import (
	"math"

	"github.com/ctessum/sparse"
)

const mixingLmax = 40.0

// layerAux carries the per-(face, layer) intermediate values the
// suspension assembly computes and the sublimation stage needs afterward,
// so the two stages never recompute the same wind or diffusivity terms.
type layerAux struct {
	Cz     float64 // cell-centre height, m
	Kv     float64 // vertical eddy diffusivity, m^2/s
	UHoriz float64 // horizontal wind speed at Cz, m/s
}

// assembleSuspension builds the sparse linear system described in the
// suspension assembly component: one row per (face, layer) cell, with the
// saltation concentration entering as a Dirichlet source on the bottom
// face of layer 0. It returns the assembled matrix, right-hand side, and
// the per-cell auxiliary values the sublimation stage consumes. Faces are
// assembled in parallel over forEachFace; each face's contributions to the
// sparse matrix are buffered locally and replayed afterward, since
// sparse.SparseArray's backing map cannot take concurrent writes.
func assembleSuspension(mesh Mesh, salt []*SaltState, drivers []FaceDrivers, cfg Config) (*sparse.SparseArray, *sparse.DenseArray, [][]layerAux) {
	ntri := mesh.Nfaces()
	layerHeight := cfg.LayerHeight()
	n := ntri * nlayers

	A := sparse.ZerosSparse(n, n)
	b := sparse.ZerosDense(n)
	aux := make([][]layerAux, ntri)
	entries := make([][]matEntry, ntri)

	vertAdv := true
	if cfg.VerticalAdvection != nil {
		vertAdv = *cfg.VerticalAdvection
	}

	forEachFace(ntri, func(i int) {
		f := mesh.Face(i)
		g := geometryFor(f, layerHeight)
		drv := drivers[i]
		st := salt[i]
		ux, uy := bearingToCartesian(drv.Phi)
		aux[i] = make([]layerAux, nlayers)

		var local []matEntry
		addA := func(val float64, row, col int) {
			local = append(local, matEntry{row: row, col: col, val: val})
		}

		for z := 0; z < nlayers; z++ {
			idx := ntri*z + i
			cz := st.Hs + layerHeight/2 + float64(z)

			l := karman * (cz + g.Z0) * mixingLmax / (karman*cz + karman*g.Z0 + mixingLmax)
			kv := cfg.SnowDiffusionConst * math.Max(st.Ustar*l, karman*cz*st.Ustar)
			uHoriz := math.Max(0.1, logScaleWind(drv.U2, 2, cz, 0, g.Z0))

			aux[i][z] = layerAux{Cz: cz, Kv: kv, UHoriz: uHoriz}

			var udotm [3]float64
			for e := 0; e < 3; e++ {
				udotm[e] = uHoriz * (ux*g.M[e][0] + uy*g.M[e][1])
			}

			// Lateral faces: pure upwind advection, no horizontal diffusion.
			for e := 0; e < 3; e++ {
				areaF := g.A[e]
				nb := f.Neighbor(e)
				var nbIdx int
				exists := nb != nil
				if exists {
					nbIdx = ntri*z + nb.ID()
				}
				switch {
				case udotm[e] > 0:
					addA(-areaF*udotm[e], idx, idx)
				case udotm[e] < 0:
					if exists {
						addA(-areaF*udotm[e], idx, nbIdx)
					}
				}
			}

			// Bottom of layer 0: Dirichlet source from the saltation
			// concentration, no advection across the ground face, in both
			// vertical-advection and pure-diffusion modes.
			if z == 0 {
				addA(-g.A[4]*kv, idx, idx)
				b.AddVal(-g.A[4]*kv*st.Csalt, idx)
			}

			alpha3 := g.A[3] * kv / layerHeight
			alpha4 := g.A[4] * kv / layerHeight

			if vertAdv {
				velZ := cfg.SettlingVelocity
				udotm3 := velZ * g.M[3][2]
				udotm4 := velZ * g.M[4][2]

				addVertical := func(e int, alpha, udotmE float64, nbExists bool, nbIdx int) {
					if udotmE > 0 {
						addA(-g.A[e]*udotmE-alpha, idx, idx)
						if nbExists {
							addA(alpha, idx, nbIdx)
						}
					} else {
						addA(-alpha, idx, idx)
						if nbExists {
							addA(-g.A[e]*udotmE+alpha, idx, nbIdx)
						}
					}
				}

				if z < nlayers-1 {
					addVertical(3, alpha3, udotm3, true, ntri*(z+1)+i)
				} else {
					addVertical(3, alpha3, udotm3, false, 0)
				}
				if z > 0 {
					addVertical(4, alpha4, udotm4, true, ntri*(z-1)+i)
				}
				// z == 0's bottom face is the Dirichlet source above; no
				// advective term across the ground.
			} else {
				// Pure-diffusion mode: unconditional diffusive coupling,
				// no advective upwind term, still anchored by the same
				// Dirichlet bottom. The top layer has no layer above; its
				// top-face diffusive term enters only its own diagonal.
				switch {
				case z == 0:
					addA(-alpha3, idx, idx)
					addA(alpha3, idx, ntri*(z+1)+i)
				case z == nlayers-1:
					addA(-alpha3-alpha4, idx, idx)
					addA(alpha4, idx, ntri*(z-1)+i)
				default:
					addA(-alpha3-alpha4, idx, idx)
					addA(alpha3, idx, ntri*(z+1)+i)
					addA(alpha4, idx, ntri*(z-1)+i)
				}
			}
		}
		entries[i] = local
	})

	for _, es := range entries {
		for _, e := range es {
			A.AddVal(e.val, e.row, e.col)
		}
	}

	return A, b, aux
}
