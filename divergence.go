package pbsm3d

import (
	"math"

	"github.com/ctessum/sparse"
)

const divergenceEps = 1e-8

// assembleDivergence builds the 2-D elliptic system described in the
// divergence assembly component: a regularised perturbed-identity system
// whose right-hand side is the net horizontal flux divergence of
// (Qsalt + Qsusp) across each face's edges. Faces are assembled in
// parallel over forEachFace; each face's contributions to the sparse
// matrix are buffered locally and replayed afterward, since
// sparse.SparseArray's backing map cannot take concurrent writes.
func assembleDivergence(mesh Mesh, salt []*SaltState, susp []sublimationResult, drivers []FaceDrivers) (*sparse.SparseArray, *sparse.DenseArray) {
	ntri := mesh.Nfaces()
	A := sparse.ZerosSparse(ntri, ntri)
	b := sparse.ZerosDense(ntri)
	entries := make([][]matEntry, ntri)

	forEachFace(ntri, func(i int) {
		f := mesh.Face(i)
		area := f.Area()
		ux, uy := bearingToCartesian(drivers[i].Phi)

		var local []matEntry
		for e := 0; e < 3; e++ {
			length, nx, ny := f.Edge(e)
			nb := f.Neighbor(e)

			var qt, dx float64
			if nb != nil {
				nbID := nb.ID()
				qt = 0.5*(salt[i].Qsalt+salt[nbID].Qsalt) + 0.5*(susp[i].Qsusp+susp[nbID].Qsusp)
				cx, cy := f.Centre()
				nx2, ny2 := nb.Centre()
				dx = math.Hypot(cx-nx2, cy-ny2)
			} else {
				qt = 0.5*salt[i].Qsalt + 0.5*susp[i].Qsusp
				dx = 1
			}

			coef := divergenceEps / (dx * area)
			local = append(local, matEntry{row: i, col: i, val: coef - 1})
			if nb != nil {
				local = append(local, matEntry{row: i, col: nb.ID(), val: -coef})
			}

			udotm := ux*nx + uy*ny
			b.AddVal(length*qt*udotm/area, i)
		}
		entries[i] = local
	})

	for _, es := range entries {
		for _, e := range es {
			A.AddVal(e.val, e.row, e.col)
		}
	}

	return A, b
}
