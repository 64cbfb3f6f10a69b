package pbsm3d

// initGeometry populates the face's geometry cache in place, as described
// in the component design's geometry cache section: the three lateral edge
// unit normals extended to 3-D, the two vertical normals, the five prism
// face areas, and the neighbour-presence flags. It runs once at Init; after
// that only Z0 changes, rewritten by the saltation stage every timestep.
func initGeometry(f Face, layerHeight float64) {
	g := f.Geometry()
	area := f.Area()
	for e := 0; e < 3; e++ {
		length, nx, ny := f.Edge(e)
		g.M[e] = [3]float64{nx, ny, 0}
		g.A[e] = length * layerHeight
		g.HasNeighbor[e] = f.Neighbor(e) != nil
		if !g.HasNeighbor[e] {
			g.IsEdge = true
		}
	}
	g.M[3] = [3]float64{0, 0, 1}
	g.M[4] = [3]float64{0, 0, -1}
	g.A[3] = area
	g.A[4] = area
	g.init = true
}

// geometryFor returns the face's geometry cache, building it on first use.
func geometryFor(f Face, layerHeight float64) *FaceGeometry {
	g := f.Geometry()
	if !g.init {
		initGeometry(f, layerHeight)
	}
	return g
}
