package pbsm3d

import "math"

// testFace and testMesh are minimal Mesh/Face fixtures used by this
// package's white-box tests, playing the role vargrid_test.go's
// VarGridTestData plays for the teacher's tests. cmd/pbsm3d-run uses the
// github.com/spatialmodel/pbsm3d/internal/testmesh fixtures instead; this
// copy exists only so in-package tests can
// reach unexported stage functions directly without an import cycle.
type testFace struct {
	id        int
	area      float64
	x, y      float64
	elevation float64
	edgeLen   [3]float64
	edgeN     [3][2]float64
	neighbor  [3]*testFace
	geom      FaceGeometry
}

func (f *testFace) ID() int                    { return f.id }
func (f *testFace) Area() float64              { return f.area }
func (f *testFace) Centre() (float64, float64) { return f.x, f.y }
func (f *testFace) Elevation() float64         { return f.elevation }
func (f *testFace) Edge(e int) (float64, float64, float64) {
	return f.edgeLen[e], f.edgeN[e][0], f.edgeN[e][1]
}
func (f *testFace) Neighbor(e int) Face {
	if f.neighbor[e] == nil {
		return nil
	}
	return f.neighbor[e]
}
func (f *testFace) Geometry() *FaceGeometry { return &f.geom }

type testMesh struct {
	faces []*testFace
}

func (m *testMesh) Nfaces() int      { return len(m.faces) }
func (m *testMesh) Face(id int) Face { return m.faces[id] }

// newEquilateralTriangle builds a single isolated triangular face of edge
// length edgeLen, as in end-to-end scenario 1.
func newEquilateralTriangle(edgeLen float64) *testMesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	f := &testFace{id: 0, area: area}
	for e := 0; e < 3; e++ {
		theta := float64(e) * 2 * math.Pi / 3
		f.edgeLen[e] = edgeLen
		f.edgeN[e] = [2]float64{math.Cos(theta), math.Sin(theta)}
	}
	return &testMesh{faces: []*testFace{f}}
}

// newTwoTriangleMesh builds two equal equilateral triangles sharing edge 0
// of each, as in end-to-end scenario 4.
func newTwoTriangleMesh(edgeLen, dist float64) *testMesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	a := &testFace{id: 0, area: area, x: 0, y: 0}
	b := &testFace{id: 1, area: area, x: dist, y: 0}
	for e := 0; e < 3; e++ {
		theta := float64(e) * 2 * math.Pi / 3
		a.edgeLen[e] = edgeLen
		a.edgeN[e] = [2]float64{math.Cos(theta), math.Sin(theta)}
		b.edgeLen[e] = edgeLen
		b.edgeN[e] = [2]float64{-math.Cos(theta), -math.Sin(theta)}
	}
	a.edgeN[0] = [2]float64{1, 0}
	b.edgeN[0] = [2]float64{-1, 0}
	a.neighbor[0] = b
	b.neighbor[0] = a
	return &testMesh{faces: []*testFace{a, b}}
}

// newFlatPatch builds n disconnected equilateral triangles, as in
// end-to-end scenario 5.
func newFlatPatch(n int, edgeLen float64) *testMesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	faces := make([]*testFace, n)
	for i := 0; i < n; i++ {
		f := &testFace{id: i, area: area, x: float64(i) * edgeLen * 2}
		for e := 0; e < 3; e++ {
			theta := float64(e) * 2 * math.Pi / 3
			f.edgeLen[e] = edgeLen
			f.edgeN[e] = [2]float64{math.Cos(theta), math.Sin(theta)}
		}
		faces[i] = f
	}
	return &testMesh{faces: faces}
}

func uniformDrivers(n int, d FaceDrivers) []FaceDrivers {
	out := make([]FaceDrivers, n)
	for i := range out {
		out[i] = d
	}
	return out
}
