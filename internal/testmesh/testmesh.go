// Package testmesh provides small, hand-built triangular meshes used by
// the cmd/pbsm3d-run demonstration harness (the pbsm3d package's own tests
// use a private copy in mesh_fixture_test.go), playing the role vargrid_test.go's VarGridTestData plays for
// the teacher's tests: a synthetic fixture standing in for the mesh I/O
// collaborator that is out of scope for the core.
package testmesh

import (
	"math"

	"github.com/spatialmodel/pbsm3d"
)

// Edge is one triangle side: its length, outward 2-D unit normal, and the
// index of the neighbouring triangle, or -1 if the edge is a mesh boundary.
type Edge struct {
	Length     float64
	Nx, Ny     float64
	NeighborID int
}

// Face is a single triangular cell in a Mesh.
type Face struct {
	id        int
	area      float64
	x, y      float64
	elevation float64
	edges     [3]Edge
	mesh      *Mesh
	geom      pbsm3d.FaceGeometry
}

func (f *Face) ID() int                { return f.id }
func (f *Face) Area() float64          { return f.area }
func (f *Face) Centre() (float64, float64) { return f.x, f.y }
func (f *Face) Elevation() float64     { return f.elevation }

func (f *Face) Edge(e int) (length, nx, ny float64) {
	ed := f.edges[e]
	return ed.Length, ed.Nx, ed.Ny
}

func (f *Face) Neighbor(e int) pbsm3d.Face {
	id := f.edges[e].NeighborID
	if id < 0 {
		return nil
	}
	return f.mesh.faces[id]
}

func (f *Face) Geometry() *pbsm3d.FaceGeometry { return &f.geom }

// Mesh is a fixed collection of triangular Faces implementing pbsm3d.Mesh.
type Mesh struct {
	faces []*Face
}

func (m *Mesh) Nfaces() int          { return len(m.faces) }
func (m *Mesh) Face(id int) pbsm3d.Face { return m.faces[id] }

// SingleEquilateralTriangle returns a one-face mesh with edge length
// edgeLen, flat (zero elevation), with no neighbours on any edge. Area
// follows the equilateral-triangle formula sqrt(3)/4 * edge^2.
func SingleEquilateralTriangle(edgeLen float64) *Mesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	f := &Face{id: 0, area: area, x: 0, y: 0, elevation: 0}
	// Three outward unit normals spaced 120 degrees apart, arbitrary
	// orientation.
	for e := 0; e < 3; e++ {
		theta := float64(e) * 2 * math.Pi / 3
		f.edges[e] = Edge{Length: edgeLen, Nx: math.Cos(theta), Ny: math.Sin(theta), NeighborID: -1}
	}
	m := &Mesh{faces: []*Face{f}}
	f.mesh = m
	return m
}

// TwoTriangleMesh returns two equilateral triangles of edge length edgeLen
// sharing edge 0 of each face, with centres separated by dist along the x
// axis.
func TwoTriangleMesh(edgeLen, dist float64) *Mesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	a := &Face{id: 0, area: area, x: 0, y: 0}
	b := &Face{id: 1, area: area, x: dist, y: 0}
	for e := 0; e < 3; e++ {
		theta := float64(e) * 2 * math.Pi / 3
		a.edges[e] = Edge{Length: edgeLen, Nx: math.Cos(theta), Ny: math.Sin(theta), NeighborID: -1}
		theta2 := math.Pi + float64(e)*2*math.Pi/3
		b.edges[e] = Edge{Length: edgeLen, Nx: math.Cos(theta2), Ny: math.Sin(theta2), NeighborID: -1}
	}
	// Edge 0 of each face points toward the other face's centre and links
	// them as neighbours.
	a.edges[0] = Edge{Length: edgeLen, Nx: 1, Ny: 0, NeighborID: 1}
	b.edges[0] = Edge{Length: edgeLen, Nx: -1, Ny: 0, NeighborID: 0}
	m := &Mesh{faces: []*Face{a, b}}
	a.mesh, b.mesh = m, m
	return m
}

// FlatPatch returns n identical equilateral triangles of edge length
// edgeLen arranged with no shared edges (a disconnected patch), used where
// only per-face independence matters and no cross-face coupling is under
// test.
func FlatPatch(n int, edgeLen float64) *Mesh {
	area := math.Sqrt(3) / 4 * edgeLen * edgeLen
	faces := make([]*Face, n)
	m := &Mesh{}
	for i := 0; i < n; i++ {
		f := &Face{id: i, area: area, x: float64(i) * edgeLen * 2, y: 0, mesh: m}
		for e := 0; e < 3; e++ {
			theta := float64(e) * 2 * math.Pi / 3
			f.edges[e] = Edge{Length: edgeLen, Nx: math.Cos(theta), Ny: math.Sin(theta), NeighborID: -1}
		}
		faces[i] = f
	}
	m.faces = faces
	return m
}

// UniformDrivers returns n identical FaceDrivers records.
func UniformDrivers(n int, d pbsm3d.FaceDrivers) []pbsm3d.FaceDrivers {
	out := make([]pbsm3d.FaceDrivers, n)
	for i := range out {
		out[i] = d
	}
	return out
}
