// Package pbsm3d computes blowing-snow saltation, suspension, sublimation
// and net drift mass on a 2-D unstructured triangular mesh extruded into a
// small number of vertical layers. The package borrows the mesh and the
// per-timestep meteorological drivers from a collaborator; it owns nothing
// about how the mesh was built, loaded, or advanced in time.
package pbsm3d

// Mesh is the read-only surface the core requires of its host. Nfaces and
// Face are the only methods the core calls; everything else about the
// mesh's storage, projection, or construction is the collaborator's
// business.
type Mesh interface {
	// Nfaces returns the number of triangular faces in the mesh.
	Nfaces() int
	// Face returns the face with the given cell id, in [0, Nfaces()).
	Face(id int) Face
}

// Face is a single triangular mesh cell together with its three edges.
// Cell ids are stable for the lifetime of a run and dense in [0, Nfaces()).
type Face interface {
	// ID returns this face's stable cell id.
	ID() int
	// Area returns the 2-D planform area of the face, in square metres.
	Area() float64
	// Centre returns the (x, y) coordinates of the face centroid.
	Centre() (x, y float64)
	// Elevation returns the ground elevation of the face, in metres.
	Elevation() float64
	// Edge returns the length and outward-pointing 2-D unit normal
	// (nx, ny) of edge e, e in [0, 3).
	Edge(e int) (length float64, nx, ny float64)
	// Neighbor returns the face across edge e, or nil if e is a mesh
	// boundary with no neighbour.
	Neighbor(e int) Face

	// Geometry returns this face's cached FaceGeometry slot, allocating
	// it on first use. The slot is private to this module; the mesh
	// implementation need only store and return the pointer.
	Geometry() *FaceGeometry
}
