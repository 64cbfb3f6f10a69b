package pbsm3d

// FaceDrivers carries the per-face meteorological inputs the core reads
// once per timestep. The collaborator refreshes these before calling Run;
// the core never writes to them.
type FaceDrivers struct {
	// U2 is wind speed 2 m above the surface, in m/s.
	U2 float64
	// Phi is wind direction as a compass bearing in degrees, the
	// direction the wind is blowing FROM.
	Phi float64
	// T is air temperature in degrees Celsius.
	T float64
	// RH is relative humidity as a percentage, 0-100.
	RH float64
	// SWE is snow water equivalent in kg/m^2 (mm). NaN is treated as 0.
	SWE float64
}

// FaceGeometry is the per-face geometry cache built once at Init. It stores
// the extended-to-3-D edge normals and prism side areas described in the
// assembly stages, which are never modified afterward, plus the roughness
// length Z0, which the saltation stage recomputes each timestep.
type FaceGeometry struct {
	// M holds the five prism face unit normals: M[0..2] are the lateral
	// edge normals with z=0, M[3]=(0,0,1) is the top, M[4]=(0,0,-1) is
	// the bottom.
	M [5][3]float64
	// A holds the five prism face areas: A[0..2] = edge_length*layer_height,
	// A[3]=A[4]=face planform area.
	A [5]float64
	// HasNeighbor records whether edge e (0..2) has a neighbouring face.
	HasNeighbor [3]bool
	// IsEdge is true if any of the three lateral edges lacks a neighbour.
	IsEdge bool
	// Z0 is the roughness length computed during the saltation stage.
	Z0 float64

	init bool
}

// SaltState holds the per-face saltation outputs recomputed every timestep.
type SaltState struct {
	Ustar       float64
	UstarTh     float64
	Hs          float64
	Csalt       float64
	Qsalt       float64
	IsDrifting  bool
	U10         float64
	QsuspPBSM   float64
}

// Outputs holds the per-face results a timestep leaves behind for the
// collaborator to read back, plus the per-layer diagnostics named in the
// module's Provides list.
type Outputs struct {
	Qsusp            float64
	Qsubl            float64
	DriftMass        float64
	DriftMassNoSubl  float64
	SumDrift         float64
	C                []float64 // per-layer concentration, length Nlayers
	K                []float64 // per-layer vertical eddy diffusivity, length Nlayers
}
