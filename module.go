package pbsm3d

import (
	"fmt"
	"io"

	"github.com/ctessum/sparse"

	"github.com/spatialmodel/pbsm3d/internal/linsolve"
)

// Module is a small capability record describing a pluggable physics
// component: the name a registry looks it up by, and the driver variables
// it depends on and provides, replacing a conditional-dispatch string
// registry with a mapping from name to constructor closure, as described
// in the design notes.
type Module struct {
	Name     string
	Depends  []string
	Provides []string
}

// moduleName is this module's registry entry.
const moduleName = "pbsm3d"

// moduleDepends lists the driver variables this module reads once per face per
// timestep.
var moduleDepends = []string{"U_2m_above_srf", "vw_dir", "swe", "t", "rh"}

// moduleProvides lists the variables this module writes once per face per
// timestep, including the per-layer concentration and diffusivity fields
// (c0..c4, K0..K4) reported through Outputs.C and Outputs.K.
var moduleProvides = []string{
	"u10", "is_drifting", "hs", "ustar", "u*_th", "csalt", "Qsalt",
	"Qsusp_pbsm", "Qsusp", "Qsubl", "drift_mass", "drift_mass_no_subl", "sum_drift",
	"c0", "c1", "c2", "c3", "c4", "K0", "K1", "K2", "K3", "K4",
}

// Blower is the interface a pluggable blowing-snow module exposes to its
// host: a capability record, an init hook that builds any per-face
// geometry the module needs, and a run hook invoked once per timestep.
type Blower interface {
	Module() Module
	Init(m Mesh) error
	Run(m Mesh, drivers []FaceDrivers, dt float64) error

	// Outputs returns face i's results from the most recent Run call.
	Outputs(i int) Outputs
	// SaltState returns face i's saltation state from the most recent
	// Run call.
	SaltState(i int) *SaltState
}

// engine is the concrete Blower implementation for the blowing-snow
// transport and sublimation core.
type engine struct {
	cfg Config
	log io.Writer

	sumDrift []float64
	outputs  []Outputs
	salt     []*SaltState
}

// Outputs returns the results of the most recent Run call for face i.
func (e *engine) Outputs(i int) Outputs { return e.outputs[i] }

// SaltState returns the saltation state of the most recent Run call for
// face i.
func (e *engine) SaltState(i int) *SaltState { return e.salt[i] }

// New validates cfg and returns a Blower implementing the core's
// seven-stage pipeline. log receives one line of progress output per
// stage per Run call if non-nil, in the style of inmap.Log.
func New(cfg Config, log io.Writer) (Blower, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{cfg: cfg, log: log}, nil
}

func (e *engine) Module() Module {
	return Module{Name: moduleName, Depends: moduleDepends, Provides: moduleProvides}
}

// Init builds the geometry cache for every face in the mesh. Already-
// initialised faces are left untouched, but every call resets the
// cumulative sum_drift accumulators to zero.
func (e *engine) Init(m Mesh) error {
	n := m.Nfaces()
	e.sumDrift = make([]float64, n)
	forEachFace(n, func(i int) {
		geometryFor(m.Face(i), e.cfg.LayerHeight())
	})
	return nil
}

// Run executes the seven-stage pipeline described in the system overview,
// in the exact order given there: geometry cache (lazily, if Init has not
// already run) -> saltation -> suspension assembly -> suspension solve ->
// sublimation -> divergence assembly -> divergence solve -> mass update.
func (e *engine) Run(m Mesh, drivers []FaceDrivers, dt float64) error {
	n := m.Nfaces()
	if e.sumDrift == nil {
		if err := e.Init(m); err != nil {
			return err
		}
	}

	e.logf("pbsm3d: saltation stage, %d faces\n", n)
	salt := make([]*SaltState, n)
	domainErrs := make([]error, n)
	forEachFace(n, func(i int) {
		salt[i], domainErrs[i] = runSaltation(m.Face(i), drivers[i], e.cfg, dt)
	})
	for _, err := range domainErrs {
		if err != nil {
			e.logf("pbsm3d: %v\n", err)
		}
	}

	e.logf("pbsm3d: suspension assembly, %d layers\n", nlayers)
	suspA, suspB, aux := assembleSuspension(m, salt, drivers, e.cfg)

	e.logf("pbsm3d: suspension solve\n")
	suspX, err := linsolve.Solve(suspA, suspB, n*nlayers, linsolve.Options{})
	if err != nil {
		return &NumericError{Stage: "suspension solve", Err: err}
	}
	cField := toDenseArray(suspX)

	e.logf("pbsm3d: sublimation stage\n")
	sub, err := runSublimation(m, drivers, aux, cField, e.cfg)
	if err != nil {
		return err
	}

	e.logf("pbsm3d: divergence assembly\n")
	divA, divB := assembleDivergence(m, salt, sub, drivers)

	e.logf("pbsm3d: divergence solve\n")
	divX, err := linsolve.Solve(divA, divB, n, linsolve.Options{})
	if err != nil {
		return &NumericError{Stage: "divergence solve", Err: err}
	}

	e.logf("pbsm3d: mass update\n")
	outs := make([]Outputs, n)
	forEachFace(n, func(i int) {
		out := &outs[i]
		out.Qsusp = sub[i].Qsusp
		out.Qsubl = sub[i].Qsubl
		out.C = sub[i].C
		out.K = sub[i].K
		out.SumDrift = e.sumDrift[i]
		applyMassUpdate(divX[i], sub[i].Qsubl, dt, out)
		e.sumDrift[i] = out.SumDrift
	})

	e.outputs = outs
	e.salt = salt
	return nil
}

func (e *engine) logf(format string, args ...interface{}) {
	if e.log == nil {
		return
	}
	fmt.Fprintf(e.log, format, args...)
}

// toDenseArray wraps a solved solution vector as a *sparse.DenseArray so
// downstream stages can index it with Get1d the same way they index the
// assembly RHS vectors.
func toDenseArray(x []float64) *sparse.DenseArray {
	d := sparse.ZerosDense(len(x))
	copy(d.Elements, x)
	return d
}
